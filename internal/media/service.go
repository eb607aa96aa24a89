package media

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/identity"
	"github.com/goliatone/go-site-builder/internal/logging"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// ErrProviderUnavailable reports that no media provider has been configured.
var ErrProviderUnavailable = errors.New("media: provider unavailable")

// ServiceOption customises the media service.
type ServiceOption func(*Service)

func WithLimits(limits Limits) ServiceOption {
	return func(s *Service) {
		s.limits = limits
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithUploadIDGenerator overrides the ids used for upload queue entries.
func WithUploadIDGenerator(fn identity.Generator) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.newUploadID = fn
		}
	}
}

// Service validates uploads and delegates transport to a MediaProvider.
type Service struct {
	provider    interfaces.MediaProvider
	limits      Limits
	logger      interfaces.Logger
	newUploadID identity.Generator
}

func NewService(provider interfaces.MediaProvider, opts ...ServiceOption) *Service {
	s := &Service{
		provider:    provider,
		limits:      DefaultLimits(),
		logger:      logging.NoOp(),
		newUploadID: identity.AssetID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Limits returns the configured upload limits.
func (s *Service) Limits() Limits {
	return s.limits
}

func (s *Service) List(ctx context.Context, weddingID string) ([]document.MediaAsset, error) {
	if s.provider == nil {
		return nil, ErrProviderUnavailable
	}
	assets, err := s.provider.ListAssets(ctx, weddingID)
	if err != nil {
		return nil, err
	}
	out := make([]document.MediaAsset, len(assets))
	for i, asset := range assets {
		out[i] = asset.Clone()
	}
	return out, nil
}

// UploadRequest describes a single upload.
type UploadRequest struct {
	WeddingID string
	File      interfaces.UploadFile
	Options   document.UploadOptions
	// Existing is the number of assets already in the library.
	Existing int
}

// Upload validates and uploads a file. progress receives queue updates keyed
// by a transient upload id: uploading while in flight, then ready or error.
func (s *Service) Upload(ctx context.Context, req UploadRequest, progress interfaces.UploadProgressFunc) (document.MediaAsset, error) {
	if s.provider == nil {
		return document.MediaAsset{}, ErrProviderUnavailable
	}
	if progress == nil {
		progress = func(document.UploadProgress) {}
	}
	logger := logging.WithFields(s.logger, map[string]any{
		"wedding_id": req.WeddingID,
		"filename":   req.File.Filename,
	})

	if err := ValidateUpload(req.File, req.Existing, s.limits); err != nil {
		logger.Warn("media.upload.rejected", "error", err)
		return document.MediaAsset{}, err
	}

	entry := document.UploadProgress{
		AssetID:  s.newUploadID(),
		Filename: req.File.Filename,
		Status:   document.MediaStatusUploading,
	}
	progress(entry)

	asset, err := s.provider.UploadAsset(ctx, req.WeddingID, req.File, req.Options, func(update document.UploadProgress) {
		next := entry
		next.Progress = clampPercent(update.Progress)
		if update.Status != "" {
			next.Status = update.Status
		}
		progress(next)
	})
	if err != nil {
		failed := entry
		failed.Status = document.MediaStatusError
		failed.Error = err.Error()
		progress(failed)
		logger.Error("media.upload.failed", "error", err)
		return document.MediaAsset{}, err
	}

	asset = normalizeAsset(asset, req)
	done := entry
	done.Progress = 100
	done.Status = document.MediaStatusReady
	progress(done)
	logger.Debug("media.upload.completed", "asset_id", asset.ID)
	return asset, nil
}

// Delete removes an asset through the provider.
func (s *Service) Delete(ctx context.Context, assetID string) error {
	if s.provider == nil {
		return ErrProviderUnavailable
	}
	return s.provider.DeleteAsset(ctx, assetID)
}

// Attach returns a copy of asset attached to sectionID.
func Attach(asset document.MediaAsset, sectionID string) document.MediaAsset {
	out := asset.Clone()
	sectionID = strings.TrimSpace(sectionID)
	if sectionID != "" && !slices.Contains(out.AttachedSectionIDs, sectionID) {
		out.AttachedSectionIDs = append(out.AttachedSectionIDs, sectionID)
	}
	return out
}

func normalizeAsset(asset document.MediaAsset, req UploadRequest) document.MediaAsset {
	out := asset.Clone()
	if out.WeddingID == "" {
		out.WeddingID = req.WeddingID
	}
	if out.OriginalFilename == "" {
		out.OriginalFilename = req.File.Filename
	}
	if out.MimeType == "" {
		out.MimeType = req.File.MimeType
	}
	if out.AssetType == "" {
		out.AssetType = AssetTypeFor(out.MimeType)
	}
	if out.Status == "" {
		out.Status = document.MediaStatusReady
	}
	if out.ThumbnailURL == "" && out.AssetType == document.MediaAssetImage {
		out.ThumbnailURL = out.URL
	}
	if out.Tags == nil {
		out.Tags = slices.Clone(req.Options.Tags)
		if out.Tags == nil {
			out.Tags = []string{}
		}
	}
	if req.Options.AttachToSectionID != "" {
		out = Attach(out, req.Options.AttachToSectionID)
	}
	if out.AttachedSectionIDs == nil {
		out.AttachedSectionIDs = []string{}
	}
	return out
}

func clampPercent(value int) int {
	return min(max(value, 0), 100)
}
