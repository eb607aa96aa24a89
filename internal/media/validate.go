package media

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// ErrAssetLimitReached is returned when the library is already full.
var ErrAssetLimitReached = errors.New("media: asset limit reached")

// Limits bounds what the builder accepts for upload.
type Limits struct {
	MaxAssets        int
	MaxFileSizeBytes int64
	SupportedTypes   []string
}

// DefaultLimits mirrors the builder's shipped capability limits.
func DefaultLimits() Limits {
	return Limits{
		MaxAssets:        100,
		MaxFileSizeBytes: 10 * 1024 * 1024,
		SupportedTypes:   []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
	}
}

type uploadCandidate struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// ValidateUpload checks file against limits given the number of assets
// already in the library. Field problems are reported as validation.Errors.
func ValidateUpload(file interfaces.UploadFile, existing int, limits Limits) error {
	if limits.MaxAssets > 0 && existing >= limits.MaxAssets {
		return fmt.Errorf("%w: %d", ErrAssetLimitReached, limits.MaxAssets)
	}

	candidate := uploadCandidate{
		Filename: strings.TrimSpace(file.Filename),
		MimeType: strings.ToLower(strings.TrimSpace(file.MimeType)),
		Size:     file.Size,
	}
	sizeRules := []validation.Rule{
		validation.Required.Error("file is empty"),
	}
	if limits.MaxFileSizeBytes > 0 {
		sizeRules = append(sizeRules, validation.Max(limits.MaxFileSizeBytes).
			Error(fmt.Sprintf("file exceeds %dMB", limits.MaxFileSizeBytes/(1024*1024))))
	}
	typeRules := []validation.Rule{validation.Required}
	if len(limits.SupportedTypes) > 0 {
		allowed := make([]any, len(limits.SupportedTypes))
		for i, mime := range limits.SupportedTypes {
			allowed[i] = strings.ToLower(mime)
		}
		typeRules = append(typeRules, validation.In(allowed...).Error("file type is not supported"))
	}

	return validation.ValidateStruct(&candidate,
		validation.Field(&candidate.Filename, validation.Required),
		validation.Field(&candidate.MimeType, typeRules...),
		validation.Field(&candidate.Size, sizeRules...),
	)
}

// AssetTypeFor classifies a MIME type.
func AssetTypeFor(mimeType string) document.MediaAssetType {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mimeType, "video/"):
		return document.MediaAssetVideo
	case strings.HasPrefix(mimeType, "image/"):
		return document.MediaAssetImage
	default:
		return document.MediaAssetDocument
	}
}
