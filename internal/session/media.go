package session

import (
	"context"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/editor"
	"github.com/goliatone/go-site-builder/internal/media"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// LoadMedia replaces the library with the provider's assets.
func (c *Controller) LoadMedia(ctx context.Context) ([]document.MediaAsset, error) {
	if c.media == nil {
		return nil, ErrMediaUnavailable
	}
	assets, err := c.media.List(ctx, c.weddingID)
	if err != nil {
		c.logger.WithContext(ctx).Warn("session.media.list_failed", "error", err)
		return nil, err
	}
	c.Dispatch(editor.SetMediaAssets{Assets: assets})
	return assets, nil
}

// UploadMedia uploads file and adds the asset to the library. Queue progress
// is mirrored into the editor state; a successful upload leaves the queue and
// failed entries stay visible with their error. When opts names no section
// the media picker target, if any, is used.
func (c *Controller) UploadMedia(ctx context.Context, file interfaces.UploadFile, opts document.UploadOptions) (document.MediaAsset, error) {
	if c.media == nil {
		return document.MediaAsset{}, ErrMediaUnavailable
	}
	c.mu.Lock()
	existing := len(c.state.MediaAssets)
	if opts.AttachToSectionID == "" {
		opts.AttachToSectionID = c.state.Panels.MediaPickerTargetSectionID
	}
	c.mu.Unlock()

	var uploadID string
	asset, err := c.media.Upload(ctx, media.UploadRequest{
		WeddingID: c.weddingID,
		File:      file,
		Options:   opts,
		Existing:  existing,
	}, func(progress document.UploadProgress) {
		uploadID = progress.AssetID
		c.Dispatch(editor.UpdateUploadQueue{Progress: progress})
	})
	if err != nil {
		c.Dispatch(editor.SetError{Message: err.Error()})
		return document.MediaAsset{}, err
	}

	c.mu.Lock()
	c.apply(editor.RemoveFromUploadQueue{AssetID: uploadID})
	c.apply(editor.AddMediaAsset{Asset: asset})
	c.mu.Unlock()
	return asset, nil
}

// DeleteMedia removes an asset from the provider and the library.
func (c *Controller) DeleteMedia(ctx context.Context, assetID string) error {
	if c.media == nil {
		return ErrMediaUnavailable
	}
	if err := c.media.Delete(ctx, assetID); err != nil {
		c.logger.WithContext(ctx).Warn("session.media.delete_failed", "asset_id", assetID, "error", err)
		return err
	}
	c.Dispatch(editor.RemoveMediaAsset{AssetID: assetID})
	return nil
}
