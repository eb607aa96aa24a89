package interfaces

import (
	"context"
	"io"

	"github.com/goliatone/go-site-builder/document"
)

// UploadFile describes the file handed to a MediaProvider.
type UploadFile struct {
	Filename string
	MimeType string
	Size     int64
	Body     io.Reader
}

// UploadProgressFunc receives progress updates while an upload is in flight.
type UploadProgressFunc func(document.UploadProgress)

// MediaProvider owns media transport and storage. The builder only keeps the
// returned asset records.
type MediaProvider interface {
	ListAssets(ctx context.Context, weddingID string) ([]document.MediaAsset, error)
	UploadAsset(ctx context.Context, weddingID string, file UploadFile, opts document.UploadOptions, progress UploadProgressFunc) (document.MediaAsset, error)
	DeleteAsset(ctx context.Context, assetID string) error
}
