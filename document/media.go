package document

import "github.com/goliatone/go-site-builder/internal/util"

// MediaAssetType classifies uploaded assets.
type MediaAssetType string

const (
	MediaAssetImage    MediaAssetType = "image"
	MediaAssetVideo    MediaAssetType = "video"
	MediaAssetDocument MediaAssetType = "document"
)

// MediaAssetStatus tracks the processing lifecycle of an asset.
type MediaAssetStatus string

const (
	MediaStatusUploading  MediaAssetStatus = "uploading"
	MediaStatusProcessing MediaAssetStatus = "processing"
	MediaStatusReady      MediaAssetStatus = "ready"
	MediaStatusError      MediaAssetStatus = "error"
)

// MediaAsset is a stored asset record returned by the media collaborator.
type MediaAsset struct {
	ID                 string           `json:"id"`
	WeddingID          string           `json:"weddingId"`
	Filename           string           `json:"filename"`
	OriginalFilename   string           `json:"originalFilename"`
	MimeType           string           `json:"mimeType"`
	AssetType          MediaAssetType   `json:"assetType"`
	Status             MediaAssetStatus `json:"status"`
	URL                string           `json:"url"`
	ThumbnailURL       string           `json:"thumbnailUrl,omitempty"`
	Width              int              `json:"width,omitempty"`
	Height             int              `json:"height,omitempty"`
	SizeBytes          int64            `json:"sizeBytes"`
	AltText            string           `json:"altText,omitempty"`
	Caption            string           `json:"caption,omitempty"`
	Tags               []string         `json:"tags"`
	AttachedSectionIDs []string         `json:"attachedSectionIds"`
	Meta               MediaMeta        `json:"meta"`
}

type MediaMeta struct {
	UploadedAt string `json:"uploadedAtISO"`
	UpdatedAt  string `json:"updatedAtISO"`
}

// Clone returns an independent copy of the asset.
func (a MediaAsset) Clone() MediaAsset {
	cloned := a
	cloned.Tags = util.CloneStrings(a.Tags)
	cloned.AttachedSectionIDs = util.CloneStrings(a.AttachedSectionIDs)
	return cloned
}

// UploadProgress reports transient upload state for one asset.
type UploadProgress struct {
	AssetID  string           `json:"assetId"`
	Filename string           `json:"filename"`
	Progress int              `json:"progress"`
	Status   MediaAssetStatus `json:"status"`
	Error    string           `json:"error,omitempty"`
}

// UploadOptions carries optional metadata supplied with an upload.
type UploadOptions struct {
	AltText           string
	Caption           string
	Tags              []string
	AttachToSectionID string
}
