package media_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/media"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

type stubProvider struct {
	assets   []document.MediaAsset
	uploaded []interfaces.UploadFile
	deleted  []string
	err      error
	steps    []int
}

func (s *stubProvider) ListAssets(context.Context, string) ([]document.MediaAsset, error) {
	return s.assets, s.err
}

func (s *stubProvider) UploadAsset(_ context.Context, weddingID string, file interfaces.UploadFile, _ document.UploadOptions, progress interfaces.UploadProgressFunc) (document.MediaAsset, error) {
	s.uploaded = append(s.uploaded, file)
	for _, step := range s.steps {
		progress(document.UploadProgress{Progress: step})
	}
	if s.err != nil {
		return document.MediaAsset{}, s.err
	}
	return document.MediaAsset{ID: "asset-1", URL: "https://cdn.local/" + file.Filename}, nil
}

func (s *stubProvider) DeleteAsset(_ context.Context, assetID string) error {
	s.deleted = append(s.deleted, assetID)
	return s.err
}

func pngFile(size int64) interfaces.UploadFile {
	return interfaces.UploadFile{Filename: "couple.png", MimeType: "image/png", Size: size, Body: strings.NewReader("x")}
}

func TestValidateUpload(t *testing.T) {
	limits := media.DefaultLimits()

	if err := media.ValidateUpload(pngFile(1024), 0, limits); err != nil {
		t.Fatalf("expected valid upload, got %v", err)
	}

	err := media.ValidateUpload(interfaces.UploadFile{Filename: "notes.pdf", MimeType: "application/pdf", Size: 11 * 1024 * 1024}, 0, limits)
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation.Errors, got %T %v", err, err)
	}
	if errs["mimeType"] == nil || errs["size"] == nil {
		t.Fatalf("expected mimeType and size errors, got %v", errs)
	}
	if errs["filename"] != nil {
		t.Fatalf("unexpected filename error %v", errs["filename"])
	}

	if err := media.ValidateUpload(pngFile(10), limits.MaxAssets, limits); !errors.Is(err, media.ErrAssetLimitReached) {
		t.Fatalf("expected ErrAssetLimitReached, got %v", err)
	}
}

func TestAssetTypeFor(t *testing.T) {
	cases := map[string]document.MediaAssetType{
		"image/webp":      document.MediaAssetImage,
		"VIDEO/MP4":       document.MediaAssetVideo,
		"application/pdf": document.MediaAssetDocument,
		"":                document.MediaAssetDocument,
	}
	for mime, want := range cases {
		if got := media.AssetTypeFor(mime); got != want {
			t.Fatalf("%q: expected %s, got %s", mime, want, got)
		}
	}
}

func TestUploadReportsProgressAndNormalizesAsset(t *testing.T) {
	provider := &stubProvider{steps: []int{40, 140}}
	svc := media.NewService(provider, media.WithUploadIDGenerator(func() string { return "upl_1" }))

	var updates []document.UploadProgress
	asset, err := svc.Upload(context.Background(), media.UploadRequest{
		WeddingID: "w1",
		File:      pngFile(2048),
		Options:   document.UploadOptions{AttachToSectionID: "sec_hero", Tags: []string{"hero"}},
	}, func(p document.UploadProgress) { updates = append(updates, p) })
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if asset.AssetType != document.MediaAssetImage || asset.Status != document.MediaStatusReady {
		t.Fatalf("unexpected asset %+v", asset)
	}
	if asset.ThumbnailURL != asset.URL || asset.WeddingID != "w1" || asset.OriginalFilename != "couple.png" {
		t.Fatalf("expected normalized fields, got %+v", asset)
	}
	if len(asset.AttachedSectionIDs) != 1 || asset.AttachedSectionIDs[0] != "sec_hero" {
		t.Fatalf("expected attachment, got %v", asset.AttachedSectionIDs)
	}

	wantProgress := []int{0, 40, 100, 100}
	if len(updates) != len(wantProgress) {
		t.Fatalf("expected %d updates, got %+v", len(wantProgress), updates)
	}
	for i, want := range wantProgress {
		if updates[i].Progress != want || updates[i].AssetID != "upl_1" {
			t.Fatalf("update %d: unexpected %+v", i, updates[i])
		}
	}
	if updates[len(updates)-1].Status != document.MediaStatusReady {
		t.Fatalf("expected final ready status, got %+v", updates[len(updates)-1])
	}
}

func TestUploadFailureMarksQueueEntry(t *testing.T) {
	provider := &stubProvider{err: errors.New("bucket offline")}
	svc := media.NewService(provider)

	var last document.UploadProgress
	_, err := svc.Upload(context.Background(), media.UploadRequest{WeddingID: "w1", File: pngFile(10)}, func(p document.UploadProgress) { last = p })
	if err == nil {
		t.Fatal("expected upload error")
	}
	if last.Status != document.MediaStatusError || last.Error != "bucket offline" {
		t.Fatalf("unexpected final progress %+v", last)
	}
}

func TestUploadRejectsInvalidFileWithoutCallingProvider(t *testing.T) {
	provider := &stubProvider{}
	svc := media.NewService(provider, media.WithLimits(media.Limits{MaxAssets: 1, MaxFileSizeBytes: 100}))

	if _, err := svc.Upload(context.Background(), media.UploadRequest{File: pngFile(1000)}, nil); err == nil {
		t.Fatal("expected size error")
	}
	if len(provider.uploaded) != 0 {
		t.Fatalf("provider should not be called, got %d uploads", len(provider.uploaded))
	}
}

func TestServiceWithoutProvider(t *testing.T) {
	svc := media.NewService(nil)
	if _, err := svc.List(context.Background(), "w1"); !errors.Is(err, media.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if err := svc.Delete(context.Background(), "a"); !errors.Is(err, media.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestListReturnsCopies(t *testing.T) {
	provider := &stubProvider{assets: []document.MediaAsset{{ID: "a", Tags: []string{"x"}}}}
	svc := media.NewService(provider)
	assets, err := svc.List(context.Background(), "w1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	assets[0].Tags[0] = "mutated"
	if provider.assets[0].Tags[0] != "x" {
		t.Fatal("expected List to copy assets")
	}
}

func TestAttachIsIdempotent(t *testing.T) {
	asset := media.Attach(document.MediaAsset{ID: "a"}, "sec_1")
	asset = media.Attach(asset, "sec_1")
	if len(asset.AttachedSectionIDs) != 1 {
		t.Fatalf("expected single attachment, got %v", asset.AttachedSectionIDs)
	}
}
