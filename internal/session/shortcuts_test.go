package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/editor"
	"github.com/goliatone/go-site-builder/internal/media"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

func TestShortcutFor(t *testing.T) {
	cases := map[string]ShortcutID{
		"Meta+s":       ShortcutSave,
		"ctrl+S":       ShortcutSave,
		"Cmd+Shift+Z":  ShortcutRedo,
		"Shift+Ctrl+z": ShortcutRedo,
		"Ctrl+z":       ShortcutUndo,
		"Escape":       ShortcutDeselect,
		"Backspace":    ShortcutDelete,
	}
	for key, want := range cases {
		got, ok := ShortcutFor(key)
		if !ok || got != want {
			t.Fatalf("%s: expected %s, got %s (%v)", key, want, got, ok)
		}
	}
	if _, ok := ShortcutFor("Ctrl+q"); ok {
		t.Fatal("expected unbound key")
	}
	if len(Shortcuts()) != 6 {
		t.Fatalf("expected six shortcuts, got %d", len(Shortcuts()))
	}
}

func TestHandleShortcutEditing(t *testing.T) {
	c, persister, _ := newController(t)
	ctx := context.Background()

	c.Dispatch(editor.SelectSection{SectionID: "sec_2"})
	handled, err := c.HandleShortcut(ctx, "Delete")
	if !handled || err != nil {
		t.Fatalf("expected delete to be handled, got %v (%v)", handled, err)
	}
	state := c.State()
	if state.Project.Pages[0].Section("sec_2") != nil {
		t.Fatal("expected selected section to be removed")
	}

	if handled, _ := c.HandleShortcut(ctx, "Meta+z"); !handled {
		t.Fatal("expected undo to be handled")
	}
	if c.State().Project.Pages[0].Section("sec_2") == nil {
		t.Fatal("expected undo to restore the section")
	}
	if handled, _ := c.HandleShortcut(ctx, "Ctrl+Shift+z"); !handled || c.State().Project.Pages[0].Section("sec_2") != nil {
		t.Fatal("expected redo to remove the section again")
	}

	if handled, err := c.HandleShortcut(ctx, "Ctrl+s"); !handled || err != nil || persister.count() != 1 {
		t.Fatalf("expected save shortcut to persist, got %v (%v)", handled, err)
	}
}

func TestHandleShortcutDeleteGuards(t *testing.T) {
	c, _, _ := newController(t)
	ctx := context.Background()
	pageID := activePageID(c)

	if handled, _ := c.HandleShortcut(ctx, "Backspace"); handled {
		t.Fatal("expected delete without selection to be ignored")
	}

	locked := true
	c.Dispatch(editor.UpdateSection{PageID: pageID, SectionID: "sec_1", Patch: document.SectionPatch{Locked: &locked}})
	c.Dispatch(editor.SelectSection{SectionID: "sec_1"})
	if handled, _ := c.HandleShortcut(ctx, "Backspace"); handled {
		t.Fatal("expected locked section to be kept")
	}

	c.Dispatch(editor.SelectSection{SectionID: "sec_3"})
	c.HandleShortcut(ctx, "Meta+p")
	if !editor.IsPreview(c.State()) {
		t.Fatal("expected preview toggle")
	}
	if handled, _ := c.HandleShortcut(ctx, "Delete"); handled {
		t.Fatal("expected delete to be ignored in preview")
	}
	c.HandleShortcut(ctx, "Ctrl+p")
	if editor.IsPreview(c.State()) {
		t.Fatal("expected preview to toggle back")
	}

	c.HandleShortcut(ctx, "Escape")
	if c.State().Selection.SelectedSectionID != "" {
		t.Fatal("expected escape to deselect")
	}
}

type stubMediaProvider struct {
	assets  []document.MediaAsset
	deleted []string
	err     error
}

func (s *stubMediaProvider) ListAssets(context.Context, string) ([]document.MediaAsset, error) {
	return s.assets, s.err
}

func (s *stubMediaProvider) UploadAsset(_ context.Context, weddingID string, file interfaces.UploadFile, _ document.UploadOptions, progress interfaces.UploadProgressFunc) (document.MediaAsset, error) {
	progress(document.UploadProgress{Progress: 50})
	if s.err != nil {
		return document.MediaAsset{}, s.err
	}
	return document.MediaAsset{ID: "asset_" + file.Filename, WeddingID: weddingID, URL: "https://cdn.example/" + file.Filename}, nil
}

func (s *stubMediaProvider) DeleteAsset(_ context.Context, assetID string) error {
	s.deleted = append(s.deleted, assetID)
	return s.err
}

func pngFile(name string) interfaces.UploadFile {
	return interfaces.UploadFile{Filename: name, MimeType: "image/png", Size: 2048, Body: strings.NewReader("png")}
}

func TestUploadMediaAddsAssetAndAttachesToPickerTarget(t *testing.T) {
	provider := &stubMediaProvider{assets: []document.MediaAsset{{ID: "asset_old"}}}
	svc := media.NewService(provider, media.WithUploadIDGenerator(func() string { return "upl_1" }))
	c, _, _ := newController(t, WithMediaService(svc))
	ctx := context.Background()

	if assets, err := c.LoadMedia(ctx); err != nil || len(assets) != 1 {
		t.Fatalf("load media: %v (%d)", err, len(assets))
	}
	c.Dispatch(editor.OpenMediaLibrary{TargetSectionID: "sec_1"})

	asset, err := c.UploadMedia(ctx, pngFile("hero.png"), document.UploadOptions{})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(asset.AttachedSectionIDs) != 1 || asset.AttachedSectionIDs[0] != "sec_1" {
		t.Fatalf("expected attachment to picker target, got %v", asset.AttachedSectionIDs)
	}
	state := c.State()
	if len(state.MediaAssets) != 2 || state.MediaAssets[0].ID != "asset_hero.png" {
		t.Fatalf("expected new asset first in library, got %+v", state.MediaAssets)
	}
	if len(state.UploadQueue) != 0 {
		t.Fatalf("expected queue to drain, got %+v", state.UploadQueue)
	}

	if err := c.DeleteMedia(ctx, "asset_old"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(c.State().MediaAssets) != 1 || len(provider.deleted) != 1 {
		t.Fatal("expected asset removed from provider and library")
	}
}

func TestUploadMediaFailureKeepsQueueEntry(t *testing.T) {
	provider := &stubMediaProvider{err: errors.New("bucket unavailable")}
	svc := media.NewService(provider, media.WithUploadIDGenerator(func() string { return "upl_1" }))
	c, _, _ := newController(t, WithMediaService(svc))

	if _, err := c.UploadMedia(context.Background(), pngFile("hero.png"), document.UploadOptions{}); err == nil {
		t.Fatal("expected upload error")
	}
	state := c.State()
	if len(state.UploadQueue) != 1 || state.UploadQueue[0].Status != document.MediaStatusError {
		t.Fatalf("expected errored queue entry, got %+v", state.UploadQueue)
	}
	if state.Error != "bucket unavailable" {
		t.Fatalf("unexpected error banner %q", state.Error)
	}
}

func TestMediaWithoutService(t *testing.T) {
	c, _, _ := newController(t)
	if _, err := c.LoadMedia(context.Background()); !errors.Is(err, ErrMediaUnavailable) {
		t.Fatalf("expected ErrMediaUnavailable, got %v", err)
	}
}
