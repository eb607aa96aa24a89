package sitebuilder_test

import (
	"context"
	"testing"

	sitebuilder "github.com/goliatone/go-site-builder"
	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/editor"
)

func TestModuleOpenSessionSaveAndList(t *testing.T) {
	ctx := context.Background()
	cfg := sitebuilder.DefaultConfig()
	cfg.Autosave.Enabled = false

	module, err := sitebuilder.New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	ctrl, err := module.OpenSession(ctx, "w-facade", nil)
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}
	state := ctrl.Dispatch(editor.AddSectionByType{PageID: ctrl.State().Selection.ActivePageID, Type: document.SectionStory})
	if !state.Dirty {
		t.Fatal("expected document to be dirty after adding a section")
	}
	if err := ctrl.Save(ctx); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	list, err := module.Revisions(ctx, "w-facade")
	if err != nil {
		t.Fatalf("Revisions returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one revision, got %d", len(list))
	}
	drafts, err := module.Drafts().List(ctx)
	if err != nil || len(drafts) != 1 {
		t.Fatalf("expected one draft, got %d (%v)", len(drafts), err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := sitebuilder.DefaultConfig()
	cfg.Media.MaxAssets = 0
	if _, err := sitebuilder.New(cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCheckPublishAndHints(t *testing.T) {
	issue := sitebuilder.CheckPublish(&document.Project{})
	if issue == nil {
		t.Fatal("expected a publish issue for a project without pages")
	}
	if hints := sitebuilder.PublishHints(issue.Message); len(hints) == 0 {
		t.Fatalf("expected hints for %q", issue.Message)
	}
}

func TestApplyBindingsWithoutDataAndResolveTheme(t *testing.T) {
	project := sitebuilder.Upgrade("w1", document.LayoutConfig{})
	if got := sitebuilder.ApplyBindings(project, nil); got != project {
		t.Fatal("expected nil wedding data to leave the project as given")
	}

	project.TemplateID = "coastal-breeze"
	project.ThemeID = "ocean"
	tokens := sitebuilder.ResolveTheme(project)
	if tokens.ColorAccent != "#7CC4B4" || tokens.ColorPrimary != "#1E5F6F" {
		t.Fatalf("expected ocean tokens in the seafoam-sand colorway, got %+v", tokens)
	}
}
