package sitebuilder_test

import (
	"errors"
	"testing"

	sitebuilder "github.com/goliatone/go-site-builder"
)

func TestConfigValidateRejectsUnknownRevisionStore(t *testing.T) {
	cfg := sitebuilder.DefaultConfig()
	cfg.Revisions.Store = "mongo"
	if err := cfg.Validate(); !errors.Is(err, sitebuilder.ErrRevisionStoreUnknown) {
		t.Fatalf("expected ErrRevisionStoreUnknown, got %v", err)
	}
}

func TestConfigFromEnvUsesSitebuilderPrefix(t *testing.T) {
	t.Setenv("SITEBUILDER_EDITOR_MAX_SECTIONS_PER_PAGE", "12")
	cfg, err := sitebuilder.ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv returned error: %v", err)
	}
	if cfg.Editor.MaxSectionsPerPage != 12 {
		t.Fatalf("expected 12, got %d", cfg.Editor.MaxSectionsPerPage)
	}
}
