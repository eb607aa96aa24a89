package runtimeconfig_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-site-builder/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Editor.MaxSectionsPerPage != 20 || cfg.Editor.MaxHistoryEntries != 50 {
		t.Fatalf("unexpected editor defaults %+v", cfg.Editor)
	}
	if cfg.Autosave.Interval != 30*time.Second {
		t.Fatalf("expected 30s autosave, got %s", cfg.Autosave.Interval)
	}
	if got := cfg.Media.MaxFileSizeBytes(); got != 10*1024*1024 {
		t.Fatalf("expected 10MB limit, got %d", got)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"sections", func(c *runtimeconfig.Config) { c.Editor.MaxSectionsPerPage = 0 }, runtimeconfig.ErrMaxSectionsInvalid},
		{"history", func(c *runtimeconfig.Config) { c.Editor.MaxHistoryEntries = -1 }, runtimeconfig.ErrMaxHistoryInvalid},
		{"retention", func(c *runtimeconfig.Config) { c.Revisions.MaxRetained = 0 }, runtimeconfig.ErrRevisionRetentionInvalid},
		{"list limit", func(c *runtimeconfig.Config) { c.Revisions.ListLimit = 0 }, runtimeconfig.ErrRevisionListLimitInvalid},
		{"unknown store", func(c *runtimeconfig.Config) { c.Revisions.Store = "etcd" }, runtimeconfig.ErrRevisionStoreUnknown},
		{"sqlite dsn", func(c *runtimeconfig.Config) { c.Revisions.Store = "sqlite" }, runtimeconfig.ErrRevisionStoreDSNRequired},
		{"redis url", func(c *runtimeconfig.Config) { c.Revisions.Store = "redis" }, runtimeconfig.ErrRevisionRedisURLRequired},
		{"autosave", func(c *runtimeconfig.Config) { c.Autosave.Interval = 0 }, runtimeconfig.ErrAutosaveIntervalInvalid},
		{"media", func(c *runtimeconfig.Config) { c.Media.MaxAssets = 0 }, runtimeconfig.ErrMediaLimitsInvalid},
		{"timeout", func(c *runtimeconfig.Config) { c.Commands.Timeout = -time.Second }, runtimeconfig.ErrCommandTimeoutInvalid},
		{"provider required", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = ""
		}, runtimeconfig.ErrLoggingProviderRequired},
		{"provider unknown", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = "syslog"
		}, runtimeconfig.ErrLoggingProviderUnknown},
		{"level", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Level = "loud"
		}, runtimeconfig.ErrLoggingLevelInvalid},
		{"zap format", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = "zap"
			c.Logging.Format = "pretty"
		}, runtimeconfig.ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_AllowsDisabledAutosaveWithoutInterval(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Autosave.Enabled = false
	cfg.Autosave.Interval = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestFromEnvOverlaysDefaults(t *testing.T) {
	t.Setenv("SITEBUILDER_AUTOSAVE_INTERVAL", "45s")
	t.Setenv("SITEBUILDER_REVISIONS_STORE", "redis")
	t.Setenv("SITEBUILDER_REVISIONS_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SITEBUILDER_LOGGING_FOCUS", "builder.session,builder.revisions")

	cfg, err := runtimeconfig.FromEnv("sitebuilder")
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}
	if cfg.Autosave.Interval != 45*time.Second {
		t.Fatalf("expected 45s interval, got %s", cfg.Autosave.Interval)
	}
	if cfg.Revisions.Store != "redis" || cfg.Revisions.RedisURL == "" {
		t.Fatalf("unexpected revisions config %+v", cfg.Revisions)
	}
	if len(cfg.Logging.Focus) != 2 || cfg.Logging.Focus[1] != "builder.revisions" {
		t.Fatalf("unexpected focus %v", cfg.Logging.Focus)
	}
	if cfg.Editor.MaxSectionsPerPage != 20 {
		t.Fatalf("expected untouched defaults, got %d", cfg.Editor.MaxSectionsPerPage)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv("SITEBUILDER_EDITOR_MAX_HISTORY_ENTRIES", "many")
	if _, err := runtimeconfig.FromEnv("sitebuilder"); err == nil {
		t.Fatal("expected parse error")
	}
}
