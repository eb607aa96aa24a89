package di

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-site-builder/internal/logging/gologger"
	"github.com/goliatone/go-site-builder/internal/logging/zaplogger"
	"github.com/goliatone/go-site-builder/internal/runtimeconfig"
)

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider, ok := container.loggerProvider.(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}

	logger := provider.GetLogger("builder.test")
	if logger == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}

func TestConfigureLoggerProviderUsesZap(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "zap"
	cfg.Logging.Format = "console"

	container, err := NewContainer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	_, ok := container.loggerProvider.(*zaplogger.Provider)
	require.True(t, ok, "expected zap provider, got %T", container.loggerProvider)
}

func TestConfigureLoggerProviderDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = false

	container, err := NewContainer(cfg)
	require.NoError(t, err)
	require.Nil(t, container.LoggerProvider())
}
