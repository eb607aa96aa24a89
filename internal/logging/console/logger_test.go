package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-site-builder/internal/logging"
	"github.com/goliatone/go-site-builder/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2026, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := logging.ModuleLogger(provider, "builder.session")
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"correlation_id": "req-1234",
	})
	logger = logger.WithContext(ctx)

	logger.Info("session.save.failed",
		"wedding_id", "w1",
		"error", errors.New("network down"),
		"elapsed", 1500*time.Millisecond,
	)

	got := strings.TrimSpace(buf.String())
	want := `2026-03-14T15:09:26.535897Z INFO session.save.failed correlation_id=req-1234 elapsed=1.5s error="network down" logger=builder.session module=builder.session wedding_id=w1`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel, ok := console.ParseLevel("warning")
	if !ok {
		t.Fatal("expected warning to parse")
	}
	provider := console.NewProvider(console.Options{Writer: &buf, MinLevel: &minLevel})

	logger := provider.GetLogger("builder.test")
	logger.Info("ignored.info")
	logger.Warn("included.warn", "odd")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.warn") || !strings.Contains(lines[0], "field_0=odd") {
		t.Fatalf("unexpected line %s", lines[0])
	}
}

func TestParseLevelRejectsUnknown(t *testing.T) {
	if _, ok := console.ParseLevel("verbose"); ok {
		t.Fatal("expected unknown level to be rejected")
	}
}
