package gologger

import (
	"context"
	"maps"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-site-builder/internal/logging"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

type entry struct {
	level string
	msg   string
}

type recorder struct {
	entries  []entry
	fields   []map[string]any
	contexts []context.Context
}

var _ glog.Logger = (*recorder)(nil)
var _ glog.FieldsLogger = (*recorder)(nil)

func (r *recorder) log(level, msg string) { r.entries = append(r.entries, entry{level, msg}) }

func (r *recorder) Trace(msg string, _ ...any) { r.log("trace", msg) }
func (r *recorder) Debug(msg string, _ ...any) { r.log("debug", msg) }
func (r *recorder) Info(msg string, _ ...any)  { r.log("info", msg) }
func (r *recorder) Warn(msg string, _ ...any)  { r.log("warn", msg) }
func (r *recorder) Error(msg string, _ ...any) { r.log("error", msg) }
func (r *recorder) Fatal(msg string, _ ...any) { r.log("fatal", msg) }

func (r *recorder) WithContext(ctx context.Context) glog.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

func (r *recorder) WithFields(fields map[string]any) glog.Logger {
	r.fields = append(r.fields, maps.Clone(fields))
	return r
}

func TestNewProvider(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "console with focus", cfg: Config{Level: "debug", Format: "console", Focus: []string{" builder.session ", ""}}},
		{name: "json", cfg: Config{Level: "warning", Format: "json"}},
		{name: "unknown format", cfg: Config{Format: "xml"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewProvider(tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider: %v", err)
			}
			logging.SessionLogger(p).Debug("session.autosave.tick")
		})
	}
}

func TestNilProviderFallsBackToNoOp(t *testing.T) {
	var p *Provider
	p.GetLogger("builder.media").Info("media.upload.started")
}

func TestAdapterForwardsLevels(t *testing.T) {
	rec := &recorder{}
	var logger interfaces.Logger = wrap(rec)

	logger.Trace("a")
	logger.Debug("b")
	logger.Info("c")
	logger.Warn("d")
	logger.Error("e")
	logger.Fatal("f")

	want := []entry{{"trace", "a"}, {"debug", "b"}, {"info", "c"}, {"warn", "d"}, {"error", "e"}, {"fatal", "f"}}
	if len(rec.entries) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), rec.entries)
	}
	for i := range want {
		if rec.entries[i] != want[i] {
			t.Fatalf("entry %d: expected %v, got %v", i, want[i], rec.entries[i])
		}
	}
}

func TestAdapterClonesFields(t *testing.T) {
	rec := &recorder{}
	fields := map[string]any{"section_id": "sec_1"}
	logging.WithFields(wrap(rec), fields)
	fields["section_id"] = "sec_2"

	if len(rec.fields) != 1 || rec.fields[0]["section_id"] != "sec_1" {
		t.Fatalf("expected cloned fields, got %v", rec.fields)
	}
}

func TestAdapterLiftsDocumentContext(t *testing.T) {
	rec := &recorder{}
	ctx := logging.ContextWithDocument(context.Background(), "w1", "proj_1")
	wrap(rec).WithContext(ctx)

	if len(rec.contexts) != 1 || rec.contexts[0] != ctx {
		t.Fatalf("expected context propagation, got %#v", rec.contexts)
	}
	if len(rec.fields) != 1 || rec.fields[0]["wedding_id"] != "w1" || rec.fields[0]["project_id"] != "proj_1" {
		t.Fatalf("expected document fields to be attached, got %v", rec.fields)
	}
}
