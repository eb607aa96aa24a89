package zaplogger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-site-builder/internal/logging"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// Config mirrors the knobs exposed by zap.Config that the builder uses.
type Config struct {
	Level      string
	Encoding   string
	OutputPath string
}

// Provider adapts a zap logger to interfaces.LoggerProvider.
type Provider struct {
	base *zap.Logger
}

var _ interfaces.SyncingProvider = (*Provider)(nil)

// NewProvider builds a production zap logger from cfg. Unknown levels fall
// back to info and unknown encodings to json.
func NewProvider(cfg Config) (*Provider, error) {
	level := zap.NewAtomicLevel()
	name := strings.ToLower(strings.TrimSpace(cfg.Level))
	switch name {
	case "":
		name = "info"
	case "trace":
		name = "debug"
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoding := strings.ToLower(strings.TrimSpace(cfg.Encoding))
	if encoding != "console" {
		encoding = "json"
	}
	output := strings.TrimSpace(cfg.OutputPath)
	if output == "" {
		output = "stdout"
	}

	zapCfg := zap.Config{
		Level:             level,
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
	}
	base, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build zap logger: %w", err)
	}
	return &Provider{base: base}, nil
}

// Wrap reuses an existing zap logger.
func Wrap(base *zap.Logger) *Provider {
	if base == nil {
		base = zap.NewNop()
	}
	return &Provider{base: base}
}

func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.base == nil {
		return logging.NoOp()
	}
	logger := p.base
	if name = strings.TrimSpace(name); name != "" {
		logger = logger.Named(name)
	}
	return &adapter{sugar: logger.Sugar()}
}

// Sync flushes buffered entries.
func (p *Provider) Sync() error {
	if p == nil || p.base == nil {
		return nil
	}
	return p.base.Sync()
}

type adapter struct {
	sugar *zap.SugaredLogger
}

// zap has no trace level; trace entries are emitted at debug.
func (l *adapter) Trace(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

// Fatal logs at error level with fatal=true. The process is not terminated.
func (l *adapter) Fatal(msg string, args ...any) {
	l.sugar.Errorw(msg, append([]any{"fatal", true}, args...)...)
}

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	zfields := make([]any, 0, len(fields))
	for key, value := range fields {
		zfields = append(zfields, zap.Any(key, value))
	}
	return &adapter{sugar: l.sugar.With(zfields...)}
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	return l.WithFields(logging.ContextFields(ctx))
}
