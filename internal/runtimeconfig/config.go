package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

var (
	ErrMaxSectionsInvalid       = errors.New("builder config: max sections per page must be positive")
	ErrMaxHistoryInvalid        = errors.New("builder config: max history entries must be positive")
	ErrRevisionRetentionInvalid = errors.New("builder config: revision retention must be positive")
	ErrRevisionListLimitInvalid = errors.New("builder config: revision list limit must be positive")
	ErrRevisionStoreUnknown     = errors.New("builder config: revision store is invalid")
	ErrRevisionStoreDSNRequired = errors.New("builder config: revision store dsn is required for sql backends")
	ErrRevisionRedisURLRequired = errors.New("builder config: revision store redis url is required")
	ErrAutosaveIntervalInvalid  = errors.New("builder config: autosave interval must be positive when autosave is enabled")
	ErrMediaLimitsInvalid       = errors.New("builder config: media limits must be positive")
	ErrCommandTimeoutInvalid    = errors.New("builder config: command timeout must be zero or positive")
	ErrLoggingProviderRequired  = errors.New("builder config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("builder config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("builder config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("builder config: logging format is invalid")
)

// Config aggregates the tunables of the site builder. Every field can be
// overridden from the environment through FromEnv.
type Config struct {
	Editor    EditorConfig    `envconfig:"EDITOR"`
	Revisions RevisionsConfig `envconfig:"REVISIONS"`
	Autosave  AutosaveConfig  `envconfig:"AUTOSAVE"`
	Media     MediaConfig     `envconfig:"MEDIA"`
	Commands  CommandsConfig  `envconfig:"COMMANDS"`
	Features  Features        `envconfig:"FEATURES"`
	Logging   LoggingConfig   `envconfig:"LOGGING"`
}

// EditorConfig bounds the in-memory document editor.
type EditorConfig struct {
	MaxSectionsPerPage int `envconfig:"MAX_SECTIONS_PER_PAGE"`
	MaxHistoryEntries  int `envconfig:"MAX_HISTORY_ENTRIES"`
}

// RevisionsConfig selects the revision log backend and its retention.
type RevisionsConfig struct {
	MaxRetained int           `envconfig:"MAX_RETAINED"`
	ListLimit   int           `envconfig:"LIST_LIMIT"`
	Store       string        `envconfig:"STORE"`
	RedisURL    string        `envconfig:"REDIS_URL"`
	DSN         string        `envconfig:"DSN"`
	CacheTTL    time.Duration `envconfig:"CACHE_TTL"`
}

type AutosaveConfig struct {
	Enabled  bool          `envconfig:"ENABLED"`
	Interval time.Duration `envconfig:"INTERVAL"`
}

// MediaConfig captures upload limits.
type MediaConfig struct {
	MaxAssets           int      `envconfig:"MAX_ASSETS"`
	MaxFileSizeMB       int      `envconfig:"MAX_FILE_SIZE_MB"`
	SupportedImageTypes []string `envconfig:"SUPPORTED_IMAGE_TYPES"`
}

// MaxFileSizeBytes converts the configured megabyte limit.
func (m MediaConfig) MaxFileSizeBytes() int64 {
	return int64(m.MaxFileSizeMB) * 1024 * 1024
}

// CommandsConfig controls the command handlers wrapping save, publish and
// rollback. A zero timeout disables the deadline.
type CommandsConfig struct {
	Timeout time.Duration `envconfig:"TIMEOUT"`
}

// Features toggles optional behaviour.
type Features struct {
	Logger      bool `envconfig:"LOGGER"`
	AutoPublish bool `envconfig:"AUTO_PUBLISH"`
	Revisions   bool `envconfig:"REVISIONS"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `envconfig:"PROVIDER"`
	Level     string   `envconfig:"LEVEL"`
	Format    string   `envconfig:"FORMAT"`
	AddSource bool     `envconfig:"ADD_SOURCE"`
	Focus     []string `envconfig:"FOCUS"`
}

// DefaultConfig returns the limits the builder ships with.
func DefaultConfig() Config {
	return Config{
		Editor: EditorConfig{
			MaxSectionsPerPage: 20,
			MaxHistoryEntries:  50,
		},
		Revisions: RevisionsConfig{
			MaxRetained: 10,
			ListLimit:   5,
			Store:       "memory",
			CacheTTL:    30 * time.Second,
		},
		Autosave: AutosaveConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
		},
		Media: MediaConfig{
			MaxAssets:           100,
			MaxFileSizeMB:       10,
			SupportedImageTypes: []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
		},
		Commands: CommandsConfig{
			Timeout: 15 * time.Second,
		},
		Features: Features{
			AutoPublish: true,
			Revisions:   true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// FromEnv overlays environment variables named <PREFIX>_<SECTION>_<FIELD>
// (for example SITEBUILDER_AUTOSAVE_INTERVAL=45s) onto DefaultConfig.
func FromEnv(prefix string) (Config, error) {
	cfg := DefaultConfig()
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("builder config: read environment: %w", err)
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Editor.MaxSectionsPerPage <= 0 {
		return ErrMaxSectionsInvalid
	}
	if cfg.Editor.MaxHistoryEntries <= 0 {
		return ErrMaxHistoryInvalid
	}
	if cfg.Revisions.MaxRetained <= 0 {
		return ErrRevisionRetentionInvalid
	}
	if cfg.Revisions.ListLimit <= 0 {
		return ErrRevisionListLimitInvalid
	}
	switch store := normalize(cfg.Revisions.Store); store {
	case "", "memory":
	case "redis":
		if strings.TrimSpace(cfg.Revisions.RedisURL) == "" {
			return ErrRevisionRedisURLRequired
		}
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Revisions.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrRevisionStoreDSNRequired, store)
		}
	default:
		return fmt.Errorf("%w: %s", ErrRevisionStoreUnknown, store)
	}
	if cfg.Autosave.Enabled && cfg.Autosave.Interval <= 0 {
		return ErrAutosaveIntervalInvalid
	}
	if cfg.Media.MaxAssets <= 0 {
		return fmt.Errorf("%w: max assets", ErrMediaLimitsInvalid)
	}
	if cfg.Media.MaxFileSizeMB <= 0 {
		return fmt.Errorf("%w: max file size", ErrMediaLimitsInvalid)
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(provider, format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "zap":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(provider, format string) bool {
	format = normalize(format)
	switch provider {
	case "gologger":
		return format == "json" || format == "console" || format == "pretty"
	case "zap":
		return format == "json" || format == "console"
	default:
		return true
	}
}
