package sitebuilder

import "github.com/goliatone/go-site-builder/internal/runtimeconfig"

var (
	ErrMaxSectionsInvalid       = runtimeconfig.ErrMaxSectionsInvalid
	ErrMaxHistoryInvalid        = runtimeconfig.ErrMaxHistoryInvalid
	ErrRevisionRetentionInvalid = runtimeconfig.ErrRevisionRetentionInvalid
	ErrRevisionListLimitInvalid = runtimeconfig.ErrRevisionListLimitInvalid
	ErrRevisionStoreUnknown     = runtimeconfig.ErrRevisionStoreUnknown
	ErrRevisionStoreDSNRequired = runtimeconfig.ErrRevisionStoreDSNRequired
	ErrRevisionRedisURLRequired = runtimeconfig.ErrRevisionRedisURLRequired
	ErrAutosaveIntervalInvalid  = runtimeconfig.ErrAutosaveIntervalInvalid
	ErrMediaLimitsInvalid       = runtimeconfig.ErrMediaLimitsInvalid
	ErrCommandTimeoutInvalid    = runtimeconfig.ErrCommandTimeoutInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	EditorConfig    = runtimeconfig.EditorConfig
	RevisionsConfig = runtimeconfig.RevisionsConfig
	AutosaveConfig  = runtimeconfig.AutosaveConfig
	MediaConfig     = runtimeconfig.MediaConfig
	CommandsConfig  = runtimeconfig.CommandsConfig
	Features        = runtimeconfig.Features
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv overlays SITEBUILDER_* environment variables onto the defaults.
func ConfigFromEnv() (Config, error) {
	return runtimeconfig.FromEnv("sitebuilder")
}
