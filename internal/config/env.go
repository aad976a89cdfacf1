package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SITENAV"

// EnvConfig holds all environment-based configuration.
// Field names map to environment variables with the SITENAV_ prefix.
type EnvConfig struct {
	// Host is the preview server host to bind to.
	// Env: SITENAV_HOST (default: 127.0.0.1)
	Host string `envconfig:"HOST" default:"127.0.0.1"`

	// Port is the preview server port.
	// Env: SITENAV_PORT (default: 4322)
	Port int `envconfig:"PORT" default:"4322"`

	// ContentDir is the directory holding content documents.
	// Env: SITENAV_CONTENT_DIR (default: src/content/docs)
	ContentDir string `envconfig:"CONTENT_DIR" default:"src/content/docs"`

	// SiteFile is a YAML or JSON site definition. Empty uses the built-in course.
	// Env: SITENAV_SITE_FILE
	SiteFile string `envconfig:"SITE_FILE"`

	// ContentExtensions lists document extensions.
	// Env: SITENAV_CONTENT_EXTENSIONS (default: .md,.mdx,.mdoc)
	ContentExtensions string `envconfig:"CONTENT_EXTENSIONS" default:".md,.mdx,.mdoc"`

	// SkipContentCheck validates structure only.
	// Env: SITENAV_SKIP_CONTENT_CHECK (default: false)
	SkipContentCheck bool `envconfig:"SKIP_CONTENT_CHECK" default:"false"`

	// LogLevel is the log verbosity level.
	// Env: SITENAV_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: SITENAV_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// CORSOrigins is a comma-separated list of allowed origins.
	// Env: SITENAV_CORS_ORIGINS (default: *)
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`

	// RevalidateInterval is how often serve re-validates the sidebar.
	// Zero disables it.
	// Env: SITENAV_REVALIDATE_INTERVAL (default: 30s)
	RevalidateInterval time.Duration `envconfig:"REVALIDATE_INTERVAL" default:"30s"`
}

// LoadFromEnv loads configuration from SITENAV_ environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	var opts []AppConfigOption

	if e.Host != "" {
		opts = append(opts, WithHost(e.Host))
	}
	if e.Port != 0 {
		opts = append(opts, WithPort(e.Port))
	}
	if e.ContentDir != "" {
		opts = append(opts, WithContentDir(e.ContentDir))
	}
	if e.SiteFile != "" {
		opts = append(opts, WithSiteFile(e.SiteFile))
	}
	if e.LogLevel != "" {
		opts = append(opts, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		opts = append(opts, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	opts = append(opts,
		WithContentExtensions(ParseList(e.ContentExtensions)),
		WithSkipContentCheck(e.SkipContentCheck),
		WithCORSOrigins(ParseList(e.CORSOrigins)),
		WithRevalidateInterval(e.RevalidateInterval),
	)

	return NewAppConfigWithOptions(opts...)
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
