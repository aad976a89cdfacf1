// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost       = "127.0.0.1"
	DefaultPort       = 4322
	DefaultContentDir = "src/content/docs"
	DefaultLogLevel   = "INFO"
	DefaultCORSOrigin = "*"

	// DefaultRevalidateInterval is how often serve re-checks content.
	DefaultRevalidateInterval = 30 * time.Second
)

// DefaultContentExtensions lists the document extensions recognised in the
// content directory.
func DefaultContentExtensions() []string {
	return []string{".md", ".mdx", ".mdoc"}
}

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig holds the main application configuration.
type AppConfig struct {
	host              string
	port              int
	contentDir        string
	siteFile          string
	contentExtensions []string
	skipContentCheck  bool
	logLevel          string
	logFormat         LogFormat
	corsOrigins       []string
	revalidate        time.Duration
}

// NewAppConfig creates an AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:              DefaultHost,
		port:              DefaultPort,
		contentDir:        DefaultContentDir,
		contentExtensions: DefaultContentExtensions(),
		logLevel:          DefaultLogLevel,
		logFormat:         LogFormatPretty,
		corsOrigins:       []string{DefaultCORSOrigin},
		revalidate:        DefaultRevalidateInterval,
	}
}

// Host returns the preview server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the preview server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the preview server listen address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// ContentDir returns the directory holding content documents.
func (c AppConfig) ContentDir() string { return c.contentDir }

// SiteFile returns the site definition file, empty for the built-in course.
func (c AppConfig) SiteFile() string { return c.siteFile }

// ContentExtensions returns the recognised document extensions.
func (c AppConfig) ContentExtensions() []string {
	out := make([]string, len(c.contentExtensions))
	copy(out, c.contentExtensions)
	return out
}

// SkipContentCheck reports whether slugs are validated without looking for
// content documents.
func (c AppConfig) SkipContentCheck() bool { return c.skipContentCheck }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// CORSOrigins returns the origins allowed to call the preview API.
func (c AppConfig) CORSOrigins() []string {
	out := make([]string, len(c.corsOrigins))
	copy(out, c.corsOrigins)
	return out
}

// RevalidateInterval returns how often serve re-validates the sidebar.
// Zero disables periodic validation.
func (c AppConfig) RevalidateInterval() time.Duration { return c.revalidate }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithContentDir sets the content directory.
func WithContentDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.contentDir = dir }
}

// WithSiteFile sets the site definition file.
func WithSiteFile(path string) AppConfigOption {
	return func(c *AppConfig) { c.siteFile = path }
}

// WithContentExtensions sets the recognised document extensions. Empty
// input keeps the current list.
func WithContentExtensions(exts []string) AppConfigOption {
	return func(c *AppConfig) {
		if cleaned := ParseList(strings.Join(exts, ",")); len(cleaned) > 0 {
			c.contentExtensions = cleaned
		}
	}
}

// WithSkipContentCheck disables the content existence check.
func WithSkipContentCheck(skip bool) AppConfigOption {
	return func(c *AppConfig) { c.skipContentCheck = skip }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		if len(origins) > 0 {
			c.corsOrigins = append([]string(nil), origins...)
		}
	}
}

// WithRevalidateInterval sets the periodic validation interval. Negative
// values disable it.
func WithRevalidateInterval(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d < 0 {
			d = 0
		}
		c.revalidate = d
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	return NewAppConfig().Apply(opts...)
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
func (c AppConfig) LogAttrs() []slog.Attr {
	siteFile := c.siteFile
	if siteFile == "" {
		siteFile = "(built-in course)"
	}
	return []slog.Attr{
		slog.String("site_file", siteFile),
		slog.String("content_dir", c.contentDir),
		slog.String("content_extensions", strings.Join(c.contentExtensions, ",")),
		slog.Bool("skip_content_check", c.skipContentCheck),
		slog.String("log_level", c.logLevel),
		slog.Duration("revalidate_interval", c.revalidate),
	}
}

// ParseList splits a comma-separated string, trimming blanks.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
