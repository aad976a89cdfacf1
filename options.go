package sitenav

import (
	"io/fs"
	"log/slog"

	"github.com/timsexperiments/sitenav/domain/site"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	site             *site.Site
	siteFile         string
	contentDir       string
	contentFS        fs.FS
	extensions       []string
	skipContentCheck bool
	logger           *slog.Logger
}

func newClientConfig() *clientConfig {
	return &clientConfig{}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSite uses an in-memory site definition instead of the built-in course.
func WithSite(s site.Site) Option {
	return func(c *clientConfig) {
		c.site = &s
	}
}

// WithSiteFile loads the site definition from a YAML or JSON file.
func WithSiteFile(path string) Option {
	return func(c *clientConfig) {
		c.siteFile = path
	}
}

// WithContentDir checks slugs against documents under dir.
func WithContentDir(dir string) Option {
	return func(c *clientConfig) {
		c.contentDir = dir
	}
}

// WithContentFS checks slugs against documents in fsys. It takes precedence
// over WithContentDir.
func WithContentFS(fsys fs.FS) Option {
	return func(c *clientConfig) {
		c.contentFS = fsys
	}
}

// WithExtensions sets the document extensions a slug may resolve to.
// Defaults to .md, .mdx and .mdoc.
func WithExtensions(exts ...string) Option {
	return func(c *clientConfig) {
		c.extensions = append([]string(nil), exts...)
	}
}

// WithSkipContentCheck disables the content existence check even when a
// content root is configured.
func WithSkipContentCheck() Option {
	return func(c *clientConfig) {
		c.skipContentCheck = true
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
