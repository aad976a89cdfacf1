package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	assert.Equal(t, DefaultHost, cfg.Host())
	assert.Equal(t, DefaultPort, cfg.Port())
	assert.Equal(t, "127.0.0.1:4322", cfg.Addr())
	assert.Equal(t, DefaultContentDir, cfg.ContentDir())
	assert.Equal(t, "", cfg.SiteFile())
	assert.Equal(t, []string{".md", ".mdx", ".mdoc"}, cfg.ContentExtensions())
	assert.False(t, cfg.SkipContentCheck())
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel())
	assert.Equal(t, LogFormatPretty, cfg.LogFormat())
	assert.Equal(t, 30*time.Second, cfg.RevalidateInterval())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins())
}

func TestAppConfig_Apply(t *testing.T) {
	base := NewAppConfig()
	cfg := base.Apply(
		WithHost("0.0.0.0"),
		WithPort(9000),
		WithContentDir("docs"),
		WithSiteFile("site.yaml"),
		WithContentExtensions([]string{" .md ", ""}),
		WithSkipContentCheck(true),
		WithLogLevel("DEBUG"),
		WithLogFormat(LogFormatJSON),
		WithCORSOrigins([]string{"http://localhost:4321"}),
		WithRevalidateInterval(-time.Second),
	)

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, "docs", cfg.ContentDir())
	assert.Equal(t, "site.yaml", cfg.SiteFile())
	assert.Equal(t, []string{".md"}, cfg.ContentExtensions())
	assert.True(t, cfg.SkipContentCheck())
	assert.Equal(t, "DEBUG", cfg.LogLevel())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, []string{"http://localhost:4321"}, cfg.CORSOrigins())
	assert.Zero(t, cfg.RevalidateInterval())

	assert.Equal(t, DefaultPort, base.Port(), "Apply must not mutate the receiver")
}

func TestAppConfig_EmptyListsKeepDefaults(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithContentExtensions(nil), WithCORSOrigins(nil))

	assert.Equal(t, DefaultContentExtensions(), cfg.ContentExtensions())
	assert.Equal(t, []string{DefaultCORSOrigin}, cfg.CORSOrigins())
}

func TestAppConfig_AccessorsReturnCopies(t *testing.T) {
	cfg := NewAppConfig()
	exts := cfg.ContentExtensions()
	exts[0] = ".txt"

	assert.Equal(t, ".md", cfg.ContentExtensions()[0])
}

func TestAppConfig_LogAttrs(t *testing.T) {
	attrs := NewAppConfig().LogAttrs()

	values := make(map[string]string, len(attrs))
	for _, a := range attrs {
		values[a.Key] = a.Value.String()
	}
	assert.Equal(t, "(built-in course)", values["site_file"])
	assert.Equal(t, DefaultContentDir, values["content_dir"])
	assert.Equal(t, ".md,.mdx,.mdoc", values["content_extensions"])
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{}, ParseList(""))
	assert.Equal(t, []string{"a", "b"}, ParseList(" a, ,b ,"))
}
