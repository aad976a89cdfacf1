package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timsexperiments/sitenav/course"
	"github.com/timsexperiments/sitenav/internal/config"
)

const duplicateSite = `site: https://example.com
title: Broken
sidebar:
  - label: First
    slug: intro
  - label: Second
    slug: intro
  - label: Empty
    items: []
`

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SITENAV_LOG_LEVEL", "ERROR")

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeCourseContent creates one document per course slug under a temp dir.
func writeCourseContent(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, slug := range course.Sidebar().Slugs() {
		path := filepath.Join(dir, filepath.FromSlash(slug)+".md")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# "+slug+"\n"), 0o644))
	}
	return dir
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sitenav version dev")
	assert.Contains(t, out, "commit: unknown")
}

func TestValidate_StructureOnly(t *testing.T) {
	out, err := execute(t, "validate", "--skip-content-check")
	require.NoError(t, err)
	assert.Contains(t, out, "content not checked: ok")
	assert.NotContains(t, out, "error:")
}

func TestValidate_WithContent(t *testing.T) {
	dir := writeCourseContent(t)

	out, err := execute(t, "validate", "--content-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "17 leaves")
	assert.Contains(t, out, "17 documents: ok")
}

func TestValidate_OrphanIsWarningUnlessStrict(t *testing.T) {
	dir := writeCourseContent(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.md"), []byte("x"), 0o644))

	out, err := execute(t, "validate", "--content-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `warning: document "scratch" is not in the sidebar`)

	_, err = execute(t, "validate", "--content-dir", dir, "--strict")
	require.ErrorIs(t, err, errValidationFailed)
}

func TestValidate_MissingContent(t *testing.T) {
	dir := writeCourseContent(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "modules", "05_persistence", "index.md")))

	out, err := execute(t, "validate", "--content-dir", dir)
	require.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out, "modules/05_persistence/index")
}

func TestValidate_ReportsEveryError(t *testing.T) {
	siteFile := writeFile(t, "site.yaml", duplicateSite)

	out, err := execute(t, "validate", "--site-file", siteFile, "--skip-content-check")
	require.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out, "intro")
	assert.Contains(t, out, "Empty")
	assert.Contains(t, out, "2 errors")
}

func TestValidate_JSON(t *testing.T) {
	siteFile := writeFile(t, "site.yaml", duplicateSite)

	out, err := execute(t, "validate", "--site-file", siteFile, "--skip-content-check", "--json")
	require.ErrorIs(t, err, errValidationFailed)

	var report struct {
		Valid  bool     `json:"valid"`
		Leaves int      `json:"leaves"`
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Valid)
	assert.Equal(t, 2, report.Leaves)
	assert.Len(t, report.Errors, 2)
}

func TestValidate_MissingContentDir(t *testing.T) {
	_, err := execute(t, "validate", "--content-dir", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errValidationFailed)
}

func TestRender_Text(t *testing.T) {
	out, err := execute(t, "render")
	require.NoError(t, err)
	assert.Contains(t, out, "Modern UI Architecture")

	again, err := execute(t, "render")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRender_JSON(t *testing.T) {
	out, err := execute(t, "render", "--format", "json")
	require.NoError(t, err)

	var entries []struct {
		Depth int    `json:"depth"`
		Label string `json:"label"`
		Slug  string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, course.Sidebar().Count())
	assert.Equal(t, 1, entries[0].Depth)
	assert.Equal(t, "Modules", entries[0].Label)
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := execute(t, "render", "--format", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestExport_Starlight(t *testing.T) {
	out, err := execute(t, "export")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, course.URL, doc["site"])
	assert.Equal(t, course.Base, doc["base"])

	starlight, ok := doc["starlight"].(map[string]any)
	require.True(t, ok, "starlight options missing: %v", doc)
	assert.Equal(t, course.Title, starlight["title"])
	sidebar, ok := starlight["sidebar"].([]any)
	require.True(t, ok)
	assert.Len(t, sidebar, len(course.Sidebar().Roots()))
}

func TestExport_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")

	_, err := execute(t, "export", "--format", "yaml", "--output", path)
	require.NoError(t, err)

	fromFile, err := execute(t, "render", "--site-file", path)
	require.NoError(t, err)
	builtin, err := execute(t, "render")
	require.NoError(t, err)
	assert.Equal(t, builtin, fromFile)
}

func TestExport_RefusesInvalidSite(t *testing.T) {
	siteFile := writeFile(t, "site.yaml", duplicateSite)

	_, err := execute(t, "export", "--site-file", siteFile, "--format", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to export")

	out, err := execute(t, "export", "--site-file", siteFile, "--format", "json", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, `"intro"`)
}

func TestServeOverrides(t *testing.T) {
	cfg := config.NewAppConfig().Apply(serveOverrides("0.0.0.0", 9000)...)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())

	unchanged := config.NewAppConfig().Apply(serveOverrides("", 0)...)
	assert.Equal(t, config.NewAppConfig().Addr(), unchanged.Addr())
}
