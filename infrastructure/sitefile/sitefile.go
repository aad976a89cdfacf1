// Package sitefile reads and writes site definitions as YAML or JSON.
package sitefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/timsexperiments/sitenav/domain/site"
)

// Format identifies a site file encoding.
type Format string

// Format values.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// ErrSiteFileNotFound is returned when the site file does not exist.
	ErrSiteFileNotFound = errors.New("site file not found")

	// ErrUnsupportedFormat is returned for unknown site file extensions.
	ErrUnsupportedFormat = errors.New("unsupported site file format")
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Decode reads a site definition. Unknown keys are rejected so that typos
// such as "itmes" surface instead of producing an empty node.
func Decode(r io.Reader, format Format) (site.Site, error) {
	var doc siteDocument
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return site.Site{}, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return site.Site{}, fmt.Errorf("parse json: %w", err)
		}
	default:
		return site.Site{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return fromDocument(doc), nil
}

// Encode writes a site definition. Sidebar order is preserved.
func Encode(w io.Writer, s site.Site, format Format) error {
	doc := toDocument(s)
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Load reads the site file at path.
func Load(path string) (site.Site, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return site.Site{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return site.Site{}, fmt.Errorf("%w: %s", ErrSiteFileNotFound, path)
		}
		return site.Site{}, fmt.Errorf("read site file: %w", err)
	}
	s, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return site.Site{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path in the format matching its extension.
func Save(path string, s site.Site) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, s, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write site file: %w", err)
	}
	return nil
}
