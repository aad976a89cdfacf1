package mcp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/timsexperiments/sitenav/domain/navigation"
)

const docURIPrefix = "sitenav://docs/"

// ErrInvalidDocURI is returned when a URI does not address a document.
var ErrInvalidDocURI = errors.New("invalid document uri")

// DocURI addresses a content document as sitenav://docs/<slug>.
type DocURI struct {
	slug string
}

// NewDocURI creates a DocURI for slug.
func NewDocURI(slug string) DocURI {
	return DocURI{slug: slug}
}

// ParseDocURI parses a sitenav://docs/ URI. The slug must follow the
// content path convention.
func ParseDocURI(raw string) (DocURI, error) {
	slug, ok := strings.CutPrefix(raw, docURIPrefix)
	if !ok {
		return DocURI{}, fmt.Errorf("%w: %s", ErrInvalidDocURI, raw)
	}
	if err := navigation.CheckSlug(slug); err != nil {
		return DocURI{}, fmt.Errorf("%w: %w", ErrInvalidDocURI, err)
	}
	return DocURI{slug: slug}, nil
}

// Slug returns the document slug.
func (u DocURI) Slug() string { return u.slug }

// String builds the URI string.
func (u DocURI) String() string {
	return docURIPrefix + u.slug
}
