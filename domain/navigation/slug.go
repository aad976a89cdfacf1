package navigation

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

var slugSegment = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// CheckSlug verifies that slug follows the content path convention: a path
// relative to the content root, without leading or trailing slash, without a
// file extension, made of segments of letters, digits, '_' and '-'.
func CheckSlug(slug string) error {
	switch {
	case slug == "":
		return fmt.Errorf("%w: empty", ErrInvalidSlug)
	case strings.HasPrefix(slug, "/"):
		return fmt.Errorf("%w: %q has a leading slash", ErrInvalidSlug, slug)
	case strings.HasSuffix(slug, "/"):
		return fmt.Errorf("%w: %q has a trailing slash", ErrInvalidSlug, slug)
	}
	if ext := path.Ext(slug); ext != "" {
		return fmt.Errorf("%w: %q has file extension %q", ErrInvalidSlug, slug, ext)
	}
	for _, seg := range strings.Split(slug, "/") {
		if !slugSegment.MatchString(seg) {
			return fmt.Errorf("%w: %q has invalid segment %q", ErrInvalidSlug, slug, seg)
		}
	}
	return nil
}

// Href returns the site path a slug is published under: base joined with the
// lower-cased slug, with a trailing "index" segment folded into its directory.
func Href(base, slug string) string {
	s := strings.ToLower(slug)
	if s == "index" {
		s = ""
	}
	s = strings.TrimSuffix(s, "/index")
	b := strings.TrimSuffix(base, "/")
	if s == "" {
		return b + "/"
	}
	return b + "/" + s + "/"
}
