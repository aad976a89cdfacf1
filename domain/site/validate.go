package site

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/timsexperiments/sitenav/domain/navigation"
)

// ErrInvalidSite is the sentinel wrapped by every FieldError.
var ErrInvalidSite = errors.New("invalid site")

// FieldError reports an invalid metadata field.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("site %s %q %s", e.Field, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidSite }

// Validate checks the site metadata and its sidebar, returning every problem
// as a *navigation.ValidationErrors, or nil.
func (s Site) Validate(resolver navigation.ContentResolver) error {
	var errs []error

	if strings.TrimSpace(s.title) == "" {
		errs = append(errs, &FieldError{Field: "title", Value: s.title, Reason: "must not be empty"})
	}
	if s.url != "" {
		if reason := checkAbsoluteURL(s.url); reason != "" {
			errs = append(errs, &FieldError{Field: "url", Value: s.url, Reason: reason})
		}
	}
	if reason := checkBase(s.base); reason != "" {
		errs = append(errs, &FieldError{Field: "base", Value: s.base, Reason: reason})
	}
	for i, l := range s.social {
		field := fmt.Sprintf("social[%d]", i)
		if strings.TrimSpace(l.icon) == "" {
			errs = append(errs, &FieldError{Field: field + ".icon", Value: l.icon, Reason: "must not be empty"})
		}
		if strings.TrimSpace(l.label) == "" {
			errs = append(errs, &FieldError{Field: field + ".label", Value: l.label, Reason: "must not be empty"})
		}
		if reason := checkAbsoluteURL(l.href); reason != "" {
			errs = append(errs, &FieldError{Field: field + ".href", Value: l.href, Reason: reason})
		}
	}

	errs = append(errs, navigation.Validate(s.sidebar, resolver))
	return navigation.Collect(errs...)
}

func checkAbsoluteURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "is not a valid URL"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "must use http or https"
	}
	if u.Host == "" {
		return "must include a host"
	}
	return ""
}

func checkBase(base string) string {
	switch {
	case base == "" || base == "/":
		return ""
	case !strings.HasPrefix(base, "/"):
		return "must start with a slash"
	case strings.HasSuffix(base, "/"):
		return "must not end with a slash"
	case strings.Contains(base, "//"):
		return "must not contain empty segments"
	}
	return ""
}
