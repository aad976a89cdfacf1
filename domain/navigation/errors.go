package navigation

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks against validation failures.
var (
	ErrDuplicateSlug  = errors.New("duplicate slug")
	ErrMissingContent = errors.New("missing content")
	ErrMalformedNode  = errors.New("malformed node")
	ErrInvalidSlug    = errors.New("invalid slug")
)

// Reason describes why a node is malformed.
type Reason string

// Reason values.
const (
	ReasonSlugAndItems  Reason = "declares both slug and items"
	ReasonNoSlugOrItems Reason = "declares neither slug nor items"
	ReasonEmptyItems    Reason = "declares an empty items list"
	ReasonEmptyLabel    Reason = "has an empty label"
	ReasonInvalidSlug   Reason = "has an invalid slug"
)

// DuplicateSlugError reports a slug declared by more than one node.
type DuplicateSlugError struct {
	Slug      string
	Positions []Position
}

func (e *DuplicateSlugError) Error() string {
	at := make([]string, len(e.Positions))
	for i, p := range e.Positions {
		at[i] = p.String()
	}
	return fmt.Sprintf("duplicate slug %q declared %d times: %s", e.Slug, len(e.Positions), strings.Join(at, "; "))
}

func (e *DuplicateSlugError) Unwrap() error { return ErrDuplicateSlug }

// MissingContentError reports a slug with no content document behind it.
type MissingContentError struct {
	Slug     string
	Position Position
}

func (e *MissingContentError) Error() string {
	return fmt.Sprintf("slug %q at %s has no content document", e.Slug, e.Position)
}

func (e *MissingContentError) Unwrap() error { return ErrMissingContent }

// MalformedNodeError reports a node that is neither a valid leaf nor a valid
// group.
type MalformedNodeError struct {
	Position Position
	Reason   Reason
	Err      error
}

func (e *MalformedNodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("node at %s %s: %v", e.Position, e.Reason, e.Err)
	}
	return fmt.Sprintf("node at %s %s", e.Position, e.Reason)
}

func (e *MalformedNodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedNode, e.Err}
	}
	return []error{ErrMalformedNode}
}

// ValidationErrors collects every problem found in a single validation pass.
type ValidationErrors struct {
	errs []error
}

// Collect returns nil when errs is empty, otherwise a *ValidationErrors
// holding errs. Nested *ValidationErrors are flattened.
func Collect(errs ...error) error {
	var flat []error
	for _, err := range errs {
		if err == nil {
			continue
		}
		var ve *ValidationErrors
		if errors.As(err, &ve) {
			flat = append(flat, ve.errs...)
			continue
		}
		flat = append(flat, err)
	}
	if len(flat) == 0 {
		return nil
	}
	return &ValidationErrors{errs: flat}
}

func (e *ValidationErrors) Error() string {
	if len(e.errs) == 1 {
		return "navigation: " + e.errs[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "navigation: %d validation errors:", len(e.errs))
	for _, err := range e.errs {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *ValidationErrors) Unwrap() []error { return e.errs }

// Errors returns the individual errors in the order they were found.
func (e *ValidationErrors) Errors() []error { return e.errs }

// Len returns the number of collected errors.
func (e *ValidationErrors) Len() int { return len(e.errs) }

// DuplicateSlugs returns the full set of duplicated slugs in order of first
// declaration.
func (e *ValidationErrors) DuplicateSlugs() []string {
	var slugs []string
	for _, err := range e.errs {
		var dup *DuplicateSlugError
		if errors.As(err, &dup) {
			slugs = append(slugs, dup.Slug)
		}
	}
	return slugs
}
