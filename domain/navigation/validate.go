package navigation

import (
	"fmt"
	"strings"
)

// ContentResolver reports whether a content document exists for a slug.
type ContentResolver interface {
	Exists(slug string) (bool, error)
}

// Validate checks every node of t in a single depth-first pass and returns all
// problems found as a *ValidationErrors, or nil. A nil resolver skips the
// content existence check.
//
// Content is looked up once per distinct slug.
func Validate(t Tree, resolver ContentResolver) error {
	var (
		errs  []error
		order []string
		seen  = make(map[string][]Position)
	)

	t.Walk(func(pos Position, n Node) bool {
		if strings.TrimSpace(n.label) == "" {
			errs = append(errs, &MalformedNodeError{Position: pos, Reason: ReasonEmptyLabel})
		}

		switch {
		case n.hasSlug && n.hasItems:
			errs = append(errs, &MalformedNodeError{Position: pos, Reason: ReasonSlugAndItems})
		case !n.hasSlug && !n.hasItems:
			errs = append(errs, &MalformedNodeError{Position: pos, Reason: ReasonNoSlugOrItems})
		case n.hasItems && len(n.items) == 0:
			errs = append(errs, &MalformedNodeError{Position: pos, Reason: ReasonEmptyItems})
		}

		if !n.hasSlug {
			return true
		}
		if err := CheckSlug(n.slug); err != nil {
			errs = append(errs, &MalformedNodeError{Position: pos, Reason: ReasonInvalidSlug, Err: err})
			return true
		}

		prev, dup := seen[n.slug]
		seen[n.slug] = append(prev, pos)
		if dup {
			return true
		}
		order = append(order, n.slug)

		if resolver == nil {
			return true
		}
		ok, err := resolver.Exists(n.slug)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("resolve %q at %s: %w", n.slug, pos, err))
		case !ok:
			errs = append(errs, &MissingContentError{Slug: n.slug, Position: pos})
		}
		return true
	})

	for _, slug := range order {
		if positions := seen[slug]; len(positions) > 1 {
			errs = append(errs, &DuplicateSlugError{Slug: slug, Positions: positions})
		}
	}

	return Collect(errs...)
}
