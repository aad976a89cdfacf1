package navigation

import "strings"

// Entry is one rendered line of a sidebar outline.
type Entry struct {
	depth int
	label string
	slug  string
	href  string
	group bool
}

// Depth returns the nesting level, 1 for top-level entries.
func (e Entry) Depth() int { return e.depth }

// Label returns the display text.
func (e Entry) Label() string { return e.label }

// Slug returns the content slug, empty for groups.
func (e Entry) Slug() string { return e.slug }

// Href returns the published path, empty for groups.
func (e Entry) Href() string { return e.href }

// IsGroup reports whether the entry heads a group.
func (e Entry) IsGroup() bool { return e.group }

// Outline is the flattened sidebar in display order.
type Outline struct {
	entries []Entry
}

// NewOutline flattens t into display order, computing hrefs under base.
// Entries appear exactly in declaration order.
func NewOutline(t Tree, base string) Outline {
	var entries []Entry
	t.Walk(func(pos Position, n Node) bool {
		e := Entry{
			depth: pos.Depth(),
			label: n.label,
			group: !n.hasSlug,
		}
		if n.hasSlug {
			e.slug = n.slug
			e.href = Href(base, n.slug)
		}
		entries = append(entries, e)
		return true
	})
	return Outline{entries: entries}
}

// Entries returns every entry in display order.
func (o Outline) Entries() []Entry { return o.entries }

// Slugs returns the slugs of link entries in display order.
func (o Outline) Slugs() []string {
	var slugs []string
	for _, e := range o.entries {
		if !e.group {
			slugs = append(slugs, e.slug)
		}
	}
	return slugs
}

// Text renders the outline as an indented list, two spaces per level.
//
//	- Modules
//	  - Front End Foundations
//	    - Introduction -> /intro-to-front-end/modules/01_front_end_foundations/
func (o Outline) Text() string {
	var b strings.Builder
	for _, e := range o.entries {
		b.WriteString(strings.Repeat("  ", e.depth-1))
		b.WriteString("- ")
		b.WriteString(e.label)
		if !e.group {
			b.WriteString(" -> ")
			b.WriteString(e.href)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
