package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/timsexperiments/sitenav/domain/navigation"
	"github.com/timsexperiments/sitenav/domain/site"
)

var (
	// ErrSlugNotFound indicates the slug is not declared in the sidebar.
	ErrSlugNotFound = errors.New("slug not found in sidebar")

	// ErrContentUnavailable indicates no content root is configured.
	ErrContentUnavailable = errors.New("content root not configured")
)

// ContentIndex looks up and lists the documents under the content root.
type ContentIndex interface {
	navigation.ContentResolver
	Path(slug string) (string, bool, error)
	Read(slug string) ([]byte, error)
	Documents() ([]string, error)
}

// Report summarises one validation run.
type Report struct {
	title     string
	nodes     int
	leaves    int
	groups    int
	depth     int
	documents int
	checked   bool
	orphans   []string
	err       error
}

// Title returns the site title.
func (r Report) Title() string { return r.title }

// Nodes returns the number of sidebar nodes.
func (r Report) Nodes() int { return r.nodes }

// Leaves returns the number of well-formed leaves. Malformed nodes are
// counted in Nodes only.
func (r Report) Leaves() int { return r.leaves }

// Groups returns the number of well-formed groups.
func (r Report) Groups() int { return r.groups }

// Depth returns the nesting depth of the sidebar.
func (r Report) Depth() int { return r.depth }

// Documents returns the number of documents found under the content root.
func (r Report) Documents() int { return r.documents }

// ContentChecked reports whether slugs were checked against the content root.
func (r Report) ContentChecked() bool { return r.checked }

// Orphans returns documents that exist on disk but are absent from the sidebar.
func (r Report) Orphans() []string { return r.orphans }

// Err returns the validation failure, or nil when the site is valid.
func (r Report) Err() error { return r.err }

// Valid reports whether validation found no errors.
func (r Report) Valid() bool { return r.err == nil }

// Errors returns the individual validation errors.
func (r Report) Errors() []error {
	var ve *navigation.ValidationErrors
	if errors.As(r.err, &ve) {
		return ve.Errors()
	}
	if r.err != nil {
		return []error{r.err}
	}
	return nil
}

// Resolution describes where a slug sits in the sidebar and on disk.
type Resolution struct {
	slug     string
	label    string
	href     string
	path     string
	position navigation.Position
}

// Slug returns the resolved slug.
func (r Resolution) Slug() string { return r.slug }

// Label returns the sidebar label of the entry.
func (r Resolution) Label() string { return r.label }

// Href returns the link the built site uses for the entry.
func (r Resolution) Href() string { return r.href }

// Path returns the document path relative to the content root, empty when
// content is not checked or the document is missing.
func (r Resolution) Path() string { return r.path }

// Position returns the position of the entry in the sidebar.
func (r Resolution) Position() navigation.Position { return r.position }

// Navigation answers questions about one site definition.
type Navigation struct {
	site    site.Site
	content ContentIndex
	logger  *slog.Logger
}

// NewNavigation creates a Navigation service. A nil content index limits
// validation to structure and metadata.
func NewNavigation(s site.Site, content ContentIndex, logger *slog.Logger) *Navigation {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigation{site: s, content: content, logger: logger}
}

// Site returns the site definition.
func (n *Navigation) Site() site.Site { return n.site }

// Outline returns the ordered sidebar entries.
func (n *Navigation) Outline() navigation.Outline { return n.site.Outline() }

// Validate checks the site and reports orphaned documents. The returned
// error is non-nil only when validation could not run; validation failures
// are carried by the Report.
func (n *Navigation) Validate(ctx context.Context) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	tree := n.site.Sidebar()
	report := Report{
		title: n.site.Title(),
		nodes: tree.Count(),
		depth: tree.Depth(),
	}
	tree.Walk(func(_ navigation.Position, node navigation.Node) bool {
		switch {
		case node.IsLeaf():
			report.leaves++
		case node.IsGroup():
			report.groups++
		}
		return true
	})

	var resolver navigation.ContentResolver
	if n.content != nil {
		resolver = n.content
		report.checked = true
	}
	report.err = n.site.Validate(resolver)

	if n.content != nil {
		docs, err := n.content.Documents()
		if err != nil {
			return Report{}, fmt.Errorf("list documents: %w", err)
		}
		report.documents = len(docs)
		report.orphans = orphans(docs, tree.Slugs())
	}

	attrs := []any{
		slog.String("site", report.title),
		slog.Int("nodes", report.nodes),
		slog.Int("leaves", report.leaves),
		slog.Int("orphans", len(report.orphans)),
	}
	if report.err != nil {
		n.logger.Warn("sidebar invalid", append(attrs, slog.Int("errors", len(report.Errors())))...)
	} else {
		n.logger.Debug("sidebar valid", attrs...)
	}
	for _, o := range report.orphans {
		n.logger.Debug("document not in sidebar", slog.String("slug", o))
	}
	return report, nil
}

// Resolve locates slug in the sidebar and, when content is checked, on disk.
func (n *Navigation) Resolve(slug string) (Resolution, error) {
	node, pos, ok := n.site.Sidebar().Find(slug)
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %s", ErrSlugNotFound, slug)
	}
	res := Resolution{
		slug:     node.Slug(),
		label:    node.Label(),
		href:     navigation.Href(n.site.Base(), node.Slug()),
		position: pos,
	}
	if n.content == nil {
		return res, nil
	}
	p, found, err := n.content.Path(slug)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve content: %w", err)
	}
	if !found {
		return res, &navigation.MissingContentError{Slug: slug, Position: pos}
	}
	res.path = p
	return res, nil
}

// ReadDocument returns the raw contents of the document for slug. Any
// document under the content root can be read, declared or not.
func (n *Navigation) ReadDocument(slug string) ([]byte, error) {
	if n.content == nil {
		return nil, ErrContentUnavailable
	}
	if err := navigation.CheckSlug(slug); err != nil {
		return nil, err
	}
	data, err := n.content.Read(slug)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

func orphans(docs, slugs []string) []string {
	declared := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		declared[s] = struct{}{}
	}
	var out []string
	for _, d := range docs {
		if _, ok := declared[d]; !ok {
			out = append(out, d)
		}
	}
	return out
}
