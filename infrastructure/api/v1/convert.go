package v1

import (
	"errors"

	"github.com/timsexperiments/sitenav/application/service"
	"github.com/timsexperiments/sitenav/domain/navigation"
	"github.com/timsexperiments/sitenav/domain/site"
	"github.com/timsexperiments/sitenav/infrastructure/api/v1/dto"
)

// Error kinds reported by the validate endpoint.
const (
	KindDuplicateSlug  = "duplicate_slug"
	KindMissingContent = "missing_content"
	KindMalformedNode  = "malformed_node"
	KindInvalidSite    = "invalid_site"
	KindContentLookup  = "content_lookup"
)

// NewSiteResponse converts site metadata to its response body.
func NewSiteResponse(s site.Site, source string) dto.SiteResponse {
	social := make([]dto.SocialLinkResponse, 0, len(s.Social()))
	for _, l := range s.Social() {
		social = append(social, dto.SocialLinkResponse{Icon: l.Icon(), Label: l.Label(), Href: l.Href()})
	}
	return dto.SiteResponse{
		Site:   s.URL(),
		Base:   s.Base(),
		Title:  s.Title(),
		Social: social,
		Source: source,
	}
}

// NewNodeResponses converts sidebar nodes, computing leaf hrefs under base.
// Malformed nodes keep whichever of slug and items they declared.
func NewNodeResponses(nodes []navigation.Node, base string) []dto.NodeResponse {
	out := make([]dto.NodeResponse, 0, len(nodes))
	for _, n := range nodes {
		r := dto.NodeResponse{Label: n.Label()}
		if n.HasSlug() {
			slug := n.Slug()
			r.Slug = &slug
			r.Href = navigation.Href(base, slug)
		}
		if n.HasItems() {
			items := NewNodeResponses(n.Items(), base)
			r.Items = &items
		}
		out = append(out, r)
	}
	return out
}

// NewOutlineResponse converts an outline to its response body.
func NewOutlineResponse(o navigation.Outline) dto.OutlineResponse {
	entries := make([]dto.EntryResponse, 0, len(o.Entries()))
	for _, e := range o.Entries() {
		entries = append(entries, dto.EntryResponse{
			Depth: e.Depth(),
			Label: e.Label(),
			Slug:  e.Slug(),
			Href:  e.Href(),
			Group: e.IsGroup(),
		})
	}
	return dto.OutlineResponse{Entries: entries, Text: o.Text()}
}

// NewValidationResponse converts a validation report to its response body.
func NewValidationResponse(r service.Report) dto.ValidationResponse {
	resp := dto.ValidationResponse{
		Valid:          r.Valid(),
		Title:          r.Title(),
		Nodes:          r.Nodes(),
		Leaves:         r.Leaves(),
		Groups:         r.Groups(),
		Depth:          r.Depth(),
		ContentChecked: r.ContentChecked(),
		Documents:      r.Documents(),
		Orphans:        nonNil(r.Orphans()),
		DuplicateSlugs: []string{},
		Errors:         []dto.ValidationErrorResponse{},
	}
	var ve *navigation.ValidationErrors
	if errors.As(r.Err(), &ve) {
		resp.DuplicateSlugs = nonNil(ve.DuplicateSlugs())
	}
	for _, err := range r.Errors() {
		resp.Errors = append(resp.Errors, NewValidationErrorResponse(err))
	}
	return resp
}

// NewValidationErrorResponse classifies a single validation error.
func NewValidationErrorResponse(err error) dto.ValidationErrorResponse {
	r := dto.ValidationErrorResponse{Message: err.Error()}

	var (
		dup       *navigation.DuplicateSlugError
		missing   *navigation.MissingContentError
		malformed *navigation.MalformedNodeError
		field     *site.FieldError
	)
	switch {
	case errors.As(err, &dup):
		r.Kind = KindDuplicateSlug
		r.Slug = dup.Slug
		for _, p := range dup.Positions {
			r.Positions = append(r.Positions, p.Labels())
		}
	case errors.As(err, &missing):
		r.Kind = KindMissingContent
		r.Slug = missing.Slug
		r.Positions = [][]string{missing.Position.Labels()}
	case errors.As(err, &malformed):
		r.Kind = KindMalformedNode
		r.Reason = string(malformed.Reason)
		r.Positions = [][]string{malformed.Position.Labels()}
	case errors.As(err, &field):
		r.Kind = KindInvalidSite
		r.Field = field.Field
		r.Reason = field.Reason
	default:
		r.Kind = KindContentLookup
	}
	return r
}

// NewSlugResponse converts a resolution to its response body. exists is nil
// when content is not checked.
func NewSlugResponse(res service.Resolution, exists *bool) dto.SlugResponse {
	return dto.SlugResponse{
		Slug:     res.Slug(),
		Label:    res.Label(),
		Href:     res.Href(),
		Path:     res.Path(),
		Exists:   exists,
		Position: res.Position().Labels(),
		Indices:  res.Position().Indices(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
