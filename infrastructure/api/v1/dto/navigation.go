// Package dto holds the JSON bodies of the v1 preview API.
package dto

// SocialLinkResponse is a social link in the site header.
type SocialLinkResponse struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

// NodeResponse is a sidebar node. Exactly one of Slug or Items is set on a
// well-formed node.
type NodeResponse struct {
	Label string          `json:"label"`
	Slug  *string         `json:"slug,omitempty"`
	Href  string          `json:"href,omitempty"`
	Items *[]NodeResponse `json:"items,omitempty"`
}

// SiteResponse is the body of GET /api/v1/site.
type SiteResponse struct {
	Site   string               `json:"site,omitempty"`
	Base   string               `json:"base,omitempty"`
	Title  string               `json:"title"`
	Social []SocialLinkResponse `json:"social"`
	Source string               `json:"source"`
}

// SidebarResponse is the body of GET /api/v1/sidebar.
type SidebarResponse struct {
	Sidebar []NodeResponse `json:"sidebar"`
}

// EntryResponse is one line of the flattened sidebar.
type EntryResponse struct {
	Depth int    `json:"depth"`
	Label string `json:"label"`
	Slug  string `json:"slug,omitempty"`
	Href  string `json:"href,omitempty"`
	Group bool   `json:"group"`
}

// OutlineResponse is the body of GET /api/v1/sidebar/outline.
type OutlineResponse struct {
	Entries []EntryResponse `json:"entries"`
	Text    string          `json:"text"`
}

// ValidationErrorResponse describes one validation problem.
type ValidationErrorResponse struct {
	Kind      string     `json:"kind"`
	Message   string     `json:"message"`
	Slug      string     `json:"slug,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	Field     string     `json:"field,omitempty"`
	Positions [][]string `json:"positions,omitempty"`
}

// ValidationResponse is the body of GET /api/v1/validate.
type ValidationResponse struct {
	Valid          bool                      `json:"valid"`
	Title          string                    `json:"title"`
	Nodes          int                       `json:"nodes"`
	Leaves         int                       `json:"leaves"`
	Groups         int                       `json:"groups"`
	Depth          int                       `json:"depth"`
	ContentChecked bool                      `json:"content_checked"`
	Documents      int                       `json:"documents"`
	Orphans        []string                  `json:"orphans"`
	DuplicateSlugs []string                  `json:"duplicate_slugs"`
	Errors         []ValidationErrorResponse `json:"errors"`
}

// SlugResponse is the body of GET /api/v1/slugs/{slug}.
type SlugResponse struct {
	Slug     string   `json:"slug"`
	Label    string   `json:"label"`
	Href     string   `json:"href"`
	Path     string   `json:"path,omitempty"`
	Exists   *bool    `json:"exists,omitempty"`
	Position []string `json:"position"`
	Indices  []int    `json:"indices"`
}
