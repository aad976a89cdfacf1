// Package site holds the metadata of a documentation site together with its
// navigation sidebar.
package site

import "github.com/timsexperiments/sitenav/domain/navigation"

// SocialLink is an icon link shown in the site header.
type SocialLink struct {
	icon  string
	label string
	href  string
}

// NewSocialLink creates a SocialLink.
func NewSocialLink(icon, label, href string) SocialLink {
	return SocialLink{icon: icon, label: label, href: href}
}

// Icon returns the icon name.
func (l SocialLink) Icon() string { return l.icon }

// Label returns the accessible label.
func (l SocialLink) Label() string { return l.label }

// Href returns the link target.
func (l SocialLink) Href() string { return l.href }

// Site describes a documentation site.
type Site struct {
	url     string
	base    string
	title   string
	social  []SocialLink
	sidebar navigation.Tree
}

// Option configures a Site.
type Option func(*Site)

// WithURL sets the deployed site URL.
func WithURL(url string) Option {
	return func(s *Site) { s.url = url }
}

// WithBase sets the base path the site is served under.
func WithBase(base string) Option {
	return func(s *Site) { s.base = base }
}

// WithSocial sets the social links.
func WithSocial(links ...SocialLink) Option {
	return func(s *Site) {
		s.social = make([]SocialLink, len(links))
		copy(s.social, links)
	}
}

// WithSidebar sets the navigation tree.
func WithSidebar(tree navigation.Tree) Option {
	return func(s *Site) { s.sidebar = tree }
}

// New creates a Site titled title.
func New(title string, options ...Option) Site {
	s := Site{title: title}
	for _, opt := range options {
		opt(&s)
	}
	return s
}

// URL returns the deployed site URL.
func (s Site) URL() string { return s.url }

// Base returns the base path.
func (s Site) Base() string { return s.base }

// Title returns the site title.
func (s Site) Title() string { return s.title }

// Social returns the social links in declaration order.
func (s Site) Social() []SocialLink { return s.social }

// Sidebar returns the navigation tree.
func (s Site) Sidebar() navigation.Tree { return s.sidebar }

// Outline returns the sidebar flattened in display order with hrefs under
// the site base.
func (s Site) Outline() navigation.Outline {
	return navigation.NewOutline(s.sidebar, s.base)
}

// Equal reports whether two sites carry identical metadata and sidebars.
func (s Site) Equal(other Site) bool {
	if s.url != other.url || s.base != other.base || s.title != other.title {
		return false
	}
	if len(s.social) != len(other.social) {
		return false
	}
	for i := range s.social {
		if s.social[i] != other.social[i] {
			return false
		}
	}
	return s.sidebar.Equal(other.sidebar)
}
