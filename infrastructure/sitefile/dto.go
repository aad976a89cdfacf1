package sitefile

import (
	"github.com/timsexperiments/sitenav/domain/navigation"
	"github.com/timsexperiments/sitenav/domain/site"
)

// siteDocument is the on-disk shape of a site file.
type siteDocument struct {
	Site    string          `yaml:"site,omitempty" json:"site,omitempty"`
	Base    string          `yaml:"base,omitempty" json:"base,omitempty"`
	Title   string          `yaml:"title" json:"title"`
	Social  []socialLinkDoc `yaml:"social,omitempty" json:"social,omitempty"`
	Sidebar []nodeDoc       `yaml:"sidebar" json:"sidebar"`
}

type socialLinkDoc struct {
	Icon  string `yaml:"icon" json:"icon"`
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

// nodeDoc uses pointers so that an absent key and an empty value stay
// distinguishable after decoding.
type nodeDoc struct {
	Label string     `yaml:"label" json:"label"`
	Slug  *string    `yaml:"slug,omitempty" json:"slug,omitempty"`
	Items *[]nodeDoc `yaml:"items,omitempty" json:"items,omitempty"`
}

func toDocument(s site.Site) siteDocument {
	doc := siteDocument{
		Site:    s.URL(),
		Base:    s.Base(),
		Title:   s.Title(),
		Sidebar: nodesToDocs(s.Sidebar().Roots()),
	}
	for _, l := range s.Social() {
		doc.Social = append(doc.Social, socialLinkDoc{Icon: l.Icon(), Label: l.Label(), Href: l.Href()})
	}
	return doc
}

func fromDocument(doc siteDocument) site.Site {
	links := make([]site.SocialLink, len(doc.Social))
	for i, l := range doc.Social {
		links[i] = site.NewSocialLink(l.Icon, l.Label, l.Href)
	}
	return site.New(doc.Title,
		site.WithURL(doc.Site),
		site.WithBase(doc.Base),
		site.WithSocial(links...),
		site.WithSidebar(navigation.NewTree(nodesFromDocs(doc.Sidebar)...)),
	)
}

func nodesToDocs(nodes []navigation.Node) []nodeDoc {
	docs := make([]nodeDoc, len(nodes))
	for i, n := range nodes {
		d := nodeDoc{Label: n.Label()}
		if n.HasSlug() {
			slug := n.Slug()
			d.Slug = &slug
		}
		if n.HasItems() {
			items := nodesToDocs(n.Items())
			d.Items = &items
		}
		docs[i] = d
	}
	return docs
}

func nodesFromDocs(docs []nodeDoc) []navigation.Node {
	nodes := make([]navigation.Node, len(docs))
	for i, d := range docs {
		var opts []navigation.NodeOption
		if d.Slug != nil {
			opts = append(opts, navigation.WithSlug(*d.Slug))
		}
		if d.Items != nil {
			opts = append(opts, navigation.WithItems(nodesFromDocs(*d.Items)...))
		}
		nodes[i] = navigation.NewNode(d.Label, opts...)
	}
	return nodes
}
