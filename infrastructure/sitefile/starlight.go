package sitefile

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/timsexperiments/sitenav/domain/site"
)

// starlightConfig mirrors the options object passed to the Starlight
// integration, alongside the Astro site and base settings.
type starlightConfig struct {
	Site      string          `json:"site,omitempty"`
	Base      string          `json:"base,omitempty"`
	Starlight starlightOption `json:"starlight"`
}

type starlightOption struct {
	Title   string          `json:"title"`
	Social  []socialLinkDoc `json:"social,omitempty"`
	Sidebar []nodeDoc       `json:"sidebar"`
}

// ExportStarlight writes s as JSON in the shape the Astro config consumes.
func ExportStarlight(w io.Writer, s site.Site) error {
	doc := toDocument(s)
	cfg := starlightConfig{
		Site: doc.Site,
		Base: doc.Base,
		Starlight: starlightOption{
			Title:   doc.Title,
			Social:  doc.Social,
			Sidebar: doc.Sidebar,
		},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode starlight config: %w", err)
	}
	return nil
}
