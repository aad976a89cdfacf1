// Package sitenav loads, validates and renders the navigation sidebar of the
// "Intro to Front End Engineering" documentation site.
//
// Basic usage:
//
//	client, err := sitenav.New(
//	    sitenav.WithSiteFile("sidebar.yaml"),
//	    sitenav.WithContentDir("src/content/docs"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := client.Validate(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range report.Errors() {
//	    fmt.Println(e)
//	}
//
// Without options the client serves the built-in course sidebar and checks
// structure only.
package sitenav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/timsexperiments/sitenav/application/service"
	"github.com/timsexperiments/sitenav/course"
	"github.com/timsexperiments/sitenav/domain/navigation"
	"github.com/timsexperiments/sitenav/domain/site"
	"github.com/timsexperiments/sitenav/infrastructure/content"
	"github.com/timsexperiments/sitenav/infrastructure/sitefile"
)

// ErrConflictingSite indicates both an in-memory site and a site file were given.
var ErrConflictingSite = errors.New("sitenav: WithSite and WithSiteFile are mutually exclusive")

// Client is the main entry point for the sitenav library.
//
// Access the navigation service via its field:
//
//	client.Navigation.Resolve("modules/05_persistence/index")
type Client struct {
	Navigation *service.Navigation

	content *content.Resolver
	source  string
	logger  *slog.Logger
}

// New creates a Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	s, source, err := loadSite(cfg)
	if err != nil {
		return nil, err
	}

	resolver, err := buildResolver(cfg)
	if err != nil {
		return nil, err
	}

	client := &Client{
		content: resolver,
		source:  source,
		logger:  logger,
	}
	// A nil *content.Resolver must not reach the interface as a typed nil.
	var index service.ContentIndex
	if resolver != nil {
		index = resolver
	}
	client.Navigation = service.NewNavigation(s, index, logger)

	logger.Debug("sitenav client ready",
		slog.String("source", source),
		slog.Bool("content_checked", resolver != nil),
	)
	return client, nil
}

func loadSite(cfg *clientConfig) (site.Site, string, error) {
	switch {
	case cfg.site != nil && cfg.siteFile != "":
		return site.Site{}, "", ErrConflictingSite
	case cfg.site != nil:
		return *cfg.site, "memory", nil
	case cfg.siteFile != "":
		s, err := sitefile.Load(cfg.siteFile)
		if err != nil {
			return site.Site{}, "", fmt.Errorf("load site file: %w", err)
		}
		return s, cfg.siteFile, nil
	default:
		return course.Site(), "built-in", nil
	}
}

func buildResolver(cfg *clientConfig) (*content.Resolver, error) {
	switch {
	case cfg.skipContentCheck:
		return nil, nil
	case cfg.contentFS != nil:
		return content.NewResolver(cfg.contentFS, cfg.extensions...), nil
	case cfg.contentDir != "":
		r, err := content.NewDirResolver(cfg.contentDir, cfg.extensions...)
		if err != nil {
			return nil, fmt.Errorf("open content: %w", err)
		}
		return r, nil
	default:
		return nil, nil
	}
}

// Site returns the loaded site definition.
func (c *Client) Site() site.Site { return c.Navigation.Site() }

// Source describes where the site definition came from: "built-in",
// "memory" or the site file path.
func (c *Client) Source() string { return c.source }

// ContentChecked reports whether slugs are checked against a content root.
func (c *Client) ContentChecked() bool { return c.content != nil }

// Validate validates the site and its sidebar.
func (c *Client) Validate(ctx context.Context) (service.Report, error) {
	return c.Navigation.Validate(ctx)
}

// Outline returns the ordered sidebar.
func (c *Client) Outline() navigation.Outline { return c.Navigation.Outline() }

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}
