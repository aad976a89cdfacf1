// Package mcp exposes the sidebar to MCP clients: tools to inspect, validate
// and resolve it, and resources for the outline and the documents it links.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/timsexperiments/sitenav/application/service"
	"github.com/timsexperiments/sitenav/domain/navigation"
	"github.com/timsexperiments/sitenav/domain/site"
	v1 "github.com/timsexperiments/sitenav/infrastructure/api/v1"
)

// SidebarURI is the resource holding the rendered text outline.
const SidebarURI = "sitenav://sidebar"

// Navigator answers sidebar questions for the MCP tools.
type Navigator interface {
	Site() site.Site
	Outline() navigation.Outline
	Validate(ctx context.Context) (service.Report, error)
	Resolve(slug string) (service.Resolution, error)
	ReadDocument(slug string) ([]byte, error)
}

// Server wraps the MCP server with sitenav tools.
type Server struct {
	mcpServer *server.MCPServer
	nav       Navigator
	logger    *slog.Logger
}

// NewServer creates a new MCP server backed by nav.
func NewServer(nav Navigator, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		nav:    nav,
		logger: logger,
	}

	mcpServer := server.NewMCPServer(
		"sitenav",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	getSidebar := mcp.NewTool("get_sidebar",
		mcp.WithDescription("Get the site navigation sidebar in declaration order"),
		mcp.WithString("format",
			mcp.Description("tree (nested JSON, default), outline (flat JSON entries) or text (indented list)"),
			mcp.Enum("tree", "outline", "text"),
		),
	)
	mcpServer.AddTool(getSidebar, s.handleGetSidebar)

	validate := mcp.NewTool("validate_sidebar",
		mcp.WithDescription("Validate the sidebar and report every duplicate slug, missing document and malformed node"),
	)
	mcpServer.AddTool(validate, s.handleValidate)

	resolve := mcp.NewTool("resolve_slug",
		mcp.WithDescription("Find where a content slug sits in the sidebar and which document backs it"),
		mcp.WithString("slug",
			mcp.Required(),
			mcp.Description("Content slug relative to the docs root, e.g. modules/05_persistence/index"),
		),
	)
	mcpServer.AddTool(resolve, s.handleResolve)
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	sidebar := mcp.NewResource(SidebarURI, "sidebar",
		mcp.WithResourceDescription("The sidebar rendered as an indented list of labels and links"),
		mcp.WithMIMEType("text/markdown"),
	)
	mcpServer.AddResource(sidebar, s.handleReadSidebar)

	docs := mcp.NewResourceTemplate(docURIPrefix+"{+slug}", "document",
		mcp.WithTemplateDescription("Raw source of a content document by slug"),
		mcp.WithTemplateMIMEType("text/markdown"),
	)
	mcpServer.AddResourceTemplate(docs, s.handleReadDocument)
}

func (s *Server) handleGetSidebar(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := request.GetString("format", "tree")

	var payload any
	switch format {
	case "tree":
		st := s.nav.Site()
		payload = v1.NewNodeResponses(st.Sidebar().Roots(), st.Base())
	case "outline":
		payload = v1.NewOutlineResponse(s.nav.Outline()).Entries
	case "text":
		return mcp.NewToolResultText(s.nav.Outline().Text()), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q: want tree, outline or text", format)), nil
	}

	return jsonResult(payload)
}

func (s *Server) handleValidate(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.nav.Validate(ctx)
	if err != nil {
		s.logger.Error("validation failed to run", slog.Any("error", err))
		return mcp.NewToolResultError(fmt.Sprintf("validate: %v", err)), nil
	}

	type validationResult struct {
		Valid          bool     `json:"valid"`
		Nodes          int      `json:"nodes"`
		Leaves         int      `json:"leaves"`
		Depth          int      `json:"depth"`
		ContentChecked bool     `json:"content_checked"`
		DuplicateSlugs []string `json:"duplicate_slugs"`
		Orphans        []string `json:"orphans"`
		Errors         []string `json:"errors"`
	}

	result := validationResult{
		Valid:          report.Valid(),
		Nodes:          report.Nodes(),
		Leaves:         report.Leaves(),
		Depth:          report.Depth(),
		ContentChecked: report.ContentChecked(),
		DuplicateSlugs: []string{},
		Orphans:        []string{},
		Errors:         []string{},
	}
	var ve *navigation.ValidationErrors
	if errors.As(report.Err(), &ve) {
		result.DuplicateSlugs = append(result.DuplicateSlugs, ve.DuplicateSlugs()...)
	}
	result.Orphans = append(result.Orphans, report.Orphans()...)
	for _, e := range report.Errors() {
		result.Errors = append(result.Errors, e.Error())
	}

	return jsonResult(result)
}

func (s *Server) handleResolve(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError("slug is required"), nil
	}
	if err := navigation.CheckSlug(slug); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.nav.Resolve(slug)
	exists := err == nil
	if err != nil && !errors.Is(err, navigation.ErrMissingContent) {
		return mcp.NewToolResultError(err.Error()), nil
	}

	type resolveResult struct {
		Slug     string   `json:"slug"`
		Label    string   `json:"label"`
		Href     string   `json:"href"`
		Position string   `json:"position"`
		Path     string   `json:"path,omitempty"`
		Exists   bool     `json:"exists"`
		URI      string   `json:"uri,omitempty"`
		Labels   []string `json:"labels"`
	}

	result := resolveResult{
		Slug:     res.Slug(),
		Label:    res.Label(),
		Href:     res.Href(),
		Position: res.Position().String(),
		Path:     res.Path(),
		Exists:   exists,
		Labels:   res.Position().Labels(),
	}
	if res.Path() != "" {
		result.URI = NewDocURI(res.Slug()).String()
	}
	return jsonResult(result)
}

func (s *Server) handleReadSidebar(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/markdown",
			Text:     s.nav.Outline().Text(),
		},
	}, nil
}

func (s *Server) handleReadDocument(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri, err := ParseDocURI(request.Params.URI)
	if err != nil {
		return nil, err
	}
	data, err := s.nav.ReadDocument(uri.Slug())
	if err != nil {
		s.logger.Warn("read document failed", slog.String("slug", uri.Slug()), slog.Any("error", err))
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri.String(),
			MIMEType: "text/markdown",
			Text:     string(data),
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
