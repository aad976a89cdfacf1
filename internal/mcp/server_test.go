package mcp

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/timsexperiments/sitenav/application/service"
	"github.com/timsexperiments/sitenav/course"
	"github.com/timsexperiments/sitenav/domain/navigation"
	"github.com/timsexperiments/sitenav/domain/site"
	v1 "github.com/timsexperiments/sitenav/infrastructure/api/v1"
	"github.com/timsexperiments/sitenav/infrastructure/api/v1/dto"
	"github.com/timsexperiments/sitenav/infrastructure/content"
)

func courseFS() fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, slug := range course.Sidebar().Slugs() {
		fsys[slug+".md"] = &fstest.MapFile{Data: []byte("# " + slug + "\n")}
	}
	return fsys
}

func testServer() *Server {
	nav := service.NewNavigation(course.Site(), content.NewResolver(courseFS()), nil)
	return NewServer(nav, "0.1.0", nil)
}

// sendMessage marshals a JSON-RPC request, sends it through HandleMessage,
// and returns the raw message.
func sendMessage(t *testing.T, srv *Server, method string, id int, params map[string]any) mcp.JSONRPCMessage {
	t.Helper()

	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return srv.MCPServer().HandleMessage(context.Background(), raw)
}

func mustResponse(t *testing.T, msg mcp.JSONRPCMessage) mcp.JSONRPCResponse {
	t.Helper()
	resp, ok := msg.(mcp.JSONRPCResponse)
	if !ok {
		t.Fatalf("expected JSONRPCResponse, got %T: %+v", msg, msg)
	}
	return resp
}

// resultJSON re-marshals the Result field through JSON into dst.
func resultJSON(t *testing.T, resp mcp.JSONRPCResponse, dst any) {
	t.Helper()
	b, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		t.Fatalf("unmarshal result into %T: %v", dst, err)
	}
}

func initializeParams() map[string]any {
	return map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    "test-client",
			"version": "0.0.1",
		},
	}
}

type toolResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) toolResult {
	t.Helper()
	sendMessage(t, srv, "initialize", 1, initializeParams())
	resp := mustResponse(t, sendMessage(t, srv, "tools/call", 2, map[string]any{
		"name":      name,
		"arguments": args,
	}))

	var result toolResult
	resultJSON(t, resp, &result)
	if len(result.Content) == 0 {
		t.Fatalf("tool %s returned no content", name)
	}
	return result
}

func TestServer_Initialize(t *testing.T) {
	srv := testServer()
	resp := mustResponse(t, sendMessage(t, srv, "initialize", 1, initializeParams()))

	var result mcp.InitializeResult
	resultJSON(t, resp, &result)

	if result.ServerInfo.Name != "sitenav" {
		t.Errorf("expected server name sitenav, got %s", result.ServerInfo.Name)
	}
	if result.ServerInfo.Version != "0.1.0" {
		t.Errorf("expected version 0.1.0, got %s", result.ServerInfo.Version)
	}
	if result.Capabilities.Tools == nil {
		t.Error("expected tools capability to be present")
	}
	if result.Capabilities.Resources == nil {
		t.Error("expected resources capability to be present")
	}
}

func TestServer_ListTools(t *testing.T) {
	srv := testServer()
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := mustResponse(t, sendMessage(t, srv, "tools/list", 2, nil))

	var result mcp.ListToolsResult
	resultJSON(t, resp, &result)

	if len(result.Tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(result.Tools))
	}
	tools := map[string]mcp.Tool{}
	for _, tool := range result.Tools {
		tools[tool.Name] = tool
	}
	for _, name := range []string{"get_sidebar", "validate_sidebar", "resolve_slug"} {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing tool: %s", name)
		}
	}

	required := tools["resolve_slug"].InputSchema.Required
	if len(required) != 1 || required[0] != "slug" {
		t.Errorf("resolve_slug should require slug, got %v", required)
	}
}

func TestServer_GetSidebarTree(t *testing.T) {
	result := callTool(t, testServer(), "get_sidebar", map[string]any{})
	if result.IsError {
		t.Fatalf("unexpected error: %s", result.Content[0].Text)
	}

	var nodes []dto.NodeResponse
	if err := json.Unmarshal([]byte(result.Content[0].Text), &nodes); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Label != "Modules" || nodes[0].Items == nil {
		t.Fatalf("unexpected tree: %+v", nodes)
	}
	if got := len(*nodes[0].Items); got != 7 {
		t.Errorf("expected 7 modules, got %d", got)
	}

	want := v1.NewNodeResponses(course.Sidebar().Roots(), course.Base)
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("tree differs from the HTTP sidebar body")
	}
}

func TestServer_GetSidebarOutline(t *testing.T) {
	result := callTool(t, testServer(), "get_sidebar", map[string]any{"format": "outline"})

	var entries []dto.EntryResponse
	if err := json.Unmarshal([]byte(result.Content[0].Text), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := course.Site().Outline().Entries()
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i := range want {
		if entries[i].Label != want[i].Label() || entries[i].Slug != want[i].Slug() {
			t.Errorf("entry %d: got %+v, want %s %s", i, entries[i], want[i].Label(), want[i].Slug())
		}
	}
}

func TestServer_GetSidebarText(t *testing.T) {
	result := callTool(t, testServer(), "get_sidebar", map[string]any{"format": "text"})

	if result.Content[0].Text != course.Site().Outline().Text() {
		t.Errorf("unexpected text outline:\n%s", result.Content[0].Text)
	}
}

func TestServer_ValidateSidebar(t *testing.T) {
	result := callTool(t, testServer(), "validate_sidebar", nil)

	var report struct {
		Valid  bool     `json:"valid"`
		Leaves int      `json:"leaves"`
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal([]byte(result.Content[0].Text), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !report.Valid || report.Leaves != 17 || len(report.Errors) != 0 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestServer_ValidateSidebarInvalid(t *testing.T) {
	s := site.New("Broken", site.WithSidebar(navigation.NewTree(
		navigation.Leaf("One", "intro"),
		navigation.Leaf("Two", "intro"),
	)))
	srv := NewServer(service.NewNavigation(s, nil, nil), "test", nil)

	result := callTool(t, srv, "validate_sidebar", nil)

	var report struct {
		Valid          bool     `json:"valid"`
		DuplicateSlugs []string `json:"duplicate_slugs"`
		Errors         []string `json:"errors"`
	}
	if err := json.Unmarshal([]byte(result.Content[0].Text), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if report.Valid {
		t.Error("expected invalid report")
	}
	if len(report.DuplicateSlugs) != 1 || report.DuplicateSlugs[0] != "intro" {
		t.Errorf("expected duplicate intro, got %v", report.DuplicateSlugs)
	}
	if len(report.Errors) != 1 || !strings.Contains(report.Errors[0], "intro") {
		t.Errorf("unexpected errors: %v", report.Errors)
	}
}

func TestServer_ResolveSlug(t *testing.T) {
	result := callTool(t, testServer(), "resolve_slug", map[string]any{"slug": "modules/06_modern_ui_architecture/index"})
	if result.IsError {
		t.Fatalf("unexpected error: %s", result.Content[0].Text)
	}

	var res struct {
		Label    string `json:"label"`
		Href     string `json:"href"`
		Position string `json:"position"`
		Exists   bool   `json:"exists"`
		URI      string `json:"uri"`
	}
	if err := json.Unmarshal([]byte(result.Content[0].Text), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Href != "/intro-to-front-end/modules/06_modern_ui_architecture/" {
		t.Errorf("unexpected href %s", res.Href)
	}
	if !strings.HasPrefix(res.Position, "Modules > Modern UI Architecture > Introduction") {
		t.Errorf("unexpected position %s", res.Position)
	}
	if !res.Exists || res.URI != "sitenav://docs/modules/06_modern_ui_architecture/index" {
		t.Errorf("unexpected resolution %+v", res)
	}
}

func TestServer_ResolveSlugErrors(t *testing.T) {
	srv := testServer()

	for _, args := range []map[string]any{
		{},
		{"slug": "nowhere"},
		{"slug": "/leading"},
	} {
		result := callTool(t, srv, "resolve_slug", args)
		if !result.IsError {
			t.Errorf("%v: expected tool error, got %s", args, result.Content[0].Text)
		}
	}
}

func TestServer_ReadSidebarResource(t *testing.T) {
	srv := testServer()
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := mustResponse(t, sendMessage(t, srv, "resources/read", 2, map[string]any{"uri": SidebarURI}))

	var result struct {
		Contents []struct {
			URI  string `json:"uri"`
			Text string `json:"text"`
		} `json:"contents"`
	}
	resultJSON(t, resp, &result)
	if len(result.Contents) != 1 || result.Contents[0].Text != course.Site().Outline().Text() {
		t.Errorf("unexpected sidebar resource: %+v", result)
	}
}

func TestServer_ReadDocument(t *testing.T) {
	srv := testServer()

	contents, err := srv.handleReadDocument(context.Background(), mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{URI: "sitenav://docs/modules/01_front_end_foundations/03_css/lesson"},
	})
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected text contents, got %T", contents[0])
	}
	if text.Text != "# modules/01_front_end_foundations/03_css/lesson\n" {
		t.Errorf("unexpected contents %q", text.Text)
	}

	if _, err := srv.handleReadDocument(context.Background(), mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{URI: "sitenav://docs/modules/99_missing/index"},
	}); err == nil {
		t.Error("expected error for missing document")
	}
}
