package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/dagaz/internal/editor"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/store"
)

func testServer(t *testing.T) (*Server, *editor.Service) {
	t.Helper()

	slot, err := store.NewFile(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	svc := editor.New(slot, nil, logger, editor.WithClock(func() time.Time { return now }))
	if err := svc.Load(); err != nil {
		t.Fatal(err)
	}
	return New(svc), svc
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so the handler
	// functions are invoked directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "read_checklist":
		result, err = srv.readChecklist(ctx, req)
	case "add_chore":
		result, err = srv.addChore(ctx, req)
	case "set_title":
		result, err = srv.setTitle(ctx, req)
	case "share_link":
		result, err = srv.shareLink(ctx, req)
	case "export_markdown":
		result, err = srv.exportMarkdown(ctx, req)
	case "get_document_contract":
		result, err = srv.getDocumentContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestReadChecklist(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "read_checklist", map[string]interface{}{})
	var doc models.Document
	if err := json.Unmarshal([]byte(resultText(r)), &doc); err != nil {
		t.Fatalf("result is not a document: %v", err)
	}
	if len(doc.Pages) != 1 || doc.Pages[0].Month != "2026-03" {
		t.Errorf("document = %+v", doc.Pages)
	}
}

func TestAddChoreTool(t *testing.T) {
	srv, svc := testServer(t)

	r := callTool(t, srv, "add_chore", map[string]interface{}{
		"section": "weekly-1",
		"text":    "Water plants",
	})
	if r.IsError {
		t.Fatalf("add_chore failed: %s", resultText(r))
	}
	sec := svc.Document().Master().Section("weekly-1")
	if sec.Chores[len(sec.Chores)-1] != "Water plants" {
		t.Error("chore not added")
	}

	r = callTool(t, srv, "add_chore", map[string]interface{}{
		"section": "ghost-1",
		"text":    "x",
	})
	if !r.IsError {
		t.Error("expected error for missing section")
	}
}

func TestSetTitleTool(t *testing.T) {
	srv, svc := testServer(t)

	r := callTool(t, srv, "set_title", map[string]interface{}{"title": "From MCP"})
	if r.IsError {
		t.Fatalf("set_title failed: %s", resultText(r))
	}
	if got := svc.Document().Master().Title; got != "From MCP" {
		t.Errorf("title = %q", got)
	}
}

func TestShareLinkTool(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "share_link", map[string]interface{}{})
	token := resultText(r)
	if token == "" || strings.ContainsAny(token, "+/=") {
		t.Errorf("token = %q", token)
	}
}

func TestExportMarkdownTool(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "export_markdown", map[string]interface{}{})
	if !strings.HasPrefix(resultText(r), "# "+models.DefaultTitle) {
		t.Errorf("export = %q", resultText(r))
	}
}

func TestDocumentContractTool(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_document_contract", map[string]interface{}{})
	if !strings.Contains(resultText(r), "weekStartDay") {
		t.Error("contract missing document fields")
	}
}
