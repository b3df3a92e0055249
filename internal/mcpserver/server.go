// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Dagaz tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/dagaz/internal/editor"
	"github.com/starford/dagaz/internal/markdown"
)

// Server wraps the MCP server with Dagaz tools.
type Server struct {
	mcp *server.MCPServer
	svc *editor.Service
}

// New creates a new MCP server with all Dagaz tools registered.
func New(svc *editor.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Dagaz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("read_checklist",
		mcp.WithDescription("Read the full checklist document as JSON, including all pages, "+
			"sections and chores. The structure follows the Dagaz document format; read the "+
			"contract first via the get_document_contract tool or the dagaz://document-format resource."),
	), s.readChecklist)

	s.mcp.AddTool(mcp.NewTool("add_chore",
		mcp.WithDescription("Add a chore line to a section on the master page. "+
			"Use read_checklist first to discover section ids."),
		mcp.WithString("section", mcp.Required(), mcp.Description("Section id (e.g. weekly-1)")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Chore text to append")),
	), s.addChore)

	s.mcp.AddTool(mcp.NewTool("set_title",
		mcp.WithDescription("Set the checklist title shown on every page."),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title (empty restores the default)")),
	), s.setTitle)

	s.mcp.AddTool(mcp.NewTool("share_link",
		mcp.WithDescription("Produce the URL-safe share token that encodes the current document. "+
			"Appending it to a viewer URL as ?list=<token> reproduces the checklist."),
	), s.shareLink)

	s.mcp.AddTool(mcp.NewTool("export_markdown",
		mcp.WithDescription("Render the master page as a printable Markdown checklist."),
	), s.exportMarkdown)

	s.mcp.AddTool(mcp.NewTool("get_document_contract",
		mcp.WithDescription("Returns the canonical Dagaz document format contract. "+
			"Call this before interpreting or constructing checklist documents."),
	), s.getDocumentContract)

	// Resource: document format contract.
	s.mcp.AddResource(
		mcp.NewResource("dagaz://document-format", "Document Format Contract",
			mcp.WithResourceDescription("Canonical checklist document structure and field semantics."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDocumentFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) readChecklist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(s.svc.Document(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addChore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	section, err := req.RequireString("section")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.AddChore(section, text); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("added: " + text), nil
}

func (s *Server) setTitle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.SetTitle(title); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("title set"), nil
}

func (s *Server) shareLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token, err := s.svc.ShareToken()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(token), nil
}

func (s *Server) exportMarkdown(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(markdown.Export(s.svc.Document())), nil
}

func (s *Server) getDocumentContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DocumentFormatContract), nil
}

func (s *Server) readDocumentFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "dagaz://document-format",
			MIMEType: "text/markdown",
			Text:     DocumentFormatContract,
		},
	}, nil
}
