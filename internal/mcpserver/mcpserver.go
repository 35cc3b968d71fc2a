// Package mcpserver implements the MCP (Model Context Protocol) resource
// and tool surface (spec.md §4.7): five URI-template resource schemes and
// three JSON-argument tools, both backed by a shared internal/engine.OrgMode
// instance, serialised over stdio.
package mcpserver

import (
	"context"

	"github.com/jra3/orgmind/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const instructions = `This server exposes a read-only Org-mode knowledge base.

Resources:
  org://                         JSON array of every .org file path (relative)
  org://{path}                   Raw file contents, MIME text/org
  org-outline://{path}           JSON outline tree for a file
  org-heading://{path}#{heading} Raw span of a slash-separated heading path
  org-id://{id}                  Raw span of the element carrying that :ID:
  org-agenda://[today|week|...]  JSON agenda view; bare org-agenda:// uses the default window

Tools:
  org-file-list  List .org file paths, optionally filtered by tag
  org-search     Fuzzy search across every line, optionally filtered by tag
  org-agenda     List TODO items or compute a date-windowed agenda view

All paths in resource URIs and tool arguments are relative to the configured
org directory.`

// New builds an MCP server wired against eng, with every resource and tool
// registered.
func New(eng *engine.OrgMode) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "org-mcp-server", Version: "0.1.0"},
		&mcp.ServerOptions{Instructions: instructions},
	)

	registerResources(server, eng)
	registerFileListTool(server, eng)
	registerSearchTool(server, eng)
	registerAgendaTool(server, eng)

	return server
}

// registerResources wires the two fixed URIs (org:// and bare org-agenda://)
// as resources and the five templated ones as resource templates, all served
// by the shared dispatchResource router.
func registerResources(server *mcp.Server, eng *engine.OrgMode) {
	handler := dispatchResource(eng)

	server.AddResource(&mcp.Resource{
		URI:         "org://",
		Name:        "org-files",
		Description: "JSON array of every .org file path under the configured org directory",
		MIMEType:    "application/json",
	}, handler)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "org://{path}",
		Name:        "org-file",
		Description: "Raw contents of a single .org file",
		MIMEType:    "text/org",
	}, handler)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "org-outline://{path}",
		Name:        "org-outline",
		Description: "JSON outline tree of a single .org file",
		MIMEType:    "application/json",
	}, handler)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "org-heading://{path}",
		Name:        "org-heading",
		Description: "Raw span of a heading named by a slash-separated path, after the URI's '#'",
		MIMEType:    "text/org",
	}, handler)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "org-id://{id}",
		Name:        "org-id",
		Description: "Raw span of the element carrying the given :ID: property",
		MIMEType:    "text/org",
	}, handler)

	server.AddResource(&mcp.Resource{
		URI:         "org-agenda://",
		Name:        "org-agenda-default",
		Description: "JSON agenda view for the default window",
		MIMEType:    "application/json",
	}, handler)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "org-agenda://{view}",
		Name:        "org-agenda",
		Description: "JSON agenda view for a named window (today, week, month/N, query/from/.../to/..., ...)",
		MIMEType:    "application/json",
	}, handler)
}

// Run starts the server over stdio and blocks until the client disconnects
// or ctx is cancelled.
func Run(ctx context.Context, eng *engine.OrgMode) error {
	server := New(eng)
	return server.Run(ctx, &mcp.StdioTransport{})
}
