// Package mcp provides a Model Context Protocol server for notekv.
// It exposes the metadata store as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/notekv/internal/store"
)

// NewServer creates an MCP server with all notekv tools registered.
func NewServer(version string, st *store.Store) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "notekv",
		Version: version,
	}, nil)
	registerTools(server, st)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for write tools (merge, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all notekv tools to the server.
func registerTools(server *mcp.Server, st *store.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get",
		Description: "Read the metadata map stored for a commit (defaults to HEAD). Returns the key/value pairs from the git note.",
		Annotations: readOnlyAnnotations(),
	}, handleGet(st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set",
		Description: "Merge key/value pairs into the metadata note for HEAD and push the notes ref. New values win on key collision; other keys are preserved.",
		Annotations: writeAnnotations(),
	}, handleSet(st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show metadata sync state: whether the notes ref exists, fetch configuration, and how many commits carry metadata.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(st))
}
