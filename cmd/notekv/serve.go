// Package main provides the entry point for the notekv CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	notekvmcp "github.com/gorewood/notekv/internal/mcp"
	"github.com/gorewood/notekv/internal/store"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	var refFlag, remoteFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run notekv as a Model Context Protocol (MCP) server over stdio.

This exposes the metadata store as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "notekv": {
        "command": "notekv",
        "args": ["serve"]
      }
    }
  }

Available tools: get, set, status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, remote := resolveTargets(refFlag, remoteFlag)
			server := notekvmcp.NewServer(buildVersion(), store.New(nil, remote, ref))
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}

	cmd.Flags().StringVar(&refFlag, "ref", "", "Notes ref name (default notes-kv)")
	cmd.Flags().StringVar(&remoteFlag, "remote", "", "Remote to sync with (default origin)")

	return cmd
}
