// serve.go implements the "lens serve" command for MCP server operation.
//
// Design: Serve is a standalone command. It loads config and builds its own
// registry so every audit entry it writes is labelled with the MCP source.
// Unlike other commands that run and exit, serve blocks handling MCP
// requests over stdio.

package core

import (
	"github.com/jpl-au/lens/cmd"
	"github.com/jpl-au/lens/internal/config"
	"github.com/jpl-au/lens/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Tools: lens_plugins, lens_resolve, lens_render, lens_status, lens_guide,
lens_config_get, lens_config_set. Resource: lens://plugins/{id}.`,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return mcp.Serve(cmd.NewService(cfg, "mcp"))
}
