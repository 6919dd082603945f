// Package mcp implements the Model Context Protocol server, exposing lens
// plugin resolution and rendering to LLMs. An assistant can ask which
// renderer would present a file, render content through it, and inspect
// or change lens configuration.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/lens/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
func Serve(svc *service.Service) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := NewServer(svc)

	slog.Info("lens MCP server ready", "version", Version, "transport", "stdio",
		"plugins", svc.Registry().Len())

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server with every lens tool and resource
// registered.
func NewServer(svc *service.Service) *server.MCPServer {
	h := &handlers{svc: svc}

	s := server.NewMCPServer(
		"lens",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)
	return s
}

// handlers provides MCP request handlers with access to the render service.
type handlers struct {
	svc *service.Service
}

// registerResources adds URI-based access to plugin descriptors.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"lens://plugins/{id}",
			"Plugin",
			mcp.WithTemplateDescription("Read a registered plugin's declared themes and file types"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readPlugin,
	)
}

// registerTools exposes lens operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// List plugins
	s.AddTool(
		mcp.NewTool("lens_plugins",
			mcp.WithDescription("List registered renderer plugins in resolution order"),
			mcp.WithString("theme", mcp.Description("Only plugins declaring this theme")),
			mcp.WithString("file_type", mcp.Description("Only plugins declaring this file type")),
			mcp.WithBoolean("ids_only", mcp.Description("Return identifiers only")),
		),
		h.listPlugins,
	)

	// Resolve
	s.AddTool(
		mcp.NewTool("lens_resolve",
			mcp.WithDescription("Show which plugin would render a theme and file type, and which rule chose it"),
			mcp.WithString("theme", mcp.Required(), mcp.Description("Theme name (e.g. dark, light, notty)")),
			mcp.WithString("file_type", mcp.Description("File type (e.g. markdown, go, csv); omit when unknown")),
			mcp.WithString("filename", mcp.Description("File name used to detect the file type when file_type is omitted")),
		),
		h.resolve,
	)

	// Render
	s.AddTool(
		mcp.NewTool("lens_render",
			mcp.WithDescription("Render content through the best matching plugin"),
			mcp.WithString("content", mcp.Required(), mcp.Description("Content to render")),
			mcp.WithString("filename", mcp.Description("File name, used for file type detection")),
			mcp.WithString("theme", mcp.Description("Theme name (default: notty, plain text output)")),
			mcp.WithString("file_type", mcp.Description("File type, overrides detection")),
			mcp.WithString("plugin", mcp.Description("Force a specific plugin by identifier")),
			mcp.WithNumber("width", mcp.Description("Wrap width in columns (default: render.width)")),
		),
		h.render,
	)

	// Status
	s.AddTool(
		mcp.NewTool("lens_status",
			mcp.WithDescription("Summarise the registry: plugin count, default plugin, known themes and file types"),
		),
		h.status,
	)

	// Guide
	s.AddTool(
		mcp.NewTool("lens_guide",
			mcp.WithDescription("Get help/guide content for lens commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'view', 'resolve') or empty for index")),
		),
		h.getGuide,
	)

	// Config Get
	s.AddTool(
		mcp.NewTool("lens_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (render.theme, render.width, render.default_plugin, render.disabled, limits.max_content, detect.<glob>) or empty for all")),
			mcp.WithBoolean("local", mcp.Description("Read .lens/config.yaml even if it does not exist yet")),
		),
		h.configGet,
	)

	// Config Set
	s.AddTool(
		mcp.NewTool("lens_config_set",
			mcp.WithDescription("Set a configuration value. An empty value removes a detect.<glob> override"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
			mcp.WithBoolean("local", mcp.Description("Write .lens/config.yaml instead of the global config")),
		),
		h.configSet,
	)

	// Plugin disable
	s.AddTool(
		mcp.NewTool("lens_plugin_disable",
			mcp.WithDescription("Remove a plugin from the running registry so resolution skips it"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Plugin identifier")),
			mcp.WithBoolean("save", mcp.Description("Also add it to render.disabled so it stays off after a restart")),
			mcp.WithBoolean("local", mcp.Description("With save, write .lens/config.yaml instead of the global config")),
		),
		h.pluginDisable,
	)

	// Reload
	s.AddTool(
		mcp.NewTool("lens_reload",
			mcp.WithDescription("Re-read configuration and rebuild the plugin registry, restoring plugins disabled without save"),
		),
		h.reload,
	)
}

// readPlugin handles lens://plugins/{id} resource requests.
func (h *handlers) readPlugin(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.readPluginResource(ctx, req.Params.URI)
}
