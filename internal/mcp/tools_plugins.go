// tools_plugins.go implements the MCP tools over the plugin registry:
// listing, resolution, rendering and status.
//
// Design: lens_render defaults to the notty theme rather than auto. The
// server's stdout is a JSON-RPC pipe, not a terminal, and LLM clients
// want plain text.

package mcp

import (
	"bytes"
	"context"

	"github.com/jpl-au/lens/internal/log"
	"github.com/jpl-au/lens/internal/service"
	"github.com/jpl-au/lens/plugin"
	"github.com/mark3labs/mcp-go/mcp"
)

// pluginSummary is the JSON shape of one plugin in lens_plugins output.
type pluginSummary struct {
	ID        string            `json:"id"`
	Themes    []plugin.Theme    `json:"themes"`
	FileTypes []plugin.FileType `json:"file_types"`
	Default   bool              `json:"default,omitempty"`
}

// listPlugins handles lens_plugins tool calls.
func (h *handlers) listPlugins(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t := plugin.Theme(getString(req, "theme", ""))
	ft := plugin.FileType(getString(req, "file_type", ""))
	ds := h.svc.Find(t, ft)
	defaultID := h.svc.Registry().DefaultID()

	log.Event("mcp:plugins", "list").Theme(string(t)).FileType(string(ft)).
		Detail("count", len(ds)).Write(nil)

	if getBool(req, "ids_only", false) {
		ids := make([]string, 0, len(ds))
		for _, d := range ds {
			ids = append(ids, d.ID)
		}
		return jsonResult(ids)
	}

	out := make([]pluginSummary, 0, len(ds))
	for _, d := range ds {
		out = append(out, pluginSummary{
			ID:        d.ID,
			Themes:    d.Themes,
			FileTypes: d.FileTypes,
			Default:   d.ID == defaultID,
		})
	}
	return jsonResult(out)
}

// resolve handles lens_resolve tool calls.
func (h *handlers) resolve(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := req.RequireString("theme")
	if err != nil {
		return mcp.NewToolResultError("theme is required"), nil //nolint:nilerr
	}

	_, out, err := h.svc.Resolve(service.Request{
		Filename: getString(req, "filename", ""),
		Theme:    t,
		FileType: plugin.FileType(getString(req, "file_type", "")),
		IsTTY:    true,
	})

	log.Event("mcp:resolve", "resolve").Path(getString(req, "filename", "")).
		Theme(string(out.Theme)).FileType(string(out.FileType)).Plugin(out.Plugin, out.Rule).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

// render handles lens_render tool calls. Logging happens in the service.
func (h *handlers) render(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}

	var buf bytes.Buffer
	_, err = h.svc.Render(ctx, &buf, service.Request{
		Filename: getString(req, "filename", ""),
		Content:  []byte(content),
		Theme:    getString(req, "theme", "notty"),
		FileType: plugin.FileType(getString(req, "file_type", "")),
		Plugin:   getString(req, "plugin", ""),
		Width:    getInt(req, "width", 0),
		Source:   "mcp:render",
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// status handles lens_status tool calls.
func (h *handlers) status(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s := h.svc.Registry().Status()
	log.Event("mcp:status", "status").Detail("count", s.Count).Write(nil)
	return jsonResult(s)
}
