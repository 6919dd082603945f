// tools_lifecycle.go implements lens_plugin_disable and lens_reload.
//
// A disable without save only lasts until the next reload or restart.
// Reload re-reads configuration through the same cascade as config_get,
// so edits made outside the server (or by lens_config_set on another
// scope) are picked up too.

package mcp

import (
	"context"

	"github.com/jpl-au/lens/internal/config"
	"github.com/jpl-au/lens/internal/log"
	"github.com/jpl-au/lens/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// disableResult is the JSON shape of a successful disable.
type disableResult struct {
	ID      string   `json:"id"`
	Saved   bool     `json:"saved"`
	Scope   string   `json:"scope,omitempty"`
	Plugins []string `json:"plugins"`
}

// reloadResult is the JSON shape of a successful reload.
type reloadResult struct {
	Plugins  []string `json:"plugins"`
	Disabled []string `json:"disabled"`
	Default  string   `json:"default"`
	Scope    string   `json:"scope"`
}

func (h *handlers) pluginDisable(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}
	save := getBool(req, "save", false)
	ev := log.Event("mcp:plugin_disable", "disable").Plugin(id, "").Detail("save", save)

	if err := validate.PluginID(id); err != nil {
		ev.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := disableResult{ID: id, Saved: save}
	if save {
		var cfg *config.Config
		cfg, err = loadConfig(req)
		if err == nil {
			_, err = cfg.Disable(id)
		}
		if err == nil {
			err = cfg.Save()
		}
		if err != nil {
			ev.Write(err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		out.Scope = scopeName(cfg)
		h.svc.SetConfig(cfg)
	}

	// Disabling an id that is already gone is only an error when nothing
	// was persisted; a saved entry still matters for the next start.
	if err := h.svc.Disable(id); err != nil && !save {
		ev.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	ev.Write(nil)

	out.Plugins = h.svc.Registry().IDs()
	return jsonResult(out)
}

func (h *handlers) reload(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ev := log.Event("mcp:reload", "reload")

	cfg, err := config.Load()
	if err == nil {
		err = h.svc.Reload(cfg)
	}
	if err != nil {
		ev.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	reg := h.svc.Registry()
	out := reloadResult{
		Plugins:  reg.IDs(),
		Disabled: cfg.Disabled(),
		Default:  reg.DefaultID(),
		Scope:    scopeName(cfg),
	}
	if out.Disabled == nil {
		out.Disabled = []string{}
	}
	ev.Detail("count", len(out.Plugins)).Write(nil)
	return jsonResult(out)
}
