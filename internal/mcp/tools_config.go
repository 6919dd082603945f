// tools_config.go implements lens_config_get and lens_config_set.
//
// Both follow the CLI cascade: local .lens/config.yaml when it exists,
// otherwise global. Passing local=true forces the local file, like
// "lens config --local". A successful set is swapped into the running
// service so later renders pick it up without restarting the server.

package mcp

import (
	"context"

	"github.com/jpl-au/lens/internal/config"
	"github.com/jpl-au/lens/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configResult is the JSON shape of a successful set.
type configResult struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Scope string `json:"scope"`
}

func loadConfig(req mcp.CallToolRequest) (*config.Config, error) {
	if getBool(req, "local", false) {
		return config.LoadScope(config.ScopeLocal)
	}
	return config.Load()
}

func scopeName(cfg *config.Config) string {
	if cfg.Scope() == config.ScopeLocal {
		return "local"
	}
	return "global"
}

func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := getString(req, "key", "")
	ev := log.Event("mcp:config_get", "get").Detail("key", key)

	cfg, err := loadConfig(req)
	if err != nil {
		ev.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if key == "" {
		ev.Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)
	ev.Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{key: v})
}

func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	// An empty value is allowed: it removes a detect override.
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	ev := log.Event("mcp:config_set", "set").Detail("key", key).Detail("value", value)

	cfg, err := loadConfig(req)
	if err == nil {
		err = cfg.Set(key, value)
	}
	if err == nil {
		err = cfg.Save()
	}
	ev.Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.svc.SetConfig(cfg)
	return jsonResult(configResult{Key: key, Value: value, Scope: scopeName(cfg)})
}
