// resources.go implements MCP resource handlers for plugin descriptors.
//
// Resources give read-only access to a plugin's declared capabilities by
// URI, so a client can load them as context without calling a tool.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/lens/internal/log"
	"github.com/jpl-au/lens/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI, helping clients
	// debug URI construction issues.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyID indicates a missing plugin identifier in a resource URI.
	ErrEmptyID = errors.New("empty plugin identifier")
)

const pluginURIPrefix = "lens://plugins/"

// readPluginResource returns the descriptor named by uri as JSON.
func (h *handlers) readPluginResource(_ context.Context, uri string) ([]mcp.ResourceContents, error) {
	id, err := parsePluginURI(uri)
	if err != nil {
		return nil, err
	}

	d, ok := h.svc.Registry().Get(id)
	if !ok {
		err := fmt.Errorf("%w: %s", service.ErrUnknownPlugin, id)
		log.Event("mcp:plugin", "read").Plugin(id, "").Write(err)
		return nil, err
	}

	data, err := json.MarshalIndent(d, "", "  ")
	log.Event("mcp:plugin", "read").Plugin(id, "").Write(err)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parsePluginURI extracts the plugin identifier from lens://plugins/{id}.
func parsePluginURI(uri string) (string, error) {
	id, ok := strings.CutPrefix(uri, pluginURIPrefix)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	if id == "" {
		return "", ErrEmptyID
	}
	if strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return id, nil
}
