// tools_guide.go implements lens_guide, which serves the same embedded
// pages as "lens guide". Unknown topics return the topic list instead of
// failing, so a client can retry with a valid name.

package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/lens/guide"
	"github.com/jpl-au/lens/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) getGuide(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := getString(req, "topic", "")
	content, err := guide.Get(topic)
	log.Event("mcp:guide", "read").Detail("topic", topic).Write(err)

	switch {
	case err == nil:
		return mcp.NewToolResultText(content), nil
	case errors.Is(err, guide.ErrUnknownTopic):
		topics, listErr := guide.List()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return jsonResult(map[string]any{
			"error":            err.Error(),
			"available_topics": topics,
		})
	default:
		return mcp.NewToolResultError(err.Error()), nil
	}
}
