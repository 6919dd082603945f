// context.go defines the Context interface for extension access to lens
// internals.
//
// Design: Extensions receive Context during Init(), not at construction,
// so they can register before the registry and config exist.

package extension

import (
	"github.com/jpl-au/lens/internal/config"
	"github.com/jpl-au/lens/internal/service"
	"github.com/jpl-au/lens/plugin"
)

// Context provides extensions controlled access to shared state.
type Context interface {
	// Service resolves and renders through the plugin registry.
	Service() *service.Service

	// Registry is the process-wide plugin registry.
	Registry() *plugin.Registry

	// Config returns the loaded user configuration.
	Config() *config.Config
}

type extContext struct {
	svc *service.Service
}

// NewContext creates a new extension context around svc.
func NewContext(svc *service.Service) Context {
	return &extContext{svc: svc}
}

func (c *extContext) Service() *service.Service { return c.svc }

func (c *extContext) Registry() *plugin.Registry { return c.svc.Registry() }

func (c *extContext) Config() *config.Config { return c.svc.Config() }
