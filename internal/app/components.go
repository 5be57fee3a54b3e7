package app

import (
	"go.trai.ch/provcache/internal/adapters/storage"
	"go.trai.ch/provcache/internal/core/ports"
)

// Components contains all the initialized application components.
// It gives the CLI layer controlled access to what it needs.
type Components struct {
	App    *App
	Logger ports.Logger

	backend *storage.Backend
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, backend *storage.Backend) *Components {
	return &Components{
		App:     app,
		Logger:  logger,
		backend: backend,
	}
}

// Close releases the resources held by the storage backend.
func (c *Components) Close() {
	if c.backend != nil {
		c.backend.Close()
	}
}
