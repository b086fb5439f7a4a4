package api

import (
	"github.com/land-deals/backend/internal/provider"
)

// Handler exposes the HTTP surface over the service container.
type Handler struct {
	*provider.Container
}

// NewHandler creates the API handler.
func NewHandler(container *provider.Container) *Handler {
	return &Handler{Container: container}
}
