package tenant

import (
	"log/slog"

	"ixcbridge/internal/tenant/handler"
	"ixcbridge/internal/tenant/service"
)

// Service exposes tenant config management.
type Service = service.Service

// Handler wires HTTP endpoints to the tenant service.
type Handler = handler.Handler

// NewService constructs the tenant service with required dependencies.
func NewService(store service.Store, catalog service.CatalogCleaner, opts ...service.Option) *Service {
	return service.New(store, catalog, opts...)
}

// NewHandler constructs an HTTP handler for the operator's tenant routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
