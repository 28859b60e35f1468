// Package analytics provides the admin reporting bounded context module.
package analytics

import (
	"leaddesk_backend/internal/analytics/handler"
	"leaddesk_backend/internal/analytics/repository"
	"leaddesk_backend/internal/analytics/service"
	apphttp "leaddesk_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the analytics bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the analytics module.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{handler: handler.New(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "analytics"
}

// RegisterRoutes mounts analytics routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/analytics/summary", m.handler.Summary)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
