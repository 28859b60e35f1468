// Package leaderboard provides the weekly scoring bounded context module.
package leaderboard

import (
	apphttp "leaddesk_backend/internal/http"
	"leaddesk_backend/internal/leaderboard/handler"
	"leaddesk_backend/internal/leaderboard/repository"
	"leaddesk_backend/internal/leaderboard/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leaderboard bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the leaderboard module.
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{handler: handler.New(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leaderboard"
}

// RegisterRoutes mounts leaderboard routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/leaderboard", m.handler.Get)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
