// Package users provides the account management bounded context module.
package users

import (
	apphttp "leaddesk_backend/internal/http"
	"leaddesk_backend/internal/users/handler"
	"leaddesk_backend/internal/users/repository"
	"leaddesk_backend/internal/users/service"
	"leaddesk_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the users bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

// NewModule creates and initializes the users module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{
		handler: handler.New(svc, val),
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "users"
}

// Repository exposes account lookups for the auth module.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts users routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Admin.Group("/users")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
