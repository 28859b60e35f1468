// Package leads provides the lead distribution bounded context module.
// It wires the repository, services and handlers and registers both the
// user-facing lead routes and the admin distribution surface.
package leads

import (
	"leaddesk_backend/internal/events"
	apphttp "leaddesk_backend/internal/http"
	"leaddesk_backend/internal/leads/handler"
	"leaddesk_backend/internal/leads/notes"
	"leaddesk_backend/internal/leads/repository"
	"leaddesk_backend/internal/leads/service"
	"leaddesk_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	notes   *notes.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator) *Module {
	repo := repository.New(pool)

	svc := service.New(repo, eventBus)
	notesSvc := notes.New(repo)

	return &Module{
		handler: handler.New(svc, notesSvc, val),
		service: svc,
		notes:   notesSvc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead distribution service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	leadsGroup := ctx.Protected.Group("/leads")
	leadsGroup.GET("", m.handler.List)
	leadsGroup.PATCH("/:id/status", m.handler.UpdateStatus)
	leadsGroup.PATCH("/:id/client-status", m.handler.SetActiveClient)
	leadsGroup.GET("/:id/notes", m.handler.ListNotes)
	leadsGroup.POST("/:id/notes", m.handler.AddNote)

	adminLeads := ctx.Admin.Group("/leads")
	adminLeads.POST("/upload", m.handler.Upload)
	adminLeads.POST("/assign", m.handler.Assign)
	adminLeads.GET("/balance", m.handler.Balance)
	adminLeads.GET("/search", m.handler.Search)

	ctx.Admin.GET("/tracking", m.handler.Tracking)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
