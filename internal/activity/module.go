// Package activity provides the activity tracking bounded context module.
// It records client heartbeats and subscribes to lead status changes for
// the audit trail.
package activity

import (
	"leaddesk_backend/internal/activity/handler"
	"leaddesk_backend/internal/activity/repository"
	"leaddesk_backend/internal/activity/service"
	"leaddesk_backend/internal/events"
	apphttp "leaddesk_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the activity bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the activity module and subscribes it to lead status
// change events.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	eventBus.Subscribe(events.LeadStatusChanged{}.EventName(), events.HandlerFunc(svc.HandleStatusChanged))

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "activity"
}

// RegisterRoutes mounts activity routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/activity/heartbeat", m.handler.Heartbeat)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
