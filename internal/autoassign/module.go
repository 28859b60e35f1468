// Package autoassign provides the auto-assignment bounded context module:
// per-user distribution settings and the scheduled run that drains the
// unassigned pool into daily quotas.
package autoassign

import (
	"leaddesk_backend/internal/autoassign/handler"
	"leaddesk_backend/internal/autoassign/repository"
	"leaddesk_backend/internal/autoassign/service"
	"leaddesk_backend/internal/events"
	apphttp "leaddesk_backend/internal/http"
	leadsrepo "leaddesk_backend/internal/leads/repository"
	"leaddesk_backend/platform/logger"
	"leaddesk_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the autoassign bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the autoassign module. enqueuer may be
// nil, in which case the cron trigger always runs inline.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, log *logger.Logger, enqueuer handler.Enqueuer) *Module {
	settingsRepo := repository.New(pool)
	claimer := leadsrepo.New(pool)

	svc := service.New(settingsRepo, claimer, eventBus, log)

	return &Module{
		handler: handler.New(svc, enqueuer, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "autoassign"
}

// Service returns the runner for the background scheduler.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts autoassign routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	settings := ctx.Admin.Group("/settings/auto-assign")
	settings.GET("", m.handler.ListSettings)
	settings.POST("", m.handler.SaveSettings)

	// External cron entry point, guarded by the shared secret.
	ctx.V1.GET("/cron/assign", ctx.CronGuard, m.handler.TriggerRun)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
