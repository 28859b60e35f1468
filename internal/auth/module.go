// Package auth provides the authentication bounded context module.
package auth

import (
	"leaddesk_backend/internal/auth/handler"
	"leaddesk_backend/internal/auth/service"
	apphttp "leaddesk_backend/internal/http"
	"leaddesk_backend/platform/config"
	"leaddesk_backend/platform/logger"
	"leaddesk_backend/platform/validator"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the auth module. It reads accounts
// through the users module's repository.
func NewModule(users service.UserStore, cfg config.AuthServiceConfig, log *logger.Logger, val *validator.Validator) *Module {
	svc := service.New(users, cfg, log)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes mounts auth routes on the provided router context. Login
// and refresh sit behind the stricter per-IP auth rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/auth", ctx.AuthRateLimiter.RateLimit())
	group.POST("/login", m.handler.Login)
	group.POST("/refresh", m.handler.Refresh)

	ctx.Protected.PUT("/profile/password", m.handler.ChangePassword)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
