// Package handler exposes the autoassign module over HTTP.
package handler

import (
	"context"
	"net/http"

	"leaddesk_backend/internal/autoassign/service"
	"leaddesk_backend/internal/autoassign/transport"
	"leaddesk_backend/platform/httpkit"
	"leaddesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Enqueuer hands a run off to the background worker queue.
type Enqueuer interface {
	EnqueueAutoAssignRun(ctx context.Context, triggeredBy string) error
}

type Handler struct {
	svc      *service.Service
	enqueuer Enqueuer
	validate *validator.Validator
}

func New(svc *service.Service, enqueuer Enqueuer, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, enqueuer: enqueuer, validate: validate}
}

func (h *Handler) ListSettings(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) SaveSettings(c *gin.Context) {
	var req transport.SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.Save(c.Request.Context(), req); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, gin.H{"success": true})
}

// TriggerRun executes a run on behalf of the external cron caller. The
// shared-secret guard runs before this handler. With ?async=true and a
// queue available the run is handed to the background worker instead of
// executing inline.
func (h *Handler) TriggerRun(c *gin.Context) {
	if h.enqueuer != nil && c.Query("async") == "true" {
		if err := h.enqueuer.EnqueueAutoAssignRun(c.Request.Context(), "cron"); err != nil {
			httpkit.Error(c, http.StatusInternalServerError, "failed to queue auto-assign run", nil)
			return
		}
		httpkit.JSON(c, http.StatusAccepted, gin.H{"success": true, "queued": true})
		return
	}

	resp, err := h.svc.Run(c.Request.Context(), "cron")
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}
