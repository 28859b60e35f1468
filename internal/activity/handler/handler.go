// Package handler exposes the activity module over HTTP.
package handler

import (
	"leaddesk_backend/internal/activity/service"
	"leaddesk_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Heartbeat records one minute of presence for the caller.
func (h *Handler) Heartbeat(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	if err := h.svc.RecordHeartbeat(c.Request.Context(), id.UserID()); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, gin.H{"success": true})
}
