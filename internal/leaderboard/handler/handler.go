// Package handler exposes the leaderboard module over HTTP.
package handler

import (
	"net/http"
	"time"

	"leaddesk_backend/internal/leaderboard/service"
	"leaddesk_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Get returns the board for the week containing ?date= (today when absent).
func (h *Handler) Get(c *gin.Context) {
	ref := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid date", nil)
			return
		}
		// Noon keeps the reference clear of the 09:00 boundary.
		ref = parsed.Add(12 * time.Hour)
	}

	resp, err := h.svc.Compute(c.Request.Context(), ref)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}
