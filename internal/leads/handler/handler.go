// Package handler exposes the leads module over HTTP.
package handler

import (
	"net/http"
	"time"

	"leaddesk_backend/internal/leads/notes"
	"leaddesk_backend/internal/leads/service"
	"leaddesk_backend/internal/leads/transport"
	"leaddesk_backend/platform/httpkit"
	"leaddesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc      *service.Service
	notes    *notes.Service
	validate *validator.Validator
}

func New(svc *service.Service, notesSvc *notes.Service, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, notes: notesSvc, validate: validate}
}

// List returns the caller's leads for a day, every lead when all=true.
func (h *Handler) List(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid date", nil)
			return
		}
		date = &parsed
	}
	all := c.Query("all") == "true"

	resp, err := h.svc.List(c.Request.Context(), actorFrom(id), date, all)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	resp, err := h.svc.UpdateStatus(c.Request.Context(), leadID, actorFrom(id), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) SetActiveClient(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.SetActiveClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.SetActiveClient(c.Request.Context(), leadID, actorFrom(id), *req.IsActiveClient)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Upload creates a batch of leads, optionally pre-assigned round-robin.
func (h *Handler) Upload(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.UploadLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	count, err := h.svc.Upload(c.Request.Context(), id.UserID(), req.Leads, req.UserIDs)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.UploadLeadsResponse{Success: true, Count: count})
}

// Assign claims pool leads per user. Partial success is reported, not failed.
func (h *Handler) Assign(c *gin.Context) {
	var req transport.AssignLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	total, errs := h.svc.ManualAssign(c.Request.Context(), req.Assignments)
	httpkit.OK(c, transport.AssignLeadsResponse{Success: true, Count: total, Errors: errs})
}

func (h *Handler) Balance(c *gin.Context) {
	count, err := h.svc.PoolBalance(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.PoolBalanceResponse{Count: count})
}

func (h *Handler) Search(c *gin.Context) {
	resp, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Tracking lists every lead that has entered the post-sale pipeline.
func (h *Handler) Tracking(c *gin.Context) {
	resp, err := h.svc.Tracked(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func actorFrom(id httpkit.Identity) service.Actor {
	return service.Actor{ID: id.UserID(), Admin: id.HasRole("admin")}
}
