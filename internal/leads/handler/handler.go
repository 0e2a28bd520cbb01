// Package handler exposes the leads API over HTTP.
package handler

import (
	"net/http"
	"strconv"

	"leadcrm_backend/internal/leads/domain"
	"leadcrm_backend/internal/leads/lifecycle"
	"leadcrm_backend/internal/leads/management"
	"leadcrm_backend/internal/leads/scoring"
	"leadcrm_backend/internal/leads/transport"
	"leadcrm_backend/platform/httpkit"
	"leadcrm_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for lead management.
type Handler struct {
	management *management.Service
	lifecycle  *lifecycle.Service
	scoring    *scoring.Service
	notes      *NotesHandler
	val        *validator.Validator
}

// New creates the leads handler.
func New(mgmt *management.Service, lc *lifecycle.Service, sc *scoring.Service, notes *NotesHandler, val *validator.Validator) *Handler {
	return &Handler{
		management: mgmt,
		lifecycle:  lc,
		scoring:    sc,
		notes:      notes,
		val:        val,
	}
}

// RegisterRoutes adds lead routes to the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.CreateLead)
	rg.GET("", h.ListLeads)
	rg.GET("/top", h.TopLeads)
	rg.GET("/:id", h.GetLead)
	rg.PATCH("/:id", h.UpdateLead)
	rg.DELETE("/:id", h.DeleteLead)
	rg.PUT("/:id/status", h.UpdateStatus)
	rg.PUT("/:id/score", h.UpdateScore)

	notesGroup := rg.Group("/:id/notes")
	h.notes.RegisterRoutes(notesGroup)
}

// CreateLead captures a lead entered by an operator.
func (h *Handler) CreateLead(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.management.Create(c.Request.Context(), management.CreateParams{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Message: req.Message,
		Source:  domain.Source(req.Source),
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.LeadFromDomain(lead))
}

// ListLeads returns leads matching the query filters, newest first.
func (h *Handler) ListLeads(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	params := management.ListParams{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Status != "" {
		status := domain.Status(req.Status)
		params.Status = &status
	}
	if req.Source != "" {
		source := domain.Source(req.Source)
		params.Source = &source
	}

	leads, err := h.management.List(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.LeadsFromDomain(leads))
}

// TopLeads returns the hottest leads by score.
func (h *Handler) TopLeads(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		limit = parsed
	}

	leads, err := h.scoring.TopLeads(c.Request.Context(), limit)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.LeadsFromDomain(leads))
}

// GetLead returns a single lead.
func (h *Handler) GetLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.management.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.LeadFromDomain(lead))
}

// UpdateLead patches the lead's descriptive fields.
func (h *Handler) UpdateLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	params := management.UpdateParams{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if req.Source != nil {
		source := domain.Source(*req.Source)
		params.Source = &source
	}

	lead, err := h.management.Update(c.Request.Context(), id, params)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.LeadFromDomain(lead))
}

// DeleteLead removes a lead and its notes.
func (h *Handler) DeleteLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if httpkit.HandleError(c, h.management.Delete(c.Request.Context(), id)) {
		return
	}

	httpkit.NoContent(c)
}

// UpdateStatus moves the lead through the funnel.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.lifecycle.Transition(c.Request.Context(), id, domain.Status(req.Status))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.LeadFromDomain(lead))
}

// UpdateScore replaces the lead's temperature score.
func (h *Handler) UpdateScore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateLeadScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.scoring.UpdateScore(c.Request.Context(), id, *req.Score)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.LeadFromDomain(lead))
}
