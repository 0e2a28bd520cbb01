package handler

import (
	"net/http"

	"leadcrm_backend/internal/leads/domain"
	"leadcrm_backend/internal/leads/management"
	"leadcrm_backend/internal/leads/transport"
	"leadcrm_backend/platform/httpkit"
	"leadcrm_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// PublicHandler handles the unauthenticated intake endpoint the marketing
// site posts to: contact forms, ebook downloads, trial signups and the rest.
type PublicHandler struct {
	management *management.Service
	val        *validator.Validator
}

// NewPublicHandler creates the public intake handler.
func NewPublicHandler(mgmt *management.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{management: mgmt, val: val}
}

// RegisterRoutes registers public intake routes under /public/leads.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Intake)
}

// Intake captures a lead from a marketing-site form. The response
// deliberately carries no internal state beyond the id: visitors only need
// an acknowledgement.
func (h *PublicHandler) Intake(c *gin.Context) {
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

	httpkit.Created(c, gin.H{"id": lead.ID})
}
