package campaigns

import (
	"encoding/base64"
	"net/http"

	"leadcrm_backend/internal/email"
	"leadcrm_backend/internal/leads/domain"
	"leadcrm_backend/platform/httpkit"
	"leadcrm_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler exposes campaign dispatch over HTTP.
type Handler struct {
	service *Service
	val     *validator.Validator
}

// NewHandler creates the campaigns handler.
func NewHandler(service *Service, val *validator.Validator) *Handler {
	return &Handler{service: service, val: val}
}

// RegisterRoutes adds campaign routes to the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/email", h.SendCampaign)
}

// AttachmentRequest carries one base64-encoded campaign attachment.
type AttachmentRequest struct {
	FileName string `json:"fileName" validate:"required,max=255"`
	MIMEType string `json:"mimeType" validate:"required,max=100"`
	Content  string `json:"content" validate:"required"`
}

// SendCampaignRequest describes a campaign dispatch.
type SendCampaignRequest struct {
	Subject     string              `json:"subject" validate:"required,min=1,max=300"`
	HTMLContent string              `json:"htmlContent" validate:"required,min=1"`
	Status      string              `json:"status,omitempty" validate:"omitempty,oneof=new contacted negotiation closed lost"`
	Source      string              `json:"source,omitempty" validate:"omitempty,oneof=website contact_form ebook_download trial_signup newsletter demo_request"`
	Attachments []AttachmentRequest `json:"attachments,omitempty" validate:"omitempty,max=5,dive"`
}

// SendCampaign dispatches a bulk email to the filtered lead slice and
// returns the per-recipient tally.
func (h *Handler) SendCampaign(c *gin.Context) {
	var req SendCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	params := SendParams{
		Subject:     req.Subject,
		HTMLContent: req.HTMLContent,
	}
	if req.Status != "" {
		status := domain.Status(req.Status)
		params.Status = &status
	}
	if req.Source != "" {
		source := domain.Source(req.Source)
		params.Source = &source
	}

	for _, att := range req.Attachments {
		content, err := base64.StdEncoding.DecodeString(att.Content)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "attachment content must be base64", nil)
			return
		}
		params.Attachments = append(params.Attachments, email.Attachment{
			FileName: att.FileName,
			MIMEType: att.MIMEType,
			Content:  content,
		})
	}

	result, err := h.service.Send(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
