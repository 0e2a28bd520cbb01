package settings

import (
	"net/http"

	"leadcrm_backend/platform/httpkit"
	"leadcrm_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler exposes the settings categories over HTTP.
type Handler struct {
	service *Service
	val     *validator.Validator
}

// NewHandler creates the settings handler.
func NewHandler(service *Service, val *validator.Validator) *Handler {
	return &Handler{service: service, val: val}
}

// RegisterRoutes adds settings routes to the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/company-profile", h.GetCompanyProfile)
	rg.PUT("/company-profile", h.SaveCompanyProfile)
	rg.GET("/email", h.GetEmailSettings)
	rg.PUT("/email", h.SaveEmailSettings)
	rg.GET("/notifications", h.GetNotificationPreferences)
	rg.PUT("/notifications", h.SaveNotificationPreferences)
}

type companyProfileRequest struct {
	CompanyName  string `json:"companyName" validate:"max=200"`
	WebsiteURL   string `json:"websiteUrl" validate:"omitempty,url,max=500"`
	SupportEmail string `json:"supportEmail" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"max=30"`
	Address      string `json:"address" validate:"max=500"`
}

type emailSettingsRequest struct {
	SenderName     string `json:"senderName" validate:"max=200"`
	SenderAddress  string `json:"senderAddress" validate:"omitempty,email"`
	ReplyToAddress string `json:"replyToAddress" validate:"omitempty,email"`
	Signature      string `json:"signature" validate:"max=2000"`
}

type notificationPreferencesRequest struct {
	NotifyOnLeadCreated  bool   `json:"notifyOnLeadCreated"`
	NotifyOnStatusChange bool   `json:"notifyOnStatusChange"`
	DailyDigest          bool   `json:"dailyDigest"`
	DigestRecipient      string `json:"digestRecipient" validate:"omitempty,email"`
}

func (h *Handler) GetCompanyProfile(c *gin.Context) {
	profile, err := h.service.CompanyProfile(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, profile)
}

func (h *Handler) SaveCompanyProfile(c *gin.Context) {
	var req companyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	profile, err := h.service.SaveCompanyProfile(c.Request.Context(), CompanyProfile{
		CompanyName:  req.CompanyName,
		WebsiteURL:   req.WebsiteURL,
		SupportEmail: req.SupportEmail,
		Phone:        req.Phone,
		Address:      req.Address,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, profile)
}

func (h *Handler) GetEmailSettings(c *gin.Context) {
	settings, err := h.service.EmailSettings(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, settings)
}

func (h *Handler) SaveEmailSettings(c *gin.Context) {
	var req emailSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	settings, err := h.service.SaveEmailSettings(c.Request.Context(), EmailSettings{
		SenderName:     req.SenderName,
		SenderAddress:  req.SenderAddress,
		ReplyToAddress: req.ReplyToAddress,
		Signature:      req.Signature,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, settings)
}

func (h *Handler) GetNotificationPreferences(c *gin.Context) {
	prefs, err := h.service.NotificationPreferences(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, prefs)
}

func (h *Handler) SaveNotificationPreferences(c *gin.Context) {
	var req notificationPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	prefs, err := h.service.SaveNotificationPreferences(c.Request.Context(), NotificationPreferences{
		NotifyOnLeadCreated:  req.NotifyOnLeadCreated,
		NotifyOnStatusChange: req.NotifyOnStatusChange,
		DailyDigest:          req.DailyDigest,
		DigestRecipient:      req.DigestRecipient,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, prefs)
}
