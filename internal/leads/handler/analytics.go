package handler

import (
	"net/http"
	"strconv"
	"time"

	"leadcrm_backend/internal/leads/analytics"
	"leadcrm_backend/internal/leads/notes"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/internal/leads/transport"
	"leadcrm_backend/platform/httpkit"
	"leadcrm_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the dashboard aggregations and sales goals.
type AnalyticsHandler struct {
	analytics *analytics.Service
	notes     *notes.Service
	val       *validator.Validator
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(svc *analytics.Service, notesSvc *notes.Service, val *validator.Validator) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: svc, notes: notesSvc, val: val}
}

// RegisterRoutes adds analytics routes to the given router group.
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/funnel", h.Funnel)
	rg.GET("/segments", h.Segments)
	rg.GET("/followups", h.OpenFollowUps)
	rg.POST("/goals", h.SetGoal)
	rg.GET("/goals", h.ListGoals)
}

// Dashboard returns the full overview in one response.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.analytics.Dashboard(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, dashboard)
}

// Funnel returns the cumulative funnel on its own.
func (h *AnalyticsHandler) Funnel(c *gin.Context) {
	report, err := h.analytics.FunnelReport(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, report)
}

// Segments returns the source segmentation on its own.
func (h *AnalyticsHandler) Segments(c *gin.Context) {
	segments, err := h.analytics.SegmentReport(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, segments)
}

// OpenFollowUps returns every open follow-up across all leads, due-soonest
// first, with overdue flags resolved against today.
func (h *AnalyticsHandler) OpenFollowUps(c *gin.Context) {
	list, err := h.notes.OpenFollowUps(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	now := time.Now()
	out := make([]transport.NoteResponse, len(list))
	for i, note := range list {
		out[i] = transport.NoteFromDomain(note, notes.IsOverdue(note, now))
	}
	httpkit.OK(c, out)
}

// SetGoal creates or replaces the sales goal for a month.
func (h *AnalyticsHandler) SetGoal(c *gin.Context) {
	var req transport.UpsertGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	goal, err := h.analytics.SetGoal(c.Request.Context(), repository.UpsertSalesGoalParams{
		Month:           req.Month,
		Year:            req.Year,
		LeadsGoal:       req.LeadsGoal,
		ConversionsGoal: req.ConversionsGoal,
		RevenueGoal:     req.RevenueGoal,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.GoalFromDomain(goal))
}

// ListGoals returns the goals recorded for a year, defaulting to the current one.
func (h *AnalyticsHandler) ListGoals(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		year = parsed
	}

	goals, err := h.analytics.Goals(c.Request.Context(), year)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.SalesGoalResponse, len(goals))
	for i, goal := range goals {
		out[i] = transport.GoalFromDomain(goal)
	}
	httpkit.OK(c, out)
}
