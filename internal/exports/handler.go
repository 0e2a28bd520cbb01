// Package exports streams lead data out of the CRM as CSV downloads.
package exports

import (
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"leadcrm_backend/internal/leads/domain"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/internal/leads/scoring"
	"leadcrm_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = time.RFC3339
)

// LeadSource supplies the lead rows for an export.
type LeadSource interface {
	List(ctx context.Context, params repository.ListLeadsParams) ([]domain.Lead, error)
}

// Handler serves CSV export downloads.
type Handler struct {
	leads LeadSource
}

// NewHandler creates a new export handler.
func NewHandler(leads LeadSource) *Handler {
	return &Handler{leads: leads}
}

// HandleExportLeads streams the lead collection as a CSV attachment,
// optionally filtered by status and source.
func (h *Handler) HandleExportLeads(c *gin.Context) {
	params, ok := parseFilters(c)
	if !ok {
		return
	}

	leads, err := h.leads.List(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}

	filename := "leads-" + time.Now().Format(dateLayout) + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(csvHeaders()); err != nil {
		return
	}
	for _, lead := range leads {
		if err := writer.Write(leadRow(lead)); err != nil {
			return
		}
	}
	writer.Flush()
}

func parseFilters(c *gin.Context) (repository.ListLeadsParams, bool) {
	var params repository.ListLeadsParams

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := domain.Status(raw)
		if !domain.ValidStatuses[status] {
			httpkit.Error(c, http.StatusBadRequest, "unknown status filter", nil)
			return params, false
		}
		params.Status = &status
	}

	if raw := strings.TrimSpace(c.Query("source")); raw != "" {
		source := domain.Source(raw)
		if !domain.ValidSources[source] {
			httpkit.Error(c, http.StatusBadRequest, "unknown source filter", nil)
			return params, false
		}
		params.Source = &source
	}

	return params, true
}

func csvHeaders() []string {
	return []string{
		"ID",
		"Name",
		"Email",
		"Company",
		"Phone",
		"Source",
		"Status",
		"Score",
		"Band",
		"Created At",
		"Last Activity",
	}
}

func leadRow(lead domain.Lead) []string {
	return []string{
		lead.ID.String(),
		lead.Name,
		lead.Email,
		optionalString(lead.Company),
		optionalString(lead.Phone),
		string(lead.Source),
		string(lead.Status),
		strconv.Itoa(lead.Score),
		string(scoring.Classify(lead.Score)),
		lead.CreatedAt.Format(datetimeLayout),
		lead.LastActivity.Format(datetimeLayout),
	}
}

func optionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
