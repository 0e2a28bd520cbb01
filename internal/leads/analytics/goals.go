package analytics

import (
	"leadcrm_backend/internal/leads/domain"
)

// GoalProgress measures actuals against a monthly sales goal. Actuals are
// taken from the leads created in the goal's month; a conversion is such a
// lead that has since closed.
type GoalProgress struct {
	Month             int   `json:"month"`
	Year              int   `json:"year"`
	LeadsGoal         int   `json:"leadsGoal"`
	LeadsActual       int   `json:"leadsActual"`
	LeadsPct          int   `json:"leadsPct"`
	ConversionsGoal   int   `json:"conversionsGoal"`
	ConversionsActual int   `json:"conversionsActual"`
	ConversionsPct    int   `json:"conversionsPct"`
	RevenueGoal       int64 `json:"revenueGoal"`
}

// Progress computes goal attainment for the goal's month. Percentages are
// rounded and may exceed 100 when a goal is overachieved; a zero goal yields
// a zero percentage regardless of actuals.
func Progress(goal domain.SalesGoal, leads []domain.Lead) GoalProgress {
	progress := GoalProgress{
		Month:           goal.Month,
		Year:            goal.Year,
		LeadsGoal:       goal.LeadsGoal,
		ConversionsGoal: goal.ConversionsGoal,
		RevenueGoal:     goal.RevenueGoal,
	}

	for _, lead := range leads {
		if lead.CreatedAt.Year() != goal.Year || int(lead.CreatedAt.Month()) != goal.Month {
			continue
		}
		progress.LeadsActual++
		if lead.Status == domain.StatusClosed {
			progress.ConversionsActual++
		}
	}

	progress.LeadsPct = roundPct(progress.LeadsActual, progress.LeadsGoal)
	progress.ConversionsPct = roundPct(progress.ConversionsActual, progress.ConversionsGoal)
	return progress
}
