// Package analytics turns the lead collection into the dashboard's read-side
// views: funnel conversion, source segmentation, time series, and goal
// progress. Every computation here is a pure function over an in-memory
// snapshot - no side effects, no errors on empty input, identical output for
// identical input.
package analytics

import (
	"math"

	"leadcrm_backend/internal/leads/domain"
)

// FunnelStage is one step of the cumulative funnel.
type FunnelStage struct {
	Stage   domain.Status `json:"stage"`
	Count   int           `json:"count"`
	Dropoff int           `json:"dropoff"`
}

// FunnelReport is the cumulative funnel over the canonical stage order.
// Lost leads are a side exit and are excluded from every stage count.
type FunnelReport struct {
	Stages         []FunnelStage  `json:"stages"`
	TotalLeads     int            `json:"totalLeads"`
	ConversionRate int            `json:"conversionRate"`
	BestStep       *domain.Status `json:"bestStep,omitempty"`
	WorstStep      *domain.Status `json:"worstStep,omitempty"`
}

// Funnel computes the cumulative funnel: stage i counts every lead currently
// at stage i or any later canonical stage. Stage 0's drop-off is referenced
// against the total lead count (including lost).
func Funnel(leads []domain.Lead) FunnelReport {
	stages := make([]FunnelStage, len(domain.FunnelStages))

	for i, stage := range domain.FunnelStages {
		count := 0
		for _, lead := range leads {
			if idx := lead.Status.StageIndex(); idx >= i {
				count++
			}
		}
		stages[i] = FunnelStage{Stage: stage, Count: count}
	}

	total := len(leads)
	for i := range stages {
		prev := total
		if i > 0 {
			prev = stages[i-1].Count
		}
		if prev > 0 {
			stages[i].Dropoff = roundPct(prev-stages[i].Count, prev)
		}
	}

	report := FunnelReport{
		Stages:     stages,
		TotalLeads: total,
	}

	closed := stages[len(stages)-1].Count
	report.ConversionRate = roundPct(closed, total)

	if total == 0 {
		return report
	}

	// Best and worst steps only consider non-initial stages; the initial
	// stage has no predecessor to retain from.
	bestRetention := -1
	worstDropoff := 0
	for i := 1; i < len(stages); i++ {
		retention := 100 - stages[i].Dropoff
		if retention > bestRetention {
			bestRetention = retention
			stage := stages[i].Stage
			report.BestStep = &stage
		}
		if stages[i].Dropoff > worstDropoff {
			worstDropoff = stages[i].Dropoff
			stage := stages[i].Stage
			report.WorstStep = &stage
		}
	}

	return report
}

func roundPct(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
