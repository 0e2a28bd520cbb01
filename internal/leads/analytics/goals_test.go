package analytics

import (
	"testing"
	"time"

	"leadcrm_backend/internal/leads/domain"
)

func TestProgressCountsOnlyGoalMonth(t *testing.T) {
	goal := domain.SalesGoal{Month: 8, Year: 2026, LeadsGoal: 10, ConversionsGoal: 4}
	leads := []domain.Lead{
		{CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Status: domain.StatusClosed},
		{CreatedAt: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), Status: domain.StatusNew},
		{CreatedAt: time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC), Status: domain.StatusClosed},
		// Different month and different year: excluded.
		{CreatedAt: time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC), Status: domain.StatusClosed},
		{CreatedAt: time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC), Status: domain.StatusClosed},
	}

	progress := Progress(goal, leads)

	if progress.LeadsActual != 3 {
		t.Errorf("LeadsActual = %d, want 3", progress.LeadsActual)
	}
	if progress.LeadsPct != 30 {
		t.Errorf("LeadsPct = %d, want 30", progress.LeadsPct)
	}
	if progress.ConversionsActual != 2 {
		t.Errorf("ConversionsActual = %d, want 2", progress.ConversionsActual)
	}
	if progress.ConversionsPct != 50 {
		t.Errorf("ConversionsPct = %d, want 50", progress.ConversionsPct)
	}
}

func TestProgressOverachievementExceedsHundred(t *testing.T) {
	goal := domain.SalesGoal{Month: 8, Year: 2026, LeadsGoal: 2}
	leads := []domain.Lead{
		{CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)},
	}

	progress := Progress(goal, leads)

	if progress.LeadsPct != 150 {
		t.Errorf("LeadsPct = %d, want 150", progress.LeadsPct)
	}
}

func TestProgressZeroGoalYieldsZeroPct(t *testing.T) {
	goal := domain.SalesGoal{Month: 8, Year: 2026}
	leads := []domain.Lead{
		{CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Status: domain.StatusClosed},
	}

	progress := Progress(goal, leads)

	if progress.LeadsPct != 0 || progress.ConversionsPct != 0 {
		t.Errorf("pct = %d/%d, want 0/0 on zero goals", progress.LeadsPct, progress.ConversionsPct)
	}
	if progress.LeadsActual != 1 {
		t.Errorf("LeadsActual = %d, want 1", progress.LeadsActual)
	}
}
