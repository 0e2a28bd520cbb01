package analytics

import (
	"testing"

	"leadcrm_backend/internal/leads/domain"
)

func leadsWithStatuses(statuses ...domain.Status) []domain.Lead {
	leads := make([]domain.Lead, len(statuses))
	for i, status := range statuses {
		leads[i] = domain.Lead{Status: status}
	}
	return leads
}

func TestFunnelCumulativeCounts(t *testing.T) {
	// One lead per status plus a lost one. A lead at a later stage counts
	// toward every earlier stage; lost counts toward none.
	leads := leadsWithStatuses(
		domain.StatusNew,
		domain.StatusContacted,
		domain.StatusClosed,
		domain.StatusClosed,
		domain.StatusLost,
	)

	report := Funnel(leads)

	wantCounts := map[domain.Status]int{
		domain.StatusNew:         4,
		domain.StatusContacted:   3,
		domain.StatusNegotiation: 2,
		domain.StatusClosed:      2,
	}
	if len(report.Stages) != len(domain.FunnelStages) {
		t.Fatalf("expected %d stages, got %d", len(domain.FunnelStages), len(report.Stages))
	}
	for _, stage := range report.Stages {
		if stage.Count != wantCounts[stage.Stage] {
			t.Errorf("stage %s: count = %d, want %d", stage.Stage, stage.Count, wantCounts[stage.Stage])
		}
	}

	if report.TotalLeads != 5 {
		t.Errorf("TotalLeads = %d, want 5", report.TotalLeads)
	}
	if report.ConversionRate != 40 {
		t.Errorf("ConversionRate = %d, want 40", report.ConversionRate)
	}
}

func TestFunnelDropoffs(t *testing.T) {
	leads := leadsWithStatuses(
		domain.StatusNew,
		domain.StatusContacted,
		domain.StatusClosed,
		domain.StatusClosed,
		domain.StatusLost,
	)

	report := Funnel(leads)

	// Stage 0 is referenced against all 5 leads: 1 lost of 5 is 20%.
	// contacted loses 1 of 4 (25%), negotiation 1 of 3 (33%), closed 0 of 2.
	wantDropoffs := []int{20, 25, 33, 0}
	for i, stage := range report.Stages {
		if stage.Dropoff != wantDropoffs[i] {
			t.Errorf("stage %s: dropoff = %d, want %d", stage.Stage, stage.Dropoff, wantDropoffs[i])
		}
	}

	if report.WorstStep == nil || *report.WorstStep != domain.StatusNegotiation {
		t.Errorf("WorstStep = %v, want negotiation", report.WorstStep)
	}
	if report.BestStep == nil || *report.BestStep != domain.StatusClosed {
		t.Errorf("BestStep = %v, want closed", report.BestStep)
	}
}

func TestFunnelBestStepTieGoesToEarliestStage(t *testing.T) {
	// Every lead closed: all non-initial stages retain 100%.
	report := Funnel(leadsWithStatuses(domain.StatusClosed, domain.StatusClosed))

	if report.BestStep == nil || *report.BestStep != domain.StatusContacted {
		t.Errorf("BestStep = %v, want contacted", report.BestStep)
	}
	if report.WorstStep != nil {
		t.Errorf("WorstStep = %v, want absent when nothing drops off", *report.WorstStep)
	}
}

func TestFunnelEmptyCollection(t *testing.T) {
	report := Funnel(nil)

	if report.TotalLeads != 0 {
		t.Errorf("TotalLeads = %d, want 0", report.TotalLeads)
	}
	if report.ConversionRate != 0 {
		t.Errorf("ConversionRate = %d, want 0", report.ConversionRate)
	}
	for _, stage := range report.Stages {
		if stage.Count != 0 || stage.Dropoff != 0 {
			t.Errorf("stage %s: count = %d dropoff = %d, want zeros", stage.Stage, stage.Count, stage.Dropoff)
		}
	}
	if report.BestStep != nil || report.WorstStep != nil {
		t.Error("expected no best/worst step on an empty collection")
	}
}

func TestFunnelAllLost(t *testing.T) {
	report := Funnel(leadsWithStatuses(domain.StatusLost, domain.StatusLost, domain.StatusLost))

	if got := report.Stages[0].Count; got != 0 {
		t.Errorf("new count = %d, want 0", got)
	}
	// Everything exited at the first step.
	if got := report.Stages[0].Dropoff; got != 100 {
		t.Errorf("new dropoff = %d, want 100", got)
	}
	if report.ConversionRate != 0 {
		t.Errorf("ConversionRate = %d, want 0", report.ConversionRate)
	}
}

func TestFunnelIdempotent(t *testing.T) {
	leads := leadsWithStatuses(
		domain.StatusNew, domain.StatusContacted, domain.StatusNegotiation,
		domain.StatusClosed, domain.StatusLost, domain.StatusContacted,
	)

	first := Funnel(leads)
	second := Funnel(leads)

	if len(first.Stages) != len(second.Stages) {
		t.Fatal("stage counts differ between runs")
	}
	for i := range first.Stages {
		if first.Stages[i] != second.Stages[i] {
			t.Errorf("stage %d differs between runs: %+v vs %+v", i, first.Stages[i], second.Stages[i])
		}
	}
	if first.TotalLeads != second.TotalLeads || first.ConversionRate != second.ConversionRate {
		t.Error("totals differ between runs")
	}
}
