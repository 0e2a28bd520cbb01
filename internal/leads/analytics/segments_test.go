package analytics

import (
	"testing"

	"leadcrm_backend/internal/leads/domain"
)

func TestSegmentsGroupsAndSorts(t *testing.T) {
	leads := []domain.Lead{
		{Source: domain.SourceWebsite, Status: domain.StatusNew},
		{Source: domain.SourceWebsite, Status: domain.StatusClosed},
		{Source: domain.SourceWebsite, Status: domain.StatusLost},
		{Source: domain.SourceEbookDownload, Status: domain.StatusClosed},
		{Source: domain.SourceEbookDownload, Status: domain.StatusClosed},
		{Source: domain.SourceDemoRequest, Status: domain.StatusContacted},
	}

	segments := Segments(leads)

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	if segments[0].Source != domain.SourceWebsite || segments[0].Count != 3 {
		t.Errorf("top segment = %s (%d), want website (3)", segments[0].Source, segments[0].Count)
	}
	if segments[0].Percentage != 50 {
		t.Errorf("website percentage = %d, want 50", segments[0].Percentage)
	}
	if segments[0].ConversionRate != 33 {
		t.Errorf("website conversion = %d, want 33", segments[0].ConversionRate)
	}

	if segments[1].Source != domain.SourceEbookDownload {
		t.Errorf("second segment = %s, want ebook_download", segments[1].Source)
	}
	if segments[1].ConversionRate != 100 {
		t.Errorf("ebook conversion = %d, want 100", segments[1].ConversionRate)
	}
}

func TestSegmentsTieBreaksBySourceName(t *testing.T) {
	leads := []domain.Lead{
		{Source: domain.SourceNewsletter, Status: domain.StatusNew},
		{Source: domain.SourceContactForm, Status: domain.StatusNew},
	}

	segments := Segments(leads)

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Source != domain.SourceContactForm {
		t.Errorf("first segment = %s, want contact_form on equal counts", segments[0].Source)
	}
}

func TestSegmentsUnknownSourceFallsBackToDefault(t *testing.T) {
	leads := []domain.Lead{
		{Source: domain.Source("billboard"), Status: domain.StatusNew},
		{Source: "", Status: domain.StatusNew},
		{Source: domain.SourceWebsite, Status: domain.StatusNew},
	}

	segments := Segments(leads)

	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Source != domain.SourceWebsite || segments[0].Count != 3 {
		t.Errorf("segment = %s (%d), want website (3)", segments[0].Source, segments[0].Count)
	}
}

func TestSegmentsPercentagesCoverWholePopulation(t *testing.T) {
	leads := []domain.Lead{
		{Source: domain.SourceWebsite},
		{Source: domain.SourceContactForm},
		{Source: domain.SourceTrialSignup},
	}

	sum := 0
	for _, segment := range Segments(leads) {
		sum += segment.Percentage
	}

	// Three thirds round to 33 each; rounding drift stays within one
	// point per segment.
	if sum < 97 || sum > 103 {
		t.Errorf("percentage sum = %d, want ~100", sum)
	}
}

func TestSegmentsEmpty(t *testing.T) {
	if segments := Segments(nil); len(segments) != 0 {
		t.Errorf("expected no segments, got %d", len(segments))
	}
}
