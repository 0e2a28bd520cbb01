package analytics

import (
	"testing"
	"time"

	"leadcrm_backend/internal/leads/domain"
)

func leadCreatedAt(t time.Time) domain.Lead {
	return domain.Lead{CreatedAt: t}
}

func TestDailyAlwaysYieldsFullWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 4, 0, 0, time.UTC)

	for _, tc := range []struct {
		name  string
		leads []domain.Lead
	}{
		{"empty", nil},
		{"single lead", []domain.Lead{leadCreatedAt(now)}},
		{"sparse", []domain.Lead{
			leadCreatedAt(now),
			leadCreatedAt(now.AddDate(0, 0, -10)),
			leadCreatedAt(now.AddDate(0, 0, -29)),
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buckets := Daily(tc.leads, now)
			if len(buckets) != DailyWindow {
				t.Fatalf("got %d buckets, want %d", len(buckets), DailyWindow)
			}
			if buckets[0].Label != "2026-07-30" {
				t.Errorf("first bucket = %s, want 2026-07-30", buckets[0].Label)
			}
			if buckets[DailyWindow-1].Label != "2026-08-28" {
				t.Errorf("last bucket = %s, want 2026-08-28", buckets[DailyWindow-1].Label)
			}
		})
	}
}

func TestDailyCountsAndZeroFill(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	leads := []domain.Lead{
		leadCreatedAt(time.Date(2026, 8, 28, 0, 0, 1, 0, time.UTC)),
		leadCreatedAt(time.Date(2026, 8, 28, 23, 59, 59, 0, time.UTC)),
		leadCreatedAt(time.Date(2026, 8, 18, 12, 0, 0, 0, time.UTC)),
		// Outside the window: must not appear anywhere.
		leadCreatedAt(time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)),
	}

	buckets := Daily(leads, now)

	counts := make(map[string]int)
	total := 0
	for _, b := range buckets {
		counts[b.Label] = b.Count
		total += b.Count
	}

	if counts["2026-08-28"] != 2 {
		t.Errorf("today = %d, want 2", counts["2026-08-28"])
	}
	if counts["2026-08-18"] != 1 {
		t.Errorf("2026-08-18 = %d, want 1", counts["2026-08-18"])
	}
	if total != 3 {
		t.Errorf("window total = %d, want 3", total)
	}
}

func TestMonthlyKeepsMostRecentMonthsWithData(t *testing.T) {
	var leads []domain.Lead
	// Eight consecutive months with one lead each; only the latest six
	// survive.
	for m := 1; m <= 8; m++ {
		leads = append(leads, leadCreatedAt(time.Date(2026, time.Month(m), 15, 0, 0, 0, 0, time.UTC)))
	}

	buckets := Monthly(leads)

	if len(buckets) != MonthlyWindow {
		t.Fatalf("got %d buckets, want %d", len(buckets), MonthlyWindow)
	}
	if buckets[0].Label != "2026-03" {
		t.Errorf("first bucket = %s, want 2026-03", buckets[0].Label)
	}
	if buckets[len(buckets)-1].Label != "2026-08" {
		t.Errorf("last bucket = %s, want 2026-08", buckets[len(buckets)-1].Label)
	}
}

func TestMonthlySkipsEmptyMonths(t *testing.T) {
	leads := []domain.Lead{
		leadCreatedAt(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)),
		leadCreatedAt(time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)),
		leadCreatedAt(time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)),
	}

	buckets := Monthly(leads)

	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].Label != "2026-02" || buckets[0].Count != 2 {
		t.Errorf("first bucket = %+v, want 2026-02 count 2", buckets[0])
	}
	if buckets[1].Label != "2026-08" || buckets[1].Count != 1 {
		t.Errorf("second bucket = %+v, want 2026-08 count 1", buckets[1])
	}
}

func TestMonthlyEmpty(t *testing.T) {
	if buckets := Monthly(nil); len(buckets) != 0 {
		t.Errorf("expected no buckets, got %d", len(buckets))
	}
}
