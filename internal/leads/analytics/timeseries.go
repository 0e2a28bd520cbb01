package analytics

import (
	"sort"
	"time"

	"leadcrm_backend/internal/leads/domain"
)

// DailyWindow is the size of the daily time series in days.
const DailyWindow = 30

// MonthlyWindow caps the monthly time series at this many months.
const MonthlyWindow = 6

// Bucket is one point of a time series.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Daily buckets lead creations per calendar day over the trailing
// DailyWindow days ending today. The result always has exactly DailyWindow
// buckets in chronological order; days without leads carry a zero count.
func Daily(leads []domain.Lead, now time.Time) []Bucket {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	start := today.AddDate(0, 0, -(DailyWindow - 1))

	counts := make(map[string]int)
	for _, lead := range leads {
		counts[lead.CreatedAt.In(loc).Format("2006-01-02")]++
	}

	buckets := make([]Bucket, DailyWindow)
	for i := range buckets {
		label := start.AddDate(0, 0, i).Format("2006-01-02")
		buckets[i] = Bucket{Label: label, Count: counts[label]}
	}
	return buckets
}

// Monthly buckets lead creations per calendar month, keeping at most the
// MonthlyWindow most recent months that actually have leads, in
// chronological order. Months without leads are not emitted.
func Monthly(leads []domain.Lead) []Bucket {
	counts := make(map[string]int)
	for _, lead := range leads {
		counts[lead.CreatedAt.Format("2006-01")]++
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	if len(labels) > MonthlyWindow {
		labels = labels[len(labels)-MonthlyWindow:]
	}

	buckets := make([]Bucket, len(labels))
	for i, label := range labels {
		buckets[i] = Bucket{Label: label, Count: counts[label]}
	}
	return buckets
}
