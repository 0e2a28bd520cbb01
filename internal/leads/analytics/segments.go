package analytics

import (
	"sort"

	"leadcrm_backend/internal/leads/domain"
)

// SourceSegment is the per-source slice of the lead population.
type SourceSegment struct {
	Source         domain.Source `json:"source"`
	Count          int           `json:"count"`
	Percentage     int           `json:"percentage"`
	ConversionRate int           `json:"conversionRate"`
}

// Segments groups leads by acquisition source. Leads with an unrecognized or
// empty source fall back to the default source. Segments are ordered by count
// descending, source name ascending on ties.
func Segments(leads []domain.Lead) []SourceSegment {
	counts := make(map[domain.Source]int)
	closed := make(map[domain.Source]int)

	for _, lead := range leads {
		source := lead.Source
		if !domain.ValidSources[source] {
			source = domain.SourceWebsite
		}
		counts[source]++
		if lead.Status == domain.StatusClosed {
			closed[source]++
		}
	}

	total := len(leads)
	segments := make([]SourceSegment, 0, len(counts))
	for source, count := range counts {
		segments = append(segments, SourceSegment{
			Source:         source,
			Count:          count,
			Percentage:     roundPct(count, total),
			ConversionRate: roundPct(closed[source], count),
		})
	}

	sort.Slice(segments, func(i, j int) bool {
		if segments[i].Count != segments[j].Count {
			return segments[i].Count > segments[j].Count
		}
		return segments[i].Source < segments[j].Source
	})

	return segments
}
