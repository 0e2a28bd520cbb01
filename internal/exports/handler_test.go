package exports

import (
	"testing"
	"time"

	"leadcrm_backend/internal/leads/domain"

	"github.com/google/uuid"
)

func TestLeadRowFormatsAllColumns(t *testing.T) {
	company := "Acme"
	created := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	lead := domain.Lead{
		ID:           uuid.New(),
		Name:         "Jane Prospect",
		Email:        "jane@example.com",
		Company:      &company,
		Source:       domain.SourceDemoRequest,
		Score:        85,
		Status:       domain.StatusNegotiation,
		CreatedAt:    created,
		LastActivity: created,
	}

	row := leadRow(lead)

	if len(row) != len(csvHeaders()) {
		t.Fatalf("row has %d columns, headers have %d", len(row), len(csvHeaders()))
	}
	if row[1] != "Jane Prospect" || row[2] != "jane@example.com" {
		t.Errorf("unexpected identity columns: %v", row[:3])
	}
	if row[3] != "Acme" {
		t.Errorf("company = %q, want Acme", row[3])
	}
	if row[4] != "" {
		t.Errorf("phone = %q, want empty for nil", row[4])
	}
	if row[7] != "85" || row[8] != "hot" {
		t.Errorf("score columns = %q/%q, want 85/hot", row[7], row[8])
	}
	if row[9] != "2026-08-01T10:00:00Z" {
		t.Errorf("created at = %q", row[9])
	}
}
