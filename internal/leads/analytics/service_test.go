package analytics

import (
	"context"
	"testing"
	"time"

	"leadcrm_backend/internal/leads/domain"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/platform/apperr"
)

type fakeRepo struct {
	leads     []domain.Lead
	followUps []domain.Note
	goal      *domain.SalesGoal
	goals     []domain.SalesGoal

	listCalls int
	upserted  *repository.UpsertSalesGoalParams
}

func (f *fakeRepo) ListAll(_ context.Context) ([]domain.Lead, error) {
	f.listCalls++
	return f.leads, nil
}

func (f *fakeRepo) ListOpenFollowUps(_ context.Context) ([]domain.Note, error) {
	return f.followUps, nil
}

func (f *fakeRepo) GetGoal(_ context.Context, month, year int) (domain.SalesGoal, error) {
	if f.goal == nil || f.goal.Month != month || f.goal.Year != year {
		return domain.SalesGoal{}, repository.ErrNotFound
	}
	return *f.goal, nil
}

func (f *fakeRepo) UpsertGoal(_ context.Context, params repository.UpsertSalesGoalParams) (domain.SalesGoal, error) {
	f.upserted = &params
	return domain.SalesGoal{
		Month:           params.Month,
		Year:            params.Year,
		LeadsGoal:       params.LeadsGoal,
		ConversionsGoal: params.ConversionsGoal,
		RevenueGoal:     params.RevenueGoal,
	}, nil
}

func (f *fakeRepo) ListGoals(_ context.Context, _ int) ([]domain.SalesGoal, error) {
	return f.goals, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func TestDashboardAssemblesAllSections(t *testing.T) {
	now := fixedNow()
	repo := &fakeRepo{
		leads: []domain.Lead{
			{Status: domain.StatusNew, Source: domain.SourceWebsite, CreatedAt: now},
			{Status: domain.StatusContacted, Source: domain.SourceWebsite, CreatedAt: now.AddDate(0, 0, -1)},
			{Status: domain.StatusClosed, Source: domain.SourceDemoRequest, CreatedAt: now.AddDate(0, 0, -2)},
		},
		followUps: []domain.Note{
			{FollowUpDate: datePtr(now.AddDate(0, 0, -3))}, // overdue
			{FollowUpDate: datePtr(now)},                   // due today
			{FollowUpDate: datePtr(now.AddDate(0, 0, 5))},  // upcoming
		},
		goal: &domain.SalesGoal{Month: 8, Year: 2026, LeadsGoal: 6},
	}

	svc := New(repo, nil, fixedNow)

	dashboard, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if dashboard.Funnel.TotalLeads != 3 {
		t.Errorf("funnel total = %d, want 3", dashboard.Funnel.TotalLeads)
	}
	if len(dashboard.Segments) != 2 {
		t.Errorf("segments = %d, want 2", len(dashboard.Segments))
	}
	if len(dashboard.Daily) != DailyWindow {
		t.Errorf("daily buckets = %d, want %d", len(dashboard.Daily), DailyWindow)
	}
	if dashboard.Goal == nil {
		t.Fatal("expected goal progress for the current month")
	}
	if dashboard.Goal.LeadsActual != 3 || dashboard.Goal.LeadsPct != 50 {
		t.Errorf("goal progress = %d leads (%d%%), want 3 (50%%)", dashboard.Goal.LeadsActual, dashboard.Goal.LeadsPct)
	}
	if dashboard.FollowUps.Open != 3 || dashboard.FollowUps.Overdue != 1 || dashboard.FollowUps.DueToday != 1 {
		t.Errorf("follow-ups = %+v, want open 3 overdue 1 dueToday 1", dashboard.FollowUps)
	}
}

func TestDashboardOmitsGoalWhenNoneSet(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil, fixedNow)

	dashboard, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dashboard.Goal != nil {
		t.Errorf("expected no goal section, got %+v", dashboard.Goal)
	}
}

func TestSetGoalValidation(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil, fixedNow)

	tests := []struct {
		name   string
		params repository.UpsertSalesGoalParams
	}{
		{"month too low", repository.UpsertSalesGoalParams{Month: 0, Year: 2026}},
		{"month too high", repository.UpsertSalesGoalParams{Month: 13, Year: 2026}},
		{"year out of range", repository.UpsertSalesGoalParams{Month: 5, Year: 1999}},
		{"negative target", repository.UpsertSalesGoalParams{Month: 5, Year: 2026, LeadsGoal: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SetGoal(context.Background(), tc.params)
			if apperr.GetKind(err) != apperr.KindValidation {
				t.Errorf("expected validation error, got %v", err)
			}
			if repo.upserted != nil {
				t.Error("invalid goal must not reach the repository")
			}
		})
	}
}

func TestSetGoalPersists(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil, fixedNow)

	goal, err := svc.SetGoal(context.Background(), repository.UpsertSalesGoalParams{
		Month: 9, Year: 2026, LeadsGoal: 20, ConversionsGoal: 5, RevenueGoal: 100000,
	})
	if err != nil {
		t.Fatalf("SetGoal: %v", err)
	}
	if repo.upserted == nil {
		t.Fatal("expected goal to be persisted")
	}
	if goal.Month != 9 || goal.LeadsGoal != 20 {
		t.Errorf("goal = %+v, want month 9 leads 20", goal)
	}
}
