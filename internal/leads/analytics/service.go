package analytics

import (
	"context"
	"errors"
	"time"

	"leadcrm_backend/internal/leads/domain"
	"leadcrm_backend/internal/leads/notes"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/platform/apperr"
)

// Cache keys for the memoized dashboard views.
const (
	cacheKeyDashboard = "analytics:dashboard"
)

// Repository defines the data access interface needed by the analytics service.
type Repository interface {
	ListAll(ctx context.Context) ([]domain.Lead, error)
	ListOpenFollowUps(ctx context.Context) ([]domain.Note, error)
	GetGoal(ctx context.Context, month, year int) (domain.SalesGoal, error)
	UpsertGoal(ctx context.Context, params repository.UpsertSalesGoalParams) (domain.SalesGoal, error)
	ListGoals(ctx context.Context, year int) ([]domain.SalesGoal, error)
}

// FollowUpSummary is the dashboard rollup of open reminders.
type FollowUpSummary struct {
	Open     int `json:"open"`
	Overdue  int `json:"overdue"`
	DueToday int `json:"dueToday"`
}

// Dashboard is the aggregated read model served to the overview page. All of
// it derives from one lead snapshot, so the pieces are mutually consistent.
type Dashboard struct {
	Funnel    FunnelReport    `json:"funnel"`
	Segments  []SourceSegment `json:"segments"`
	Daily     []Bucket        `json:"daily"`
	Monthly   []Bucket        `json:"monthly"`
	Goal      *GoalProgress   `json:"goal,omitempty"`
	FollowUps FollowUpSummary `json:"followUps"`
}

// Service computes dashboard aggregations over the full lead collection.
type Service struct {
	repo  Repository
	cache *Cache
	now   func() time.Time
}

// New creates the analytics service. cache may be nil to disable memoization;
// now is injectable for tests and defaults to time.Now.
func New(repo Repository, cache *Cache, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, cache: cache, now: now}
}

// Dashboard assembles the full overview: funnel, segmentation, both time
// series, current-month goal progress, and the follow-up rollup. Results are
// cached for a short TTL; the aggregators are deterministic over the lead
// snapshot, so a cache hit is indistinguishable from recomputation.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var cached Dashboard
	if s.cache.Get(ctx, cacheKeyDashboard, &cached) {
		return cached, nil
	}

	leads, err := s.repo.ListAll(ctx)
	if err != nil {
		return Dashboard{}, apperr.Dependency("list leads", err)
	}

	now := s.now()

	dashboard := Dashboard{
		Funnel:   Funnel(leads),
		Segments: Segments(leads),
		Daily:    Daily(leads, now),
		Monthly:  Monthly(leads),
	}

	goal, err := s.repo.GetGoal(ctx, int(now.Month()), now.Year())
	switch {
	case err == nil:
		progress := Progress(goal, leads)
		dashboard.Goal = &progress
	case errors.Is(err, repository.ErrNotFound):
		// No goal set for this month; the dashboard simply omits it.
	default:
		return Dashboard{}, apperr.Dependency("load sales goal", err)
	}

	followUps, err := s.repo.ListOpenFollowUps(ctx)
	if err != nil {
		return Dashboard{}, apperr.Dependency("list follow-ups", err)
	}
	dashboard.FollowUps.Open = len(followUps)
	for _, note := range followUps {
		if notes.IsOverdue(note, now) {
			dashboard.FollowUps.Overdue++
		}
		if notes.IsDueToday(note, now) {
			dashboard.FollowUps.DueToday++
		}
	}

	s.cache.Set(ctx, cacheKeyDashboard, dashboard)
	return dashboard, nil
}

// FunnelReport serves the funnel on its own, bypassing the dashboard cache.
func (s *Service) FunnelReport(ctx context.Context) (FunnelReport, error) {
	leads, err := s.repo.ListAll(ctx)
	if err != nil {
		return FunnelReport{}, apperr.Dependency("list leads", err)
	}
	return Funnel(leads), nil
}

// SegmentReport serves source segmentation on its own.
func (s *Service) SegmentReport(ctx context.Context) ([]SourceSegment, error) {
	leads, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Dependency("list leads", err)
	}
	return Segments(leads), nil
}

// SetGoal creates or replaces the sales goal for a month and drops the cached
// dashboard so goal progress reflects the new target immediately.
func (s *Service) SetGoal(ctx context.Context, params repository.UpsertSalesGoalParams) (domain.SalesGoal, error) {
	if params.Month < 1 || params.Month > 12 {
		return domain.SalesGoal{}, apperr.Validation("month must be between 1 and 12")
	}
	if params.Year < 2000 || params.Year > 2100 {
		return domain.SalesGoal{}, apperr.Validation("year is out of range")
	}
	if params.LeadsGoal < 0 || params.ConversionsGoal < 0 || params.RevenueGoal < 0 {
		return domain.SalesGoal{}, apperr.Validation("goal values must not be negative")
	}

	goal, err := s.repo.UpsertGoal(ctx, params)
	if err != nil {
		return domain.SalesGoal{}, apperr.Dependency("save sales goal", err)
	}

	s.cache.Invalidate(ctx, cacheKeyDashboard)
	return goal, nil
}

// Goals lists the goals recorded for a year, January first.
func (s *Service) Goals(ctx context.Context, year int) ([]domain.SalesGoal, error) {
	goals, err := s.repo.ListGoals(ctx, year)
	if err != nil {
		return nil, apperr.Dependency("list sales goals", err)
	}
	return goals, nil
}

// InvalidateDashboard drops the memoized dashboard. Lead mutations call this
// so the next read recomputes against fresh data.
func (s *Service) InvalidateDashboard(ctx context.Context) {
	s.cache.Invalidate(ctx, cacheKeyDashboard)
}
