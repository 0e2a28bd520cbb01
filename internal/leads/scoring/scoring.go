// Package scoring computes and interprets the 0-100 lead temperature score.
// This is a vertically sliced feature package: classification is a pure
// function, score updates go through the store.
package scoring

import (
	"context"
	"errors"
	"fmt"

	"leadcrm_backend/internal/events"
	"leadcrm_backend/internal/leads/domain"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/platform/apperr"

	"github.com/google/uuid"
)

// Band is the score-based engagement tier.
type Band string

const (
	BandHot  Band = "hot"
	BandWarm Band = "warm"
	BandCold Band = "cold"
)

// Band thresholds. A score at the threshold belongs to the higher band.
const (
	HotThreshold  = 80
	WarmThreshold = 50
)

// Classify maps a score to its engagement band.
func Classify(score int) Band {
	switch {
	case score >= HotThreshold:
		return BandHot
	case score >= WarmThreshold:
		return BandWarm
	default:
		return BandCold
	}
}

// Repository defines the data access interface needed by the scoring service.
// This is a consumer-driven interface - only what scoring needs.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	UpdateScore(ctx context.Context, id uuid.UUID, score int) (domain.Lead, error)
	TopByScore(ctx context.Context, minScore, limit int) ([]domain.Lead, error)
}

// Service handles score mutations and score-based queries.
type Service struct {
	repo Repository
	bus  events.Bus
}

// New creates a new scoring service.
func New(repo Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// UpdateScore replaces the lead's score with newScore. The score is an
// operator-assigned value; there is no automatic decay or recompute.
func (s *Service) UpdateScore(ctx context.Context, id uuid.UUID, newScore int) (domain.Lead, error) {
	if newScore < domain.MinScore || newScore > domain.MaxScore {
		return domain.Lead{}, apperr.Validation(fmt.Sprintf("score must be between %d and %d", domain.MinScore, domain.MaxScore))
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, apperr.Dependency("load lead", err)
	}

	updated, err := s.repo.UpdateScore(ctx, id, newScore)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, apperr.Dependency("update score", err)
	}

	s.bus.Publish(ctx, events.LeadScoreUpdated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    updated.ID,
		OldScore:  current.Score,
		NewScore:  updated.Score,
	})

	return updated, nil
}

// TopLeads returns up to limit hot leads (score >= 80), highest score first.
func (s *Service) TopLeads(ctx context.Context, limit int) ([]domain.Lead, error) {
	if limit <= 0 {
		limit = 10
	}

	leads, err := s.repo.TopByScore(ctx, HotThreshold, limit)
	if err != nil {
		return nil, apperr.Dependency("list top leads", err)
	}

	return leads, nil
}
