// Package lifecycle enforces lead status transitions and emits transition
// events. The funnel is deliberately not graph-constrained: operators may
// move a lead between any known statuses, and the funnel aggregator - not
// this state machine - interprets progress. The one optional constraint is
// the terminal lock, which freezes closed and lost leads.
package lifecycle

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

// Repository defines the data access interface needed by the lifecycle service.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Lead, error)
}

// Service is the lead status state machine.
type Service struct {
	repo         Repository
	bus          events.Bus
	terminalLock bool
}

// New creates a new lifecycle service. When terminalLock is true, leads in a
// terminal status (closed, lost) reject further transitions.
func New(repo Repository, bus events.Bus, terminalLock bool) *Service {
	return &Service{repo: repo, bus: bus, terminalLock: terminalLock}
}

// Transition moves the lead to newStatus, refreshes its last_activity, and
// publishes a LeadStatusChanged event. Transitioning to the current status is
// a no-op: no write, no event.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, newStatus domain.Status) (domain.Lead, error) {
	if !domain.ValidStatuses[newStatus] {
		return domain.Lead{}, apperr.Validation(fmt.Sprintf("unknown status %q", newStatus))
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, apperr.Dependency("load lead", err)
	}

	if current.Status == newStatus {
		return current, nil
	}

	if s.terminalLock && current.Status.IsTerminal() {
		return domain.Lead{}, apperr.Validation(fmt.Sprintf("lead is %s and can no longer change status", current.Status))
	}

	updated, err := s.repo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, apperr.Dependency("update status", err)
	}

	// Notification dispatch is best effort and decoupled: the subscriber
	// decides per target status whether an email goes out, and its failure
	// never rolls back the status write.
	s.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    updated.ID,
		Name:      updated.Name,
		Email:     updated.Email,
		OldStatus: string(current.Status),
		NewStatus: string(updated.Status),
	})

	return updated, nil
}
