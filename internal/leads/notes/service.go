// Package notes manages the activity log attached to a lead: free-form
// notes, typed interactions, and follow-up reminders with a due date.
package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leadcrm_backend/internal/events"
	"leadcrm_backend/internal/leads/domain"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/platform/apperr"
	"leadcrm_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Repository defines the data access interface needed by the notes service.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	CreateNote(ctx context.Context, params repository.CreateNoteParams) (domain.Note, error)
	GetNote(ctx context.Context, id uuid.UUID) (domain.Note, error)
	ListNotes(ctx context.Context, leadID uuid.UUID) ([]domain.Note, error)
	ListOpenFollowUps(ctx context.Context) ([]domain.Note, error)
	ToggleNoteCompleted(ctx context.Context, id uuid.UUID) (domain.Note, error)
	DeleteNote(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
	bus  events.Bus
}

func New(repo Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// AddParams carries the input for attaching a note to a lead.
type AddParams struct {
	LeadID       uuid.UUID
	Content      string
	NoteType     domain.NoteType
	FollowUpDate *time.Time
}

// Add attaches a note to the lead, refreshing the lead's last_activity. When
// a follow-up date is present a FollowUpScheduled event is published so the
// reminder scheduler can pick it up.
func (s *Service) Add(ctx context.Context, params AddParams) (domain.Note, error) {
	params.Content = sanitize.Text(params.Content)
	if params.Content == "" {
		return domain.Note{}, apperr.Validation("note content is required")
	}
	if params.NoteType == "" {
		params.NoteType = domain.NoteTypeNote
	}
	if !domain.ValidNoteTypes[params.NoteType] {
		return domain.Note{}, apperr.Validation(fmt.Sprintf("unknown note type %q", params.NoteType))
	}

	if _, err := s.repo.GetByID(ctx, params.LeadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Note{}, apperr.NotFound("lead not found")
		}
		return domain.Note{}, apperr.Dependency("load lead", err)
	}

	note, err := s.repo.CreateNote(ctx, repository.CreateNoteParams{
		LeadID:       params.LeadID,
		Content:      params.Content,
		NoteType:     params.NoteType,
		FollowUpDate: params.FollowUpDate,
	})
	if err != nil {
		return domain.Note{}, apperr.Dependency("create note", err)
	}

	if note.FollowUpDate != nil {
		s.bus.Publish(ctx, events.FollowUpScheduled{
			BaseEvent: events.NewBaseEvent(),
			NoteID:    note.ID,
			LeadID:    note.LeadID,
			DueDate:   *note.FollowUpDate,
		})
	}

	return note, nil
}

// List returns the lead's notes, newest first.
func (s *Service) List(ctx context.Context, leadID uuid.UUID) ([]domain.Note, error) {
	if _, err := s.repo.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("lead not found")
		}
		return nil, apperr.Dependency("load lead", err)
	}

	notes, err := s.repo.ListNotes(ctx, leadID)
	if err != nil {
		return nil, apperr.Dependency("list notes", err)
	}
	return notes, nil
}

// OpenFollowUps returns every incomplete follow-up across all leads,
// due-soonest first.
func (s *Service) OpenFollowUps(ctx context.Context) ([]domain.Note, error) {
	notes, err := s.repo.ListOpenFollowUps(ctx)
	if err != nil {
		return nil, apperr.Dependency("list follow-ups", err)
	}
	return notes, nil
}

// ToggleCompleted flips the note between open and done. The follow-up date
// stays on the note so reopening restores the original reminder.
func (s *Service) ToggleCompleted(ctx context.Context, id uuid.UUID) (domain.Note, error) {
	note, err := s.repo.ToggleNoteCompleted(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Note{}, apperr.NotFound("note not found")
		}
		return domain.Note{}, apperr.Dependency("toggle note", err)
	}
	return note, nil
}

// Delete removes the note.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteNote(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("note not found")
		}
		return apperr.Dependency("delete note", err)
	}
	return nil
}

// IsOverdue reports whether the note's follow-up date falls strictly before
// today. Comparison is by calendar day, not instant: a follow-up due today
// is not overdue regardless of the hour, and completed notes never are.
func IsOverdue(note domain.Note, now time.Time) bool {
	if note.Completed || note.FollowUpDate == nil {
		return false
	}
	due := dateOnly(*note.FollowUpDate)
	return due.Before(dateOnly(now))
}

// IsDueToday reports whether the note's follow-up date is today's calendar
// day and the note is still open.
func IsDueToday(note domain.Note, now time.Time) bool {
	if note.Completed || note.FollowUpDate == nil {
		return false
	}
	return dateOnly(*note.FollowUpDate).Equal(dateOnly(now))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
