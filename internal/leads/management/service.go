// Package management owns the lead record itself: intake from the marketing
// site, operator edits, listing with filters, and deletion. Status and score
// changes live in their own services; this package never touches them beyond
// the defaults a new lead starts with.
package management

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leadcrm_backend/internal/events"
	"leadcrm_backend/internal/leads/domain"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/platform/apperr"
	"leadcrm_backend/platform/phone"
	"leadcrm_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Repository defines the data access interface needed by the management service.
type Repository interface {
	Create(ctx context.Context, params repository.CreateLeadParams) (domain.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	List(ctx context.Context, params repository.ListLeadsParams) ([]domain.Lead, error)
	Update(ctx context.Context, id uuid.UUID, params repository.UpdateLeadParams) (domain.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
	bus  events.Bus
}

func New(repo Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// CreateParams carries intake input. Only name and email are required; the
// marketing site's forms fill the rest per channel.
type CreateParams struct {
	Name    string
	Email   string
	Company *string
	Phone   *string
	Message *string
	Source  domain.Source
}

// Create captures a new lead. Missing source falls back to the default
// channel, phone numbers are normalized to E.164 when parseable, and every
// new lead starts cold at the top of the funnel.
func (s *Service) Create(ctx context.Context, params CreateParams) (domain.Lead, error) {
	params.Name = sanitize.Text(params.Name)
	params.Email = strings.TrimSpace(strings.ToLower(params.Email))
	params.Company = sanitize.TextPtr(params.Company)
	params.Message = sanitize.TextPtr(params.Message)

	if params.Name == "" {
		return domain.Lead{}, apperr.Validation("name is required")
	}
	if params.Email == "" {
		return domain.Lead{}, apperr.Validation("email is required")
	}

	if params.Source == "" {
		params.Source = domain.DefaultSource
	}
	if !domain.ValidSources[params.Source] {
		return domain.Lead{}, apperr.Validation(fmt.Sprintf("unknown source %q", params.Source))
	}

	if params.Phone != nil {
		normalized := phone.NormalizeE164(*params.Phone)
		params.Phone = &normalized
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		Name:    params.Name,
		Email:   params.Email,
		Company: params.Company,
		Phone:   params.Phone,
		Message: params.Message,
		Source:  params.Source,
		Score:   domain.MinScore,
		Status:  domain.StatusNew,
	})
	if err != nil {
		return domain.Lead{}, apperr.Dependency("create lead", err)
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		Source:    string(lead.Source),
	})

	return lead, nil
}

// Get loads a single lead.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, apperr.Dependency("load lead", err)
	}
	return lead, nil
}

// ListParams filters the lead listing.
type ListParams struct {
	Status *domain.Status
	Source *domain.Source
	Search string
	Limit  int
	Offset int
}

const defaultListLimit = 50

// List returns leads matching the filters, newest first. Limit defaults to
// defaultListLimit and is capped at 200.
func (s *Service) List(ctx context.Context, params ListParams) ([]domain.Lead, error) {
	if params.Status != nil && !domain.ValidStatuses[*params.Status] {
		return nil, apperr.Validation(fmt.Sprintf("unknown status %q", *params.Status))
	}
	if params.Source != nil && !domain.ValidSources[*params.Source] {
		return nil, apperr.Validation(fmt.Sprintf("unknown source %q", *params.Source))
	}

	if params.Limit <= 0 {
		params.Limit = defaultListLimit
	}
	if params.Limit > 200 {
		params.Limit = 200
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	leads, err := s.repo.List(ctx, repository.ListLeadsParams{
		Status: params.Status,
		Source: params.Source,
		Search: strings.TrimSpace(params.Search),
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return nil, apperr.Dependency("list leads", err)
	}
	return leads, nil
}

// UpdateParams patches descriptive fields. Nil fields are left untouched.
type UpdateParams struct {
	Name    *string
	Email   *string
	Company *string
	Phone   *string
	Message *string
	Source  *domain.Source
}

// Update patches the lead's descriptive fields and refreshes last_activity.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (domain.Lead, error) {
	if params.Name != nil {
		name := sanitize.Text(*params.Name)
		if name == "" {
			return domain.Lead{}, apperr.Validation("name must not be blank")
		}
		params.Name = &name
	}
	if params.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*params.Email))
		if email == "" {
			return domain.Lead{}, apperr.Validation("email must not be blank")
		}
		params.Email = &email
	}
	if params.Source != nil && !domain.ValidSources[*params.Source] {
		return domain.Lead{}, apperr.Validation(fmt.Sprintf("unknown source %q", *params.Source))
	}
	if params.Phone != nil {
		normalized := phone.NormalizeE164(*params.Phone)
		params.Phone = &normalized
	}
	params.Company = sanitize.TextPtr(params.Company)
	params.Message = sanitize.TextPtr(params.Message)

	lead, err := s.repo.Update(ctx, id, repository.UpdateLeadParams{
		Name:    params.Name,
		Email:   params.Email,
		Company: params.Company,
		Phone:   params.Phone,
		Message: params.Message,
		Source:  params.Source,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Lead{}, apperr.NotFound("lead not found")
		}
		return domain.Lead{}, apperr.Dependency("update lead", err)
	}
	return lead, nil
}

// Delete removes the lead; its notes cascade in the store.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("lead not found")
		}
		return apperr.Dependency("delete lead", err)
	}

	s.bus.Publish(ctx, events.LeadDeleted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
	})
	return nil
}
