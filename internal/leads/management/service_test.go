package management

import (
	"context"
	"testing"

	"leadcrm_backend/internal/events"
	"leadcrm_backend/internal/leads/domain"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeRepo struct {
	created  *repository.CreateLeadParams
	updated  *repository.UpdateLeadParams
	deleted  *uuid.UUID
	missing  bool
	listArgs *repository.ListLeadsParams
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateLeadParams) (domain.Lead, error) {
	f.created = &params
	return domain.Lead{
		ID:     uuid.New(),
		Name:   params.Name,
		Email:  params.Email,
		Phone:  params.Phone,
		Source: params.Source,
		Score:  params.Score,
		Status: params.Status,
	}, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Lead, error) {
	if f.missing {
		return domain.Lead{}, repository.ErrNotFound
	}
	return domain.Lead{ID: id}, nil
}

func (f *fakeRepo) List(_ context.Context, params repository.ListLeadsParams) ([]domain.Lead, error) {
	f.listArgs = &params
	return nil, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, params repository.UpdateLeadParams) (domain.Lead, error) {
	if f.missing {
		return domain.Lead{}, repository.ErrNotFound
	}
	f.updated = &params
	return domain.Lead{ID: id}, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.missing {
		return repository.ErrNotFound
	}
	f.deleted = &id
	return nil
}

type captureBus struct {
	published []events.Event
}

func (b *captureBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}
func (b *captureBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}
func (b *captureBus) Subscribe(string, events.Handler) {}

func strPtr(s string) *string { return &s }

func TestCreateAppliesDefaults(t *testing.T) {
	repo := &fakeRepo{}
	bus := &captureBus{}
	svc := New(repo, bus)

	lead, err := svc.Create(context.Background(), CreateParams{
		Name:  "Ada Lovelace",
		Email: "Ada@Example.COM",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if lead.Source != domain.SourceWebsite {
		t.Errorf("source = %s, want website", lead.Source)
	}
	if lead.Status != domain.StatusNew {
		t.Errorf("status = %s, want new", lead.Status)
	}
	if lead.Score != 0 {
		t.Errorf("score = %d, want 0", lead.Score)
	}
	if lead.Email != "ada@example.com" {
		t.Errorf("email = %s, want lowercased", lead.Email)
	}

	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	if _, ok := bus.published[0].(events.LeadCreated); !ok {
		t.Errorf("published %T, want LeadCreated", bus.published[0])
	}
}

func TestCreateNormalizesPhone(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, &captureBus{})

	lead, err := svc.Create(context.Background(), CreateParams{
		Name:  "Ada",
		Email: "ada@example.com",
		Phone: strPtr("(212) 555-0123"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if lead.Phone == nil || *lead.Phone != "+12125550123" {
		t.Errorf("phone = %v, want +12125550123", lead.Phone)
	}
}

func TestCreateValidation(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, &captureBus{})

	tests := []struct {
		name   string
		params CreateParams
	}{
		{"missing name", CreateParams{Email: "a@b.com"}},
		{"blank name", CreateParams{Name: "   ", Email: "a@b.com"}},
		{"missing email", CreateParams{Name: "Ada"}},
		{"unknown source", CreateParams{Name: "Ada", Email: "a@b.com", Source: "carrier_pigeon"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.params)
			if apperr.GetKind(err) != apperr.KindValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
	if repo.created != nil {
		t.Error("invalid lead must not be persisted")
	}
}

func TestListClampsPagination(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, &captureBus{})

	if _, err := svc.List(context.Background(), ListParams{Limit: 10000, Offset: -5}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.listArgs.Limit != 200 {
		t.Errorf("limit = %d, want 200", repo.listArgs.Limit)
	}
	if repo.listArgs.Offset != 0 {
		t.Errorf("offset = %d, want 0", repo.listArgs.Offset)
	}

	if _, err := svc.List(context.Background(), ListParams{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.listArgs.Limit != defaultListLimit {
		t.Errorf("default limit = %d, want %d", repo.listArgs.Limit, defaultListLimit)
	}
}

func TestListRejectsUnknownFilters(t *testing.T) {
	svc := New(&fakeRepo{}, &captureBus{})

	badStatus := domain.Status("qualified")
	if _, err := svc.List(context.Background(), ListParams{Status: &badStatus}); apperr.GetKind(err) != apperr.KindValidation {
		t.Errorf("expected validation error for status filter, got %v", err)
	}

	badSource := domain.Source("fax")
	if _, err := svc.List(context.Background(), ListParams{Source: &badSource}); apperr.GetKind(err) != apperr.KindValidation {
		t.Errorf("expected validation error for source filter, got %v", err)
	}
}

func TestUpdateRejectsBlankPatches(t *testing.T) {
	svc := New(&fakeRepo{}, &captureBus{})

	if _, err := svc.Update(context.Background(), uuid.New(), UpdateParams{Name: strPtr("  ")}); apperr.GetKind(err) != apperr.KindValidation {
		t.Errorf("expected validation error for blank name, got %v", err)
	}
	if _, err := svc.Update(context.Background(), uuid.New(), UpdateParams{Email: strPtr("")}); apperr.GetKind(err) != apperr.KindValidation {
		t.Errorf("expected validation error for blank email, got %v", err)
	}
}

func TestDeletePublishesEvent(t *testing.T) {
	repo := &fakeRepo{}
	bus := &captureBus{}
	svc := New(repo, bus)

	id := uuid.New()
	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if repo.deleted == nil || *repo.deleted != id {
		t.Error("expected repository delete")
	}
	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	event, ok := bus.published[0].(events.LeadDeleted)
	if !ok || event.LeadID != id {
		t.Errorf("published %+v, want LeadDeleted for %s", bus.published[0], id)
	}
}

func TestDeleteUnknownLead(t *testing.T) {
	repo := &fakeRepo{missing: true}
	bus := &captureBus{}
	svc := New(repo, bus)

	if err := svc.Delete(context.Background(), uuid.New()); apperr.GetKind(err) != apperr.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
	if len(bus.published) != 0 {
		t.Error("no event must be published for a failed delete")
	}
}
