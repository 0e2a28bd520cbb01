package lifecycle

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
	lead     domain.Lead
	notFound bool
	writes   int
}

func (f *fakeRepo) GetByID(_ context.Context, _ uuid.UUID) (domain.Lead, error) {
	if f.notFound {
		return domain.Lead{}, repository.ErrNotFound
	}
	return f.lead, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, _ uuid.UUID, status domain.Status) (domain.Lead, error) {
	f.writes++
	lead := f.lead
	lead.Status = status
	return lead, nil
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

func TestTransitionAllowsAnyDirection(t *testing.T) {
	// The funnel is operator-driven: backward and skip transitions are legal.
	tests := []struct {
		from domain.Status
		to   domain.Status
	}{
		{domain.StatusNew, domain.StatusContacted},
		{domain.StatusNew, domain.StatusClosed},
		{domain.StatusNegotiation, domain.StatusNew},
		{domain.StatusContacted, domain.StatusLost},
		{domain.StatusLost, domain.StatusContacted},
		{domain.StatusClosed, domain.StatusNegotiation},
	}

	for _, tc := range tests {
		repo := &fakeRepo{lead: domain.Lead{ID: uuid.New(), Status: tc.from}}
		bus := &captureBus{}
		svc := New(repo, bus, false)

		updated, err := svc.Transition(context.Background(), repo.lead.ID, tc.to)
		if err != nil {
			t.Fatalf("Transition(%s -> %s): %v", tc.from, tc.to, err)
		}
		if updated.Status != tc.to {
			t.Errorf("Transition(%s -> %s) status = %s", tc.from, tc.to, updated.Status)
		}

		if len(bus.published) != 1 {
			t.Fatalf("Transition(%s -> %s) published %d events, want 1", tc.from, tc.to, len(bus.published))
		}
		event, ok := bus.published[0].(events.LeadStatusChanged)
		if !ok {
			t.Fatalf("published event has type %T", bus.published[0])
		}
		if event.OldStatus != string(tc.from) || event.NewStatus != string(tc.to) {
			t.Errorf("event = %s -> %s, want %s -> %s", event.OldStatus, event.NewStatus, tc.from, tc.to)
		}
	}
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	repo := &fakeRepo{lead: domain.Lead{ID: uuid.New(), Status: domain.StatusNew}}
	svc := New(repo, &captureBus{}, false)

	_, err := svc.Transition(context.Background(), repo.lead.ID, domain.Status("qualified"))
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
	if repo.writes != 0 {
		t.Error("unknown status must not reach the store")
	}
}

func TestTransitionSameStatusIsNoOp(t *testing.T) {
	repo := &fakeRepo{lead: domain.Lead{ID: uuid.New(), Status: domain.StatusContacted}}
	bus := &captureBus{}
	svc := New(repo, bus, false)

	updated, err := svc.Transition(context.Background(), repo.lead.ID, domain.StatusContacted)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if updated.Status != domain.StatusContacted {
		t.Errorf("status = %s", updated.Status)
	}
	if repo.writes != 0 {
		t.Error("no-op transition must not write")
	}
	if len(bus.published) != 0 {
		t.Error("no-op transition must not publish")
	}
}

func TestTransitionTerminalLock(t *testing.T) {
	for _, from := range []domain.Status{domain.StatusClosed, domain.StatusLost} {
		repo := &fakeRepo{lead: domain.Lead{ID: uuid.New(), Status: from}}
		svc := New(repo, &captureBus{}, true)

		_, err := svc.Transition(context.Background(), repo.lead.ID, domain.StatusNew)
		if !apperr.Is(err, apperr.KindValidation) {
			t.Errorf("Transition(from %s) error = %v, want validation error", from, err)
		}
		if repo.writes != 0 {
			t.Errorf("Transition(from %s) must not write under terminal lock", from)
		}
	}

	// Non-terminal leads still move freely under the lock.
	repo := &fakeRepo{lead: domain.Lead{ID: uuid.New(), Status: domain.StatusNegotiation}}
	svc := New(repo, &captureBus{}, true)
	if _, err := svc.Transition(context.Background(), repo.lead.ID, domain.StatusClosed); err != nil {
		t.Fatalf("Transition(negotiation -> closed): %v", err)
	}
}

func TestTransitionUnknownLead(t *testing.T) {
	svc := New(&fakeRepo{notFound: true}, &captureBus{}, false)

	_, err := svc.Transition(context.Background(), uuid.New(), domain.StatusContacted)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}
