package settings

import (
	"context"
	"errors"
	"testing"

	"leadcrm_backend/platform/apperr"
)

type fakeStore struct {
	profile CompanyProfile
	email   EmailSettings
	prefs   NotificationPreferences
	fail    bool
}

var errStore = errors.New("connection refused")

func (f *fakeStore) GetCompanyProfile(context.Context) (CompanyProfile, error) {
	if f.fail {
		return CompanyProfile{}, errStore
	}
	return f.profile, nil
}

func (f *fakeStore) SaveCompanyProfile(_ context.Context, p CompanyProfile) (CompanyProfile, error) {
	if f.fail {
		return CompanyProfile{}, errStore
	}
	f.profile = p
	return p, nil
}

func (f *fakeStore) GetEmailSettings(context.Context) (EmailSettings, error) {
	if f.fail {
		return EmailSettings{}, errStore
	}
	return f.email, nil
}

func (f *fakeStore) SaveEmailSettings(_ context.Context, s EmailSettings) (EmailSettings, error) {
	if f.fail {
		return EmailSettings{}, errStore
	}
	f.email = s
	return s, nil
}

func (f *fakeStore) GetNotificationPreferences(context.Context) (NotificationPreferences, error) {
	if f.fail {
		return NotificationPreferences{}, errStore
	}
	return f.prefs, nil
}

func (f *fakeStore) SaveNotificationPreferences(_ context.Context, p NotificationPreferences) (NotificationPreferences, error) {
	if f.fail {
		return NotificationPreferences{}, errStore
	}
	f.prefs = p
	return p, nil
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	ctx := context.Background()

	saved, err := svc.SaveCompanyProfile(ctx, CompanyProfile{CompanyName: "Acme", SupportEmail: "help@acme.io"})
	if err != nil {
		t.Fatalf("SaveCompanyProfile: %v", err)
	}
	loaded, err := svc.CompanyProfile(ctx)
	if err != nil {
		t.Fatalf("CompanyProfile: %v", err)
	}
	if loaded != saved {
		t.Errorf("loaded = %+v, want %+v", loaded, saved)
	}

	prefs, err := svc.SaveNotificationPreferences(ctx, NotificationPreferences{DailyDigest: true, DigestRecipient: "sales@acme.io"})
	if err != nil {
		t.Fatalf("SaveNotificationPreferences: %v", err)
	}
	if !prefs.DailyDigest {
		t.Error("daily digest flag lost in save")
	}
}

func TestStoreFailureMapsToDependencyError(t *testing.T) {
	svc := NewService(&fakeStore{fail: true})

	_, err := svc.EmailSettings(context.Background())
	if apperr.GetKind(err) != apperr.KindDependency {
		t.Errorf("expected dependency error, got %v", err)
	}
}
