package settings

import (
	"context"

	"leadcrm_backend/platform/apperr"
)

// Store defines the data access interface needed by the settings service.
type Store interface {
	GetCompanyProfile(ctx context.Context) (CompanyProfile, error)
	SaveCompanyProfile(ctx context.Context, p CompanyProfile) (CompanyProfile, error)
	GetEmailSettings(ctx context.Context) (EmailSettings, error)
	SaveEmailSettings(ctx context.Context, s EmailSettings) (EmailSettings, error)
	GetNotificationPreferences(ctx context.Context) (NotificationPreferences, error)
	SaveNotificationPreferences(ctx context.Context, p NotificationPreferences) (NotificationPreferences, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) CompanyProfile(ctx context.Context) (CompanyProfile, error) {
	profile, err := s.store.GetCompanyProfile(ctx)
	if err != nil {
		return CompanyProfile{}, apperr.Dependency("load company profile", err)
	}
	return profile, nil
}

func (s *Service) SaveCompanyProfile(ctx context.Context, p CompanyProfile) (CompanyProfile, error) {
	profile, err := s.store.SaveCompanyProfile(ctx, p)
	if err != nil {
		return CompanyProfile{}, apperr.Dependency("save company profile", err)
	}
	return profile, nil
}

func (s *Service) EmailSettings(ctx context.Context) (EmailSettings, error) {
	settings, err := s.store.GetEmailSettings(ctx)
	if err != nil {
		return EmailSettings{}, apperr.Dependency("load email settings", err)
	}
	return settings, nil
}

func (s *Service) SaveEmailSettings(ctx context.Context, in EmailSettings) (EmailSettings, error) {
	settings, err := s.store.SaveEmailSettings(ctx, in)
	if err != nil {
		return EmailSettings{}, apperr.Dependency("save email settings", err)
	}
	return settings, nil
}

func (s *Service) NotificationPreferences(ctx context.Context) (NotificationPreferences, error) {
	prefs, err := s.store.GetNotificationPreferences(ctx)
	if err != nil {
		return NotificationPreferences{}, apperr.Dependency("load notification preferences", err)
	}
	return prefs, nil
}

func (s *Service) SaveNotificationPreferences(ctx context.Context, in NotificationPreferences) (NotificationPreferences, error) {
	prefs, err := s.store.SaveNotificationPreferences(ctx, in)
	if err != nil {
		return NotificationPreferences{}, apperr.Dependency("save notification preferences", err)
	}
	return prefs, nil
}
