// Package settings stores the operator-editable application settings as
// typed categories: one singleton row per category instead of an opaque
// key-value blob.
package settings

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CompanyProfile identifies the business in outbound communication.
type CompanyProfile struct {
	CompanyName  string    `json:"companyName"`
	WebsiteURL   string    `json:"websiteUrl"`
	SupportEmail string    `json:"supportEmail"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// EmailSettings controls outbound mail identity.
type EmailSettings struct {
	SenderName     string    `json:"senderName"`
	SenderAddress  string    `json:"senderAddress"`
	ReplyToAddress string    `json:"replyToAddress"`
	Signature      string    `json:"signature"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NotificationPreferences controls operator-facing notifications.
type NotificationPreferences struct {
	NotifyOnLeadCreated  bool      `json:"notifyOnLeadCreated"`
	NotifyOnStatusChange bool      `json:"notifyOnStatusChange"`
	DailyDigest          bool      `json:"dailyDigest"`
	DigestRecipient      string    `json:"digestRecipient"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// Repository reads and writes the singleton settings rows.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func noRow(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// GetCompanyProfile returns the stored profile, or zero values when the row
// has never been written.
func (r *Repository) GetCompanyProfile(ctx context.Context) (CompanyProfile, error) {
	var p CompanyProfile
	err := r.pool.QueryRow(ctx, `
		SELECT company_name, website_url, support_email, phone, address, updated_at
		FROM company_profile_settings
		WHERE id = 1
	`).Scan(&p.CompanyName, &p.WebsiteURL, &p.SupportEmail, &p.Phone, &p.Address, &p.UpdatedAt)
	if noRow(err) {
		return CompanyProfile{}, nil
	}
	if err != nil {
		return CompanyProfile{}, err
	}
	return p, nil
}

// SaveCompanyProfile upserts the singleton profile row.
func (r *Repository) SaveCompanyProfile(ctx context.Context, p CompanyProfile) (CompanyProfile, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO company_profile_settings (id, company_name, website_url, support_email, phone, address, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE
		SET company_name = EXCLUDED.company_name,
			website_url = EXCLUDED.website_url,
			support_email = EXCLUDED.support_email,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			updated_at = NOW()
		RETURNING company_name, website_url, support_email, phone, address, updated_at
	`, p.CompanyName, p.WebsiteURL, p.SupportEmail, p.Phone, p.Address).
		Scan(&p.CompanyName, &p.WebsiteURL, &p.SupportEmail, &p.Phone, &p.Address, &p.UpdatedAt)
	if err != nil {
		return CompanyProfile{}, err
	}
	return p, nil
}

// GetEmailSettings returns the stored email identity.
func (r *Repository) GetEmailSettings(ctx context.Context) (EmailSettings, error) {
	var s EmailSettings
	err := r.pool.QueryRow(ctx, `
		SELECT sender_name, sender_address, reply_to_address, signature, updated_at
		FROM email_settings
		WHERE id = 1
	`).Scan(&s.SenderName, &s.SenderAddress, &s.ReplyToAddress, &s.Signature, &s.UpdatedAt)
	if noRow(err) {
		return EmailSettings{}, nil
	}
	if err != nil {
		return EmailSettings{}, err
	}
	return s, nil
}

// SaveEmailSettings upserts the singleton email identity row.
func (r *Repository) SaveEmailSettings(ctx context.Context, s EmailSettings) (EmailSettings, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO email_settings (id, sender_name, sender_address, reply_to_address, signature, updated_at)
		VALUES (1, $1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE
		SET sender_name = EXCLUDED.sender_name,
			sender_address = EXCLUDED.sender_address,
			reply_to_address = EXCLUDED.reply_to_address,
			signature = EXCLUDED.signature,
			updated_at = NOW()
		RETURNING sender_name, sender_address, reply_to_address, signature, updated_at
	`, s.SenderName, s.SenderAddress, s.ReplyToAddress, s.Signature).
		Scan(&s.SenderName, &s.SenderAddress, &s.ReplyToAddress, &s.Signature, &s.UpdatedAt)
	if err != nil {
		return EmailSettings{}, err
	}
	return s, nil
}

// GetNotificationPreferences returns the stored preferences; the defaults
// notify on the main lifecycle moments.
func (r *Repository) GetNotificationPreferences(ctx context.Context) (NotificationPreferences, error) {
	var p NotificationPreferences
	err := r.pool.QueryRow(ctx, `
		SELECT notify_on_lead_created, notify_on_status_change, daily_digest, digest_recipient, updated_at
		FROM notification_preference_settings
		WHERE id = 1
	`).Scan(&p.NotifyOnLeadCreated, &p.NotifyOnStatusChange, &p.DailyDigest, &p.DigestRecipient, &p.UpdatedAt)
	if noRow(err) {
		return NotificationPreferences{NotifyOnLeadCreated: true, NotifyOnStatusChange: true}, nil
	}
	if err != nil {
		return NotificationPreferences{}, err
	}
	return p, nil
}

// SaveNotificationPreferences upserts the singleton preferences row.
func (r *Repository) SaveNotificationPreferences(ctx context.Context, p NotificationPreferences) (NotificationPreferences, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notification_preference_settings (id, notify_on_lead_created, notify_on_status_change, daily_digest, digest_recipient, updated_at)
		VALUES (1, $1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE
		SET notify_on_lead_created = EXCLUDED.notify_on_lead_created,
			notify_on_status_change = EXCLUDED.notify_on_status_change,
			daily_digest = EXCLUDED.daily_digest,
			digest_recipient = EXCLUDED.digest_recipient,
			updated_at = NOW()
		RETURNING notify_on_lead_created, notify_on_status_change, daily_digest, digest_recipient, updated_at
	`, p.NotifyOnLeadCreated, p.NotifyOnStatusChange, p.DailyDigest, p.DigestRecipient).
		Scan(&p.NotifyOnLeadCreated, &p.NotifyOnStatusChange, &p.DailyDigest, &p.DigestRecipient, &p.UpdatedAt)
	if err != nil {
		return NotificationPreferences{}, err
	}
	return p, nil
}
