// Package email delivers transactional and campaign mail for the CRM.
package email

import (
	"context"

	"leadcrm_backend/platform/config"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte // raw file bytes
	FileName string // e.g. "spring-catalog.pdf"
	MIMEType string // e.g. "application/pdf"
}

// Sender delivers the CRM's outbound mail. Transactional notifications go to
// the lead; follow-up reminders go to the sales inbox; campaign mail carries
// operator-authored content.
type Sender interface {
	SendLeadReceivedEmail(ctx context.Context, toEmail, leadName string) error
	SendStatusContactedEmail(ctx context.Context, toEmail, leadName string) error
	SendStatusNegotiationEmail(ctx context.Context, toEmail, leadName string) error
	SendStatusClosedEmail(ctx context.Context, toEmail, leadName string) error
	SendFollowUpReminderEmail(ctx context.Context, toEmail, leadName, note, dueDate string) error
	SendCampaignEmail(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error
}

// NewSender returns the SMTP sender when email delivery is enabled and a
// NoopSender otherwise, so callers never need to branch on configuration.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(cfg)
}

// NoopSender is used when email delivery is disabled; every send succeeds
// without doing anything.
type NoopSender struct{}

func (NoopSender) SendLeadReceivedEmail(ctx context.Context, toEmail, leadName string) error {
	return nil
}

func (NoopSender) SendStatusContactedEmail(ctx context.Context, toEmail, leadName string) error {
	return nil
}

func (NoopSender) SendStatusNegotiationEmail(ctx context.Context, toEmail, leadName string) error {
	return nil
}

func (NoopSender) SendStatusClosedEmail(ctx context.Context, toEmail, leadName string) error {
	return nil
}

func (NoopSender) SendFollowUpReminderEmail(ctx context.Context, toEmail, leadName, note, dueDate string) error {
	return nil
}

func (NoopSender) SendCampaignEmail(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	return nil
}

var _ Sender = NoopSender{}
