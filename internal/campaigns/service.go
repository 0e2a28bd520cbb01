// Package campaigns sends operator-authored bulk email to a filtered slice
// of the lead collection.
package campaigns

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"leadcrm_backend/internal/email"
	"leadcrm_backend/internal/leads/domain"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/platform/apperr"
	"leadcrm_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// MaxAttachmentSize caps each campaign attachment at 5 MiB.
const MaxAttachmentSize = 5 << 20

// Recipients resolves the distinct email addresses a campaign goes to.
type Recipients interface {
	ListEmails(ctx context.Context, params repository.ListLeadsParams) ([]string, error)
}

// Service dispatches campaigns with bounded concurrency.
type Service struct {
	recipients  Recipients
	sender      email.Sender
	concurrency int
	log         *logger.Logger
}

// New creates the campaign service. concurrency bounds the number of
// simultaneous SMTP deliveries.
func New(recipients Recipients, sender email.Sender, concurrency int, log *logger.Logger) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{recipients: recipients, sender: sender, concurrency: concurrency, log: log}
}

// SendParams describes one campaign dispatch.
type SendParams struct {
	Subject     string
	HTMLContent string
	Status      *domain.Status
	Source      *domain.Source
	Attachments []email.Attachment
}

// Result tallies a campaign run. A campaign with failures is still a
// completed campaign: delivery continues past individual rejects.
type Result struct {
	Recipients int      `json:"recipients"`
	Sent       int      `json:"sent"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

// Send delivers the campaign to every distinct lead email matching the
// filters. Attachments are restricted to images and PDFs up to
// MaxAttachmentSize each.
func (s *Service) Send(ctx context.Context, params SendParams) (Result, error) {
	if strings.TrimSpace(params.Subject) == "" {
		return Result{}, apperr.Validation("subject is required")
	}
	if strings.TrimSpace(params.HTMLContent) == "" {
		return Result{}, apperr.Validation("content is required")
	}
	if params.Status != nil && !domain.ValidStatuses[*params.Status] {
		return Result{}, apperr.Validation(fmt.Sprintf("unknown status %q", *params.Status))
	}
	if params.Source != nil && !domain.ValidSources[*params.Source] {
		return Result{}, apperr.Validation(fmt.Sprintf("unknown source %q", *params.Source))
	}
	for _, att := range params.Attachments {
		if err := validateAttachment(att); err != nil {
			return Result{}, err
		}
	}

	emails, err := s.recipients.ListEmails(ctx, repository.ListLeadsParams{
		Status: params.Status,
		Source: params.Source,
	})
	if err != nil {
		return Result{}, apperr.Dependency("resolve recipients", err)
	}

	result := Result{Recipients: len(emails)}
	if len(emails) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)

	for _, to := range emails {
		to := to
		group.Go(func() error {
			err := s.sender.SendCampaignEmail(gctx, to, params.Subject, params.HTMLContent, params.Attachments...)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", to, err))
				s.log.NotificationFailure("campaign", to, err)
				return nil
			}
			result.Sent++
			return nil
		})
	}

	// Workers never return errors; Wait only surfaces context cancellation.
	if err := group.Wait(); err != nil {
		return result, apperr.Dependency("campaign dispatch", err)
	}

	s.log.Info("campaign dispatched",
		"recipients", result.Recipients,
		"sent", result.Sent,
		"failed", result.Failed,
	)
	return result, nil
}

func validateAttachment(att email.Attachment) error {
	if att.FileName == "" {
		return apperr.Validation("attachment file name is required")
	}
	if len(att.Content) == 0 {
		return apperr.Validation(fmt.Sprintf("attachment %s is empty", att.FileName))
	}
	if len(att.Content) > MaxAttachmentSize {
		return apperr.Validation(fmt.Sprintf("attachment %s exceeds the 5 MiB limit", att.FileName))
	}
	if !strings.HasPrefix(att.MIMEType, "image/") && att.MIMEType != "application/pdf" {
		return apperr.Validation(fmt.Sprintf("attachment %s has unsupported type %s", att.FileName, att.MIMEType))
	}
	return nil
}
