package campaigns

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"leadcrm_backend/internal/email"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/platform/apperr"
	"leadcrm_backend/platform/logger"
)

type fakeRecipients struct {
	emails []string
	params *repository.ListLeadsParams
}

func (f *fakeRecipients) ListEmails(_ context.Context, params repository.ListLeadsParams) ([]string, error) {
	f.params = &params
	return f.emails, nil
}

type fakeSender struct {
	email.NoopSender

	mu     sync.Mutex
	sent   []string
	failFn func(to string) error
}

func (f *fakeSender) SendCampaignEmail(_ context.Context, to, _, _ string, _ ...email.Attachment) error {
	if f.failFn != nil {
		if err := f.failFn(to); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func validParams() SendParams {
	return SendParams{Subject: "Spring launch", HTMLContent: "<p>Hello</p>"}
}

func TestSendDeliversToEveryRecipient(t *testing.T) {
	recipients := &fakeRecipients{emails: []string{"a@x.com", "b@x.com", "c@x.com"}}
	sender := &fakeSender{}
	svc := New(recipients, sender, 2, logger.New("development"))

	result, err := svc.Send(context.Background(), validParams())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if result.Recipients != 3 || result.Sent != 3 || result.Failed != 0 {
		t.Errorf("result = %+v, want 3/3/0", result)
	}
	if len(sender.sent) != 3 {
		t.Errorf("delivered %d, want 3", len(sender.sent))
	}
}

func TestSendContinuesPastFailures(t *testing.T) {
	recipients := &fakeRecipients{emails: []string{"a@x.com", "bad@x.com", "c@x.com"}}
	sender := &fakeSender{failFn: func(to string) error {
		if to == "bad@x.com" {
			return errors.New("mailbox full")
		}
		return nil
	}}
	svc := New(recipients, sender, 1, logger.New("development"))

	result, err := svc.Send(context.Background(), validParams())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if result.Sent != 2 || result.Failed != 1 {
		t.Errorf("result = %+v, want sent 2 failed 1", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "bad@x.com") {
		t.Errorf("errors = %v, want one entry naming bad@x.com", result.Errors)
	}
}

func TestSendNoRecipients(t *testing.T) {
	svc := New(&fakeRecipients{}, &fakeSender{}, 2, logger.New("development"))

	result, err := svc.Send(context.Background(), validParams())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if result.Recipients != 0 || result.Sent != 0 {
		t.Errorf("result = %+v, want empty run", result)
	}
}

func TestSendValidation(t *testing.T) {
	svc := New(&fakeRecipients{emails: []string{"a@x.com"}}, &fakeSender{}, 2, logger.New("development"))

	tests := []struct {
		name   string
		mutate func(*SendParams)
	}{
		{"blank subject", func(p *SendParams) { p.Subject = "  " }},
		{"blank content", func(p *SendParams) { p.HTMLContent = "" }},
		{"oversized attachment", func(p *SendParams) {
			p.Attachments = []email.Attachment{{
				FileName: "big.pdf",
				MIMEType: "application/pdf",
				Content:  make([]byte, MaxAttachmentSize+1),
			}}
		}},
		{"unsupported attachment type", func(p *SendParams) {
			p.Attachments = []email.Attachment{{
				FileName: "run.exe",
				MIMEType: "application/octet-stream",
				Content:  []byte{1},
			}}
		}},
		{"empty attachment", func(p *SendParams) {
			p.Attachments = []email.Attachment{{FileName: "a.png", MIMEType: "image/png"}}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := validParams()
			tc.mutate(&params)
			_, err := svc.Send(context.Background(), params)
			if apperr.GetKind(err) != apperr.KindValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSendAllowsImageAndPDFAttachments(t *testing.T) {
	recipients := &fakeRecipients{emails: []string{"a@x.com"}}
	svc := New(recipients, &fakeSender{}, 2, logger.New("development"))

	params := validParams()
	params.Attachments = []email.Attachment{
		{FileName: "photo.jpg", MIMEType: "image/jpeg", Content: []byte{1}},
		{FileName: "catalog.pdf", MIMEType: "application/pdf", Content: []byte{1}},
	}

	if _, err := svc.Send(context.Background(), params); err != nil {
		t.Fatalf("Send: %v", err)
	}
}
