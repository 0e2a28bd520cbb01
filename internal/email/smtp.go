package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	"leadcrm_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, att := range attachments {
		msg.AttachReader(att.FileName, bytes.NewReader(att.Content))
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendLeadReceivedEmail(ctx context.Context, toEmail, leadName string) error {
	content, err := renderEmailTemplate("lead_received.html", leadEmailData{
		baseEmailData: baseEmailData{
			Title:   "Thanks for reaching out",
			Heading: "We received your message",
		},
		LeadName: leadName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectLeadReceived, content)
}

func (s *SMTPSender) SendStatusContactedEmail(ctx context.Context, toEmail, leadName string) error {
	content, err := renderEmailTemplate("status_contacted.html", leadEmailData{
		baseEmailData: baseEmailData{
			Title:   "We'd love to talk",
			Heading: "Let's schedule a conversation",
		},
		LeadName: leadName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectStatusContacted, content)
}

func (s *SMTPSender) SendStatusNegotiationEmail(ctx context.Context, toEmail, leadName string) error {
	content, err := renderEmailTemplate("status_negotiation.html", leadEmailData{
		baseEmailData: baseEmailData{
			Title:   "Your proposal is ready",
			Heading: "Your proposal is ready",
		},
		LeadName: leadName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectStatusNegotiation, content)
}

func (s *SMTPSender) SendStatusClosedEmail(ctx context.Context, toEmail, leadName string) error {
	content, err := renderEmailTemplate("status_closed.html", leadEmailData{
		baseEmailData: baseEmailData{
			Title:   "Welcome aboard",
			Heading: "Welcome aboard",
		},
		LeadName: leadName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectStatusClosed, content)
}

func (s *SMTPSender) SendFollowUpReminderEmail(ctx context.Context, toEmail, leadName, note, dueDate string) error {
	content, err := renderEmailTemplate("follow_up_reminder.html", followUpReminderEmailData{
		baseEmailData: baseEmailData{
			Title:   "Follow-up due",
			Heading: "A follow-up is due",
		},
		LeadName: leadName,
		Note:     note,
		DueDate:  dueDate,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectFollowUpReminder, leadName), content)
}

// SendCampaignEmail delivers operator-authored content as-is.
func (s *SMTPSender) SendCampaignEmail(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	return s.send(ctx, toEmail, subject, htmlContent, attachments...)
}

var _ Sender = (*SMTPSender)(nil)
