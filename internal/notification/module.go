// Package notification provides event handlers for emailing leads in
// response to domain events. This module subscribes to events and inverts
// the dependency: the lifecycle services never know about email providers
// or templates.
package notification

import (
	"context"

	"leadcrm_backend/internal/email"
	"leadcrm_backend/internal/events"
	"leadcrm_backend/platform/logger"
)

// Module routes lead lifecycle events to email dispatch per the policy.
type Module struct {
	sender email.Sender
	policy Policy
	log    *logger.Logger
}

// New creates the notification module.
func New(sender email.Sender, policy Policy, log *logger.Logger) *Module {
	return &Module{sender: sender, policy: policy, log: log}
}

// Register subscribes the module to the lead events it reacts to.
func (m *Module) Register(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), m)
	bus.Subscribe(events.LeadStatusChanged{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate email. Dispatch is best effort:
// failures are logged, never propagated, so a broken mail relay cannot roll
// back or block a lead mutation.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadCreated:
		m.handleLeadCreated(ctx, e)
	case events.LeadStatusChanged:
		m.handleStatusChanged(ctx, e)
	}
	return nil
}

func (m *Module) handleLeadCreated(ctx context.Context, e events.LeadCreated) {
	if !m.policy.LeadReceived {
		return
	}
	if err := m.sender.SendLeadReceivedEmail(ctx, e.Email, e.Name); err != nil {
		m.log.NotificationFailure(e.EventName(), e.Email, err)
	}
}

func (m *Module) handleStatusChanged(ctx context.Context, e events.LeadStatusChanged) {
	if !m.policy.NotifiesStatus(e.NewStatus) {
		return
	}

	var err error
	switch e.NewStatus {
	case "contacted":
		err = m.sender.SendStatusContactedEmail(ctx, e.Email, e.Name)
	case "negotiation":
		err = m.sender.SendStatusNegotiationEmail(ctx, e.Email, e.Name)
	case "closed":
		err = m.sender.SendStatusClosedEmail(ctx, e.Email, e.Name)
	default:
		// Policy enables a status we have no template for; stay silent.
		return
	}
	if err != nil {
		m.log.NotificationFailure(e.EventName(), e.Email, err)
	}
}

var _ events.Handler = (*Module)(nil)
