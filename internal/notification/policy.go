package notification

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy controls which lifecycle moments trigger an email to the lead.
// Operators tune it via a YAML file so changing the notified subset does not
// require a redeploy.
type Policy struct {
	// LeadReceived controls the intake acknowledgement email.
	LeadReceived bool `yaml:"lead_received"`
	// StatusEmails maps a target status to whether entering it notifies
	// the lead. Statuses absent from the map stay silent.
	StatusEmails map[string]bool `yaml:"status_emails"`
}

// DefaultPolicy notifies on intake and on the customer-visible stages.
// Internal moves (back to new) and losses stay silent.
func DefaultPolicy() Policy {
	return Policy{
		LeadReceived: true,
		StatusEmails: map[string]bool{
			"contacted":   true,
			"negotiation": true,
			"closed":      true,
		},
	}
}

// LoadPolicy reads the policy from a YAML file; an empty path yields the
// default policy.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read notification policy: %w", err)
	}

	var policy Policy
	if err := yaml.Unmarshal(raw, &policy); err != nil {
		return Policy{}, fmt.Errorf("parse notification policy: %w", err)
	}
	if policy.StatusEmails == nil {
		policy.StatusEmails = map[string]bool{}
	}
	return policy, nil
}

// NotifiesStatus reports whether entering the given status emails the lead.
func (p Policy) NotifiesStatus(status string) bool {
	return p.StatusEmails[status]
}
