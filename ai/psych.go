// ABOUTME: Psychological profiling of contacts for outreach tailoring
// ABOUTME: Produces an archetype, motivators, and a recommended approach
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/bizdesk/bizdesk/models"
)

// PsychologyProfile describes how to communicate with a contact.
type PsychologyProfile struct {
	Archetype  string   `json:"archetype"`
	Motivators []string `json:"motivators"`
	Approach   string   `json:"approach"`
	Summary    string   `json:"summary"`
}

// String renders the profile as a single line suitable for storage on a
// contact record.
func (p PsychologyProfile) String() string {
	return fmt.Sprintf("%s. Motivated by: %s. Approach: %s",
		p.Archetype, strings.Join(p.Motivators, ", "), p.Approach)
}

// AnalyzeContact builds a psychology profile for a contact using what is
// known about them and their deals.
func (c *Client) AnalyzeContact(ctx context.Context, contact models.Contact, deals []models.Deal) (*PsychologyProfile, error) {
	var sb strings.Builder
	sb.WriteString("You are a sales psychology analyst.\n")
	fmt.Fprintf(&sb, "Contact: %s, %s at %s, status %s, lifetime value $%.2f.\n",
		contact.Name, contact.Email, contact.Company, contact.Status, float64(contact.Value)/100)

	if len(deals) > 0 {
		sb.WriteString("Their deals:\n")
		for _, d := range deals {
			if d.ContactID != contact.ID {
				continue
			}
			fmt.Fprintf(&sb, "- %s: $%.2f, stage %s\n", d.Title, float64(d.Value)/100, d.Stage)
		}
	}

	sb.WriteString(`
Profile this person for outreach. Respond with JSON:
{"archetype":"...","motivators":["..."],"approach":"...","summary":"..."}`)

	var profile PsychologyProfile
	if err := c.generateJSON(ctx, sb.String(), &profile); err != nil {
		return nil, err
	}
	if profile.Archetype == "" {
		return nil, ErrEmptyResponse
	}
	return &profile, nil
}
