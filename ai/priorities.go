// ABOUTME: AI-suggested daily priorities from the current workspace snapshot
// ABOUTME: Turns contacts, deals, and open tasks into a ranked action list
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/bizdesk/bizdesk/models"
)

// PrioritySuggestion is one recommended action for today.
type PrioritySuggestion struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
}

// Valid reports whether the suggestion carries a usable title and a known
// priority level.
func (p PrioritySuggestion) Valid() bool {
	if strings.TrimSpace(p.Title) == "" {
		return false
	}
	switch p.Priority {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		return true
	}
	return false
}

type prioritiesReply struct {
	Suggestions []PrioritySuggestion `json:"suggestions"`
}

// SuggestPriorities asks the model for today's top actions given the
// current pipeline. Invalid entries in the reply are dropped rather than
// failing the whole call.
func (c *Client) SuggestPriorities(ctx context.Context, brand models.BrandProfile, contacts []models.Contact, deals []models.Deal, tasks []models.Task) ([]PrioritySuggestion, error) {
	var sb strings.Builder
	sb.WriteString("You are a revenue operations assistant for a small business.\n")
	fmt.Fprintf(&sb, "Business: %s (%s). %s\n\n", brand.Name, brand.Industry, brand.Description)

	sb.WriteString("Open deals:\n")
	for _, d := range deals {
		if d.Stage == models.StageClosedWon || d.Stage == models.StageClosedLost {
			continue
		}
		fmt.Fprintf(&sb, "- %s: $%.2f, stage %s, %d%% probability, $%.2f collected\n",
			d.Title, float64(d.Value)/100, d.Stage, d.Probability, float64(d.Collected())/100)
	}

	sb.WriteString("\nContacts:\n")
	for _, ct := range contacts {
		fmt.Fprintf(&sb, "- %s (%s), status %s\n", ct.Name, ct.Company, ct.Status)
	}

	sb.WriteString("\nPending tasks:\n")
	for _, t := range tasks {
		if t.Status != models.TaskPending {
			continue
		}
		fmt.Fprintf(&sb, "- %s (%s priority)\n", t.Title, t.Priority)
	}

	sb.WriteString(`
Suggest up to 5 concrete actions for today. Respond with JSON:
{"suggestions":[{"title":"...","priority":"high|medium|low","reason":"..."}]}`)

	var reply prioritiesReply
	if err := c.generateJSON(ctx, sb.String(), &reply); err != nil {
		return nil, err
	}

	var out []PrioritySuggestion
	for _, s := range reply.Suggestions {
		if s.Valid() {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyResponse
	}
	return out, nil
}
