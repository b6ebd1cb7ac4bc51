// ABOUTME: Ad copy generation in the brand's voice
// ABOUTME: Produces headline, body, and call to action as a stored ad record
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bizdesk/bizdesk/models"
)

type adReply struct {
	Headline  string `json:"headline"`
	Body      string `json:"body"`
	CallToAct string `json:"call_to_action"`
}

// GenerateAd writes ad copy for an offer in the brand's voice. Recent ads
// from brand memory are included so the model avoids repeating itself.
func (c *Client) GenerateAd(ctx context.Context, brand models.BrandProfile, offer string) (*models.AdRecord, error) {
	var sb strings.Builder
	sb.WriteString("You are a direct-response copywriter.\n")
	fmt.Fprintf(&sb, "Brand: %s (%s). Voice archetype: %s, tone: %s.\n",
		brand.Name, brand.Industry, brand.Psychology.Archetype, brand.Psychology.Tone)
	if len(brand.Psychology.Principles) > 0 {
		fmt.Fprintf(&sb, "Principles: %s.\n", strings.Join(brand.Psychology.Principles, "; "))
	}
	fmt.Fprintf(&sb, "Offer: %s\n", offer)

	if n := len(brand.Memory.AdHistory); n > 0 {
		sb.WriteString("Previous headlines (do not repeat):\n")
		start := n - 5
		if start < 0 {
			start = 0
		}
		for _, ad := range brand.Memory.AdHistory[start:] {
			fmt.Fprintf(&sb, "- %s\n", ad.Headline)
		}
	}

	sb.WriteString(`
Write one ad. Respond with JSON:
{"headline":"...","body":"...","call_to_action":"..."}`)

	var reply adReply
	if err := c.generateJSON(ctx, sb.String(), &reply); err != nil {
		return nil, err
	}
	if reply.Headline == "" || reply.Body == "" {
		return nil, ErrEmptyResponse
	}

	return &models.AdRecord{
		ID:        ulid.Make().String(),
		Headline:  reply.Headline,
		Body:      reply.Body,
		CallToAct: reply.CallToAct,
		CreatedAt: time.Now(),
	}, nil
}
