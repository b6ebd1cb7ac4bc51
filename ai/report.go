// ABOUTME: Growth report generation grounded with Google Search
// ABOUTME: Returns report text plus the web sources the model consulted
package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bizdesk/bizdesk/models"
)

// GrowthReport is a market-aware summary of where the business stands.
type GrowthReport struct {
	Text    string
	Sources []models.GroundingSource
}

// GenerateGrowthReport asks the model for a grounded growth report. Search
// grounding and JSON response mode are mutually exclusive, so the report
// comes back as prose with sources read from grounding metadata.
func (c *Client) GenerateGrowthReport(ctx context.Context, brand models.BrandProfile, deals []models.Deal) (*GrowthReport, error) {
	var pipeline, won int64
	for _, d := range deals {
		switch d.Stage {
		case models.StageClosedWon:
			won += d.Value
		case models.StageClosedLost:
		default:
			pipeline += d.Value
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a short growth report for %s, a business in %s.\n", brand.Name, brand.Industry)
	fmt.Fprintf(&sb, "Target audience: %s.\n", brand.TargetAudience)
	fmt.Fprintf(&sb, "Current pipeline value: $%.2f. Closed-won revenue: $%.2f.\n", float64(pipeline)/100, float64(won)/100)
	sb.WriteString("Research current market conditions and trends in this industry. Cover: market outlook, two growth opportunities, and one risk.")

	resp, err := c.generateText(ctx, sb.String(), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	})
	if err != nil {
		return nil, err
	}

	text := resp.Text()
	if text == "" {
		return nil, ErrEmptyResponse
	}

	report := &GrowthReport{Text: text}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web == nil {
				continue
			}
			report.Sources = append(report.Sources, models.GroundingSource{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		}
	}
	return report, nil
}
