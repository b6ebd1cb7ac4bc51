// ABOUTME: Ad network insights importer
// ABOUTME: Pulls campaign spend and ROAS figures and stamps them onto deals
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/bizdesk/bizdesk/store"
)

// AdInsight is one campaign row from the ad network's insights API.
// Campaigns are linked to deals by tagging the campaign with the deal ID.
type AdInsight struct {
	CampaignID string  `json:"campaign_id"`
	DealID     string  `json:"deal_id"`
	Spend      int64   `json:"spend"`
	ROAS       float64 `json:"roas"`
}

type insightsResponse struct {
	Insights []AdInsight `json:"insights"`
}

// AdsImporter fetches ad performance from the configured network.
type AdsImporter struct {
	url        string
	httpClient *http.Client
}

// NewAdsImporter builds an importer authenticated with a bearer token.
func NewAdsImporter(url, token string) (*AdsImporter, error) {
	if url == "" {
		return nil, fmt.Errorf("ads URL is not configured")
	}
	if token == "" {
		return nil, fmt.Errorf("ads token is not configured")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(context.Background(), ts)
	client.Timeout = 30 * time.Second

	return &AdsImporter{url: url, httpClient: client}, nil
}

// FetchInsights retrieves all campaign insights.
func (a *AdsImporter) FetchInsights(ctx context.Context) ([]AdInsight, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", a.url+"/insights", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch insights: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch insights: status %d: %s", resp.StatusCode, body)
	}

	var parsed insightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode insights: %w", err)
	}
	return parsed.Insights, nil
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Updated int
	Skipped int
}

// ImportAdMetrics fetches insights and applies spend and ROAS to the
// matching deals. Insights without a resolvable deal are skipped, not
// fatal.
func ImportAdMetrics(ctx context.Context, importer *AdsImporter, s *store.Store) (*ImportResult, error) {
	insights, err := importer.FetchInsights(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, insight := range insights {
		dealID, err := uuid.Parse(insight.DealID)
		if err != nil {
			result.Skipped++
			continue
		}
		if _, err := s.UpdateDealAdMetrics(dealID, insight.Spend, insight.ROAS); err != nil {
			result.Skipped++
			continue
		}
		result.Updated++
	}
	return result, nil
}
