// ABOUTME: Best-effort gateway to the remote row store
// ABOUTME: Mirrors local writes outward and fetches remote rows for hydration
package remote

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/bizdesk/bizdesk/config"
	"github.com/bizdesk/bizdesk/models"
)

const (
	tableContacts = "contacts"
	tableDeals    = "deals"
	tableTasks    = "tasks"
	tableBrand    = "brand_profile"
)

// Gateway mirrors application data to a remote row store. The local
// database stays authoritative. Every save is fire-and-forget: failures
// are logged and swallowed, never retried, and never roll back local
// state.
type Gateway struct {
	client  *Client
	enabled bool
}

// NewGateway builds a gateway from remote config. An unconfigured or
// invalid config yields a disabled gateway, which is the normal local-only
// mode rather than an error.
func NewGateway(cfg config.RemoteConfig) *Gateway {
	return NewGatewayWithHTTPClient(cfg, nil)
}

// NewGatewayWithHTTPClient is NewGateway with an injectable HTTP client
// for tests.
func NewGatewayWithHTTPClient(cfg config.RemoteConfig, httpClient *http.Client) *Gateway {
	if !cfg.IsConfigured() {
		return &Gateway{}
	}

	client, err := NewClient(ClientConfig{
		URL:        cfg.URL,
		APIKey:     cfg.APIKey,
		HTTPClient: httpClient,
	})
	if err != nil {
		log.Printf("remote: disabled: %v", err)
		return &Gateway{}
	}

	return &Gateway{client: client, enabled: true}
}

// IsConfigured reports whether the gateway has a usable remote endpoint.
func (g *Gateway) IsConfigured() bool {
	return g.enabled
}

func fetchRows[R any](ctx context.Context, g *Gateway, table string) ([]R, error) {
	if !g.enabled {
		return nil, nil
	}

	resp, err := g.client.From(table).Select("*").Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", table, err)
	}
	if err := resp.Error(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", table, err)
	}

	var rows []R
	if err := resp.JSON(&rows); err != nil {
		return nil, fmt.Errorf("fetch %s: decode: %w", table, err)
	}
	return rows, nil
}

// FetchContacts returns all remote contacts, or nil when unconfigured.
func (g *Gateway) FetchContacts(ctx context.Context) ([]models.Contact, error) {
	rows, err := fetchRows[contactRow](ctx, g, tableContacts)
	if err != nil {
		return nil, err
	}

	var contacts []models.Contact
	for _, r := range rows {
		c, err := r.toModel()
		if err != nil {
			log.Printf("remote: skipping malformed contact row %q: %v", r.ID, err)
			continue
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// FetchDeals returns all remote deals, or nil when unconfigured.
func (g *Gateway) FetchDeals(ctx context.Context) ([]models.Deal, error) {
	rows, err := fetchRows[dealRow](ctx, g, tableDeals)
	if err != nil {
		return nil, err
	}

	var deals []models.Deal
	for _, r := range rows {
		d, err := r.toModel()
		if err != nil {
			log.Printf("remote: skipping malformed deal row %q: %v", r.ID, err)
			continue
		}
		deals = append(deals, d)
	}
	return deals, nil
}

// FetchTasks returns all remote tasks, or nil when unconfigured.
func (g *Gateway) FetchTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := fetchRows[taskRow](ctx, g, tableTasks)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	for _, r := range rows {
		t, err := r.toModel()
		if err != nil {
			log.Printf("remote: skipping malformed task row %q: %v", r.ID, err)
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// FetchBrandProfile returns the remote brand profile, or nil when absent
// or unconfigured.
func (g *Gateway) FetchBrandProfile(ctx context.Context) (*models.BrandProfile, error) {
	if !g.enabled {
		return nil, nil
	}

	resp, err := g.client.From(tableBrand).Select("*").Eq("id", models.BrandProfileID).Limit(1).Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch brand profile: %w", err)
	}
	if err := resp.Error(); err != nil {
		return nil, fmt.Errorf("fetch brand profile: %w", err)
	}

	var rows []brandRow
	if err := resp.JSON(&rows); err != nil {
		return nil, fmt.Errorf("fetch brand profile: decode: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	profile := rows[0].toModel()
	return &profile, nil
}

func (g *Gateway) upsert(ctx context.Context, table string, row any) {
	if !g.enabled {
		return
	}

	resp, err := g.client.From(table).ExecuteUpsert(ctx, row, "id")
	if err != nil {
		log.Printf("remote: upsert %s failed: %v", table, err)
		return
	}
	if err := resp.Error(); err != nil {
		log.Printf("remote: upsert %s failed: %v", table, err)
	}
}

// SaveContact mirrors a contact to the remote store.
func (g *Gateway) SaveContact(ctx context.Context, contact models.Contact) {
	g.upsert(ctx, tableContacts, contactToRow(contact))
}

// SaveDeal mirrors a deal (with its payments) to the remote store.
func (g *Gateway) SaveDeal(ctx context.Context, deal models.Deal) {
	g.upsert(ctx, tableDeals, dealToRow(deal))
}

// SaveTask mirrors a task to the remote store.
func (g *Gateway) SaveTask(ctx context.Context, task models.Task) {
	g.upsert(ctx, tableTasks, taskToRow(task))
}

// SaveBrandProfile mirrors the brand profile singleton to the remote store.
func (g *Gateway) SaveBrandProfile(ctx context.Context, profile models.BrandProfile) {
	g.upsert(ctx, tableBrand, brandToRow(profile))
}

// DeleteTask removes a task row from the remote store.
func (g *Gateway) DeleteTask(ctx context.Context, id string) {
	if !g.enabled {
		return
	}

	resp, err := g.client.From(tableTasks).Eq("id", id).ExecuteDelete(ctx)
	if err != nil {
		log.Printf("remote: delete task failed: %v", err)
		return
	}
	if err := resp.Error(); err != nil {
		log.Printf("remote: delete task failed: %v", err)
	}
}
