// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements create_deal, list_deals, advance_deal, and record_payment tools
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bizdesk/bizdesk/models"
	"github.com/bizdesk/bizdesk/store"
)

type DealHandlers struct {
	store *store.Store
}

func NewDealHandlers(s *store.Store) *DealHandlers {
	return &DealHandlers{store: s}
}

type CreateDealInput struct {
	Title             string `json:"title" jsonschema:"Deal title (required)"`
	ContactID         string `json:"contact_id" jsonschema:"Contact ID the deal belongs to (required)"`
	Value             int64  `json:"value,omitempty" jsonschema:"Deal value in cents"`
	Stage             string `json:"stage,omitempty" jsonschema:"Pipeline stage: discovery, proposal, negotiation, closed_won, or closed_lost (default discovery)"`
	Probability       int    `json:"probability,omitempty" jsonschema:"Win probability percentage (0-100)"`
	ExpectedCloseDate string `json:"expected_close_date,omitempty" jsonschema:"Expected close date (ISO 8601)"`
}

type PaymentOutput struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
	Date   string `json:"date"`
}

type DealOutput struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	ContactID   string          `json:"contact_id"`
	Value       int64           `json:"value"`
	Stage       string          `json:"stage"`
	AdSpend     int64           `json:"ad_spend"`
	ROAS        float64         `json:"roas"`
	Probability int             `json:"probability"`
	Collected   int64           `json:"collected"`
	Remaining   int64           `json:"remaining"`
	Payments    []PaymentOutput `json:"payments,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

func (h *DealHandlers) CreateDeal(_ context.Context, request *mcp.CallToolRequest, input CreateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.Title == "" {
		return nil, DealOutput{}, fmt.Errorf("title is required")
	}
	if input.ContactID == "" {
		return nil, DealOutput{}, fmt.Errorf("contact_id is required")
	}

	contactID, err := uuid.Parse(input.ContactID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("invalid contact_id: %w", err)
	}

	if input.Stage != "" && !models.ValidStage(input.Stage) {
		return nil, DealOutput{}, fmt.Errorf("invalid stage %q", input.Stage)
	}

	deal := models.Deal{
		Title:       input.Title,
		ContactID:   contactID,
		Value:       input.Value,
		Stage:       input.Stage,
		Probability: input.Probability,
	}
	if input.ExpectedCloseDate != "" {
		closeDate, err := time.Parse(time.RFC3339, input.ExpectedCloseDate)
		if err != nil {
			return nil, DealOutput{}, fmt.Errorf("invalid expected_close_date (use ISO 8601/RFC3339): %w", err)
		}
		deal.ExpectedCloseDate = &closeDate
	}

	created, err := h.store.AddDeal(deal)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to create deal: %w", err)
	}

	return nil, dealToOutput(created), nil
}

type ListDealsInput struct {
	Stage string `json:"stage,omitempty" jsonschema:"Filter by pipeline stage"`
}

type ListDealsOutput struct {
	Deals []DealOutput `json:"deals"`
}

func (h *DealHandlers) ListDeals(_ context.Context, request *mcp.CallToolRequest, input ListDealsInput) (*mcp.CallToolResult, ListDealsOutput, error) {
	var result []DealOutput
	for _, deal := range h.store.Deals() {
		if input.Stage != "" && deal.Stage != input.Stage {
			continue
		}
		result = append(result, dealToOutput(deal))
	}

	return nil, ListDealsOutput{Deals: result}, nil
}

type AdvanceDealInput struct {
	ID    string `json:"id" jsonschema:"Deal ID (required)"`
	Stage string `json:"stage" jsonschema:"New pipeline stage (required)"`
}

func (h *DealHandlers) AdvanceDeal(_ context.Context, request *mcp.CallToolRequest, input AdvanceDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.ID == "" {
		return nil, DealOutput{}, fmt.Errorf("id is required")
	}
	if input.Stage == "" {
		return nil, DealOutput{}, fmt.Errorf("stage is required")
	}

	dealID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	deal, err := h.store.UpdateDealStage(dealID, input.Stage)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to advance deal: %w", err)
	}

	return nil, dealToOutput(deal), nil
}

type RecordPaymentInput struct {
	DealID string `json:"deal_id" jsonschema:"Deal ID (required)"`
	Amount int64  `json:"amount" jsonschema:"Payment amount in cents (required)"`
	Status string `json:"status,omitempty" jsonschema:"Payment status: paid or pending (default paid)"`
}

func (h *DealHandlers) RecordPayment(_ context.Context, request *mcp.CallToolRequest, input RecordPaymentInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.DealID == "" {
		return nil, DealOutput{}, fmt.Errorf("deal_id is required")
	}
	if input.Amount <= 0 {
		return nil, DealOutput{}, fmt.Errorf("amount must be positive")
	}

	dealID, err := uuid.Parse(input.DealID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("invalid deal_id: %w", err)
	}

	status := input.Status
	if status == "" {
		status = models.PaymentPaid
	}

	deal, err := h.store.AddPayment(dealID, input.Amount, status)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to record payment: %w", err)
	}

	return nil, dealToOutput(deal), nil
}

func dealToOutput(deal models.Deal) DealOutput {
	output := DealOutput{
		ID:          deal.ID.String(),
		Title:       deal.Title,
		ContactID:   deal.ContactID.String(),
		Value:       deal.Value,
		Stage:       deal.Stage,
		AdSpend:     deal.AdSpend,
		ROAS:        deal.ROAS,
		Probability: deal.Probability,
		Collected:   deal.Collected(),
		Remaining:   deal.Remaining(),
		CreatedAt:   deal.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, p := range deal.Payments {
		output.Payments = append(output.Payments, PaymentOutput{
			ID:     p.ID.String(),
			Amount: p.Amount,
			Status: p.Status,
			Date:   p.Date.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return output
}
