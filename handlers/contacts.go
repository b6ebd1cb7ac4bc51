// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, list_contacts, and update_contact tools
package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bizdesk/bizdesk/models"
	"github.com/bizdesk/bizdesk/store"
)

type ContactHandlers struct {
	store *store.Store
}

func NewContactHandlers(s *store.Store) *ContactHandlers {
	return &ContactHandlers{store: s}
}

type AddContactInput struct {
	Name    string `json:"name" jsonschema:"Contact name (required)"`
	Company string `json:"company,omitempty" jsonschema:"Company name"`
	Email   string `json:"email,omitempty" jsonschema:"Contact email address"`
	Phone   string `json:"phone,omitempty" jsonschema:"Contact phone number"`
	Status  string `json:"status,omitempty" jsonschema:"Pipeline status: lead, qualified, customer, or churned (default lead)"`
	Value   int64  `json:"value,omitempty" jsonschema:"Lifetime value in cents"`
}

type ContactOutput struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Company     string  `json:"company,omitempty"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Status      string  `json:"status"`
	Value       int64   `json:"value"`
	Psychology  string  `json:"psychology,omitempty"`
	LastContact *string `json:"last_contact,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (h *ContactHandlers) AddContact(_ context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.Name == "" {
		return nil, ContactOutput{}, fmt.Errorf("name is required")
	}

	contact, err := h.store.AddContact(models.Contact{
		Name:    input.Name,
		Company: input.Company,
		Email:   input.Email,
		Phone:   input.Phone,
		Status:  input.Status,
		Value:   input.Value,
	})
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to add contact: %w", err)
	}

	return nil, contactToOutput(contact), nil
}

type ListContactsInput struct {
	Status string `json:"status,omitempty" jsonschema:"Filter by pipeline status"`
}

type ListContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
}

func (h *ContactHandlers) ListContacts(_ context.Context, request *mcp.CallToolRequest, input ListContactsInput) (*mcp.CallToolResult, ListContactsOutput, error) {
	var result []ContactOutput
	for _, contact := range h.store.Contacts() {
		if input.Status != "" && contact.Status != input.Status {
			continue
		}
		result = append(result, contactToOutput(contact))
	}

	return nil, ListContactsOutput{Contacts: result}, nil
}

type UpdateContactInput struct {
	ID     string `json:"id" jsonschema:"Contact ID (required)"`
	Name   string `json:"name,omitempty" jsonschema:"Updated contact name"`
	Email  string `json:"email,omitempty" jsonschema:"Updated email address"`
	Phone  string `json:"phone,omitempty" jsonschema:"Updated phone number"`
	Status string `json:"status,omitempty" jsonschema:"Updated pipeline status"`
	Value  *int64 `json:"value,omitempty" jsonschema:"Updated lifetime value in cents"`
}

func (h *ContactHandlers) UpdateContact(_ context.Context, request *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ID == "" {
		return nil, ContactOutput{}, fmt.Errorf("id is required")
	}

	contactID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	update := models.ContactUpdate{Value: input.Value}
	if input.Name != "" {
		update.Name = &input.Name
	}
	if input.Email != "" {
		update.Email = &input.Email
	}
	if input.Phone != "" {
		update.Phone = &input.Phone
	}
	if input.Status != "" {
		update.Status = &input.Status
	}

	contact, err := h.store.UpdateContact(contactID, update)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to update contact: %w", err)
	}

	return nil, contactToOutput(contact), nil
}

func contactToOutput(contact models.Contact) ContactOutput {
	output := ContactOutput{
		ID:         contact.ID.String(),
		Name:       contact.Name,
		Company:    contact.Company,
		Email:      contact.Email,
		Phone:      contact.Phone,
		Status:     contact.Status,
		Value:      contact.Value,
		Psychology: contact.Psychology,
		CreatedAt:  contact.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:  contact.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	if contact.LastContact != nil {
		lc := contact.LastContact.Format("2006-01-02T15:04:05Z07:00")
		output.LastContact = &lc
	}

	return output
}
