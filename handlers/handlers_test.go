// ABOUTME: Tests for MCP tool handlers
// ABOUTME: Exercises tool input validation and store round-trips
package handlers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bizdesk/bizdesk/db"
	"github.com/bizdesk/bizdesk/models"
	"github.com/bizdesk/bizdesk/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	s, err := store.New(database, nil)
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	return s
}

func TestAddContactRequiresName(t *testing.T) {
	h := NewContactHandlers(setupTestStore(t))

	_, _, err := h.AddContact(context.Background(), nil, AddContactInput{})
	if err == nil {
		t.Error("Expected error for missing name")
	}
}

func TestAddAndListContacts(t *testing.T) {
	h := NewContactHandlers(setupTestStore(t))

	_, created, err := h.AddContact(context.Background(), nil, AddContactInput{
		Name:    "Dana Fields",
		Company: "Fields Media",
		Status:  models.ContactQualified,
		Value:   250000,
	})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}
	if created.ID == "" {
		t.Error("Contact ID was not set")
	}
	if created.Status != models.ContactQualified {
		t.Errorf("Expected status %s, got %s", models.ContactQualified, created.Status)
	}

	_, list, err := h.ListContacts(context.Background(), nil, ListContactsInput{})
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	if len(list.Contacts) != 1 {
		t.Fatalf("Expected 1 contact, got %d", len(list.Contacts))
	}

	_, filtered, err := h.ListContacts(context.Background(), nil, ListContactsInput{Status: models.ContactChurned})
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	if len(filtered.Contacts) != 0 {
		t.Errorf("Expected no churned contacts, got %d", len(filtered.Contacts))
	}
}

func TestUpdateContactInvalidID(t *testing.T) {
	h := NewContactHandlers(setupTestStore(t))

	_, _, err := h.UpdateContact(context.Background(), nil, UpdateContactInput{ID: "not-a-uuid"})
	if err == nil {
		t.Error("Expected error for invalid id")
	}
}

func TestDealLifecycle(t *testing.T) {
	s := setupTestStore(t)
	contacts := NewContactHandlers(s)
	deals := NewDealHandlers(s)

	_, contact, err := contacts.AddContact(context.Background(), nil, AddContactInput{Name: "Dana"})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	_, deal, err := deals.CreateDeal(context.Background(), nil, CreateDealInput{
		Title:     "Website Redesign",
		ContactID: contact.ID,
		Value:     500000,
	})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	if deal.Stage != models.StageDiscovery {
		t.Errorf("Expected default stage discovery, got %s", deal.Stage)
	}

	_, advanced, err := deals.AdvanceDeal(context.Background(), nil, AdvanceDealInput{
		ID:    deal.ID,
		Stage: models.StageNegotiation,
	})
	if err != nil {
		t.Fatalf("AdvanceDeal failed: %v", err)
	}
	if advanced.Stage != models.StageNegotiation {
		t.Errorf("Expected stage negotiation, got %s", advanced.Stage)
	}

	_, _, err = deals.AdvanceDeal(context.Background(), nil, AdvanceDealInput{ID: deal.ID, Stage: "bogus"})
	if err == nil {
		t.Error("Expected error for invalid stage")
	}

	_, paid, err := deals.RecordPayment(context.Background(), nil, RecordPaymentInput{
		DealID: deal.ID,
		Amount: 200000,
	})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if paid.Collected != 200000 {
		t.Errorf("Expected collected 200000, got %d", paid.Collected)
	}
	if paid.Remaining != 300000 {
		t.Errorf("Expected remaining 300000, got %d", paid.Remaining)
	}
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	h := NewDealHandlers(setupTestStore(t))

	_, _, err := h.RecordPayment(context.Background(), nil, RecordPaymentInput{DealID: "x", Amount: 0})
	if err == nil {
		t.Error("Expected error for zero amount")
	}
}

func TestTaskToolRoundTrip(t *testing.T) {
	h := NewTaskHandlers(setupTestStore(t))

	_, task, err := h.AddTask(context.Background(), nil, AddTaskInput{Title: "Send invoice", Priority: models.PriorityHigh})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if task.Status != models.TaskPending {
		t.Errorf("Expected pending status, got %s", task.Status)
	}

	_, toggled, err := h.ToggleTask(context.Background(), nil, ToggleTaskInput{ID: task.ID})
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if toggled.Status != models.TaskCompleted {
		t.Errorf("Expected completed status, got %s", toggled.Status)
	}

	_, deleted, err := h.DeleteTask(context.Background(), nil, DeleteTaskInput{ID: task.ID})
	if err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if !deleted.Success {
		t.Error("Expected delete to succeed")
	}

	_, list, err := h.ListTasks(context.Background(), nil, ListTasksInput{})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(list.Tasks) != 0 {
		t.Errorf("Expected no tasks after delete, got %d", len(list.Tasks))
	}
}

func TestBrandTools(t *testing.T) {
	h := NewBrandHandlers(setupTestStore(t))

	_, updated, err := h.UpdateBrand(context.Background(), nil, UpdateBrandInput{
		Name:      "Acme Studio",
		Industry:  "Creative services",
		Archetype: "Sage",
		Tone:      "Direct",
	})
	if err != nil {
		t.Fatalf("UpdateBrand failed: %v", err)
	}
	if updated.Name != "Acme Studio" {
		t.Errorf("Expected updated name, got %s", updated.Name)
	}
	if updated.Archetype != "Sage" {
		t.Errorf("Expected archetype Sage, got %s", updated.Archetype)
	}

	_, got, err := h.GetBrand(context.Background(), nil, GetBrandInput{})
	if err != nil {
		t.Fatalf("GetBrand failed: %v", err)
	}
	if got.Tone != "Direct" {
		t.Errorf("Expected tone Direct, got %s", got.Tone)
	}
}
