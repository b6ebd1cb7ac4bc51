// ABOUTME: Tests for deal and payment database operations
// ABOUTME: Covers deal creation, stage updates, payments, and upserts
package db

import (
	"testing"

	"github.com/google/uuid"

	"github.com/bizdesk/bizdesk/models"
)

func TestCreateDeal(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := &models.Contact{Name: "Dana Fields", Company: "Fields Media"}
	if err := CreateContact(db, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	deal := &models.Deal{
		Title:     "Website Redesign",
		ContactID: contact.ID,
		Value:     500000,
	}

	if err := CreateDeal(db, deal); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	if deal.ID == uuid.Nil {
		t.Error("Deal ID was not set")
	}
	if deal.Stage != models.StageDiscovery {
		t.Errorf("Expected default stage %s, got %s", models.StageDiscovery, deal.Stage)
	}
	if deal.LastActivityAt.IsZero() {
		t.Error("LastActivityAt was not set")
	}
}

func TestUpdateDealStage(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := &models.Contact{Name: "Dana Fields"}
	if err := CreateContact(db, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	deal := &models.Deal{
		Title:     "Launch Campaign",
		ContactID: contact.ID,
		Value:     250000,
	}
	if err := CreateDeal(db, deal); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	deal.Stage = models.StageNegotiation
	deal.Probability = 70
	if err := UpdateDeal(db, deal); err != nil {
		t.Fatalf("UpdateDeal failed: %v", err)
	}

	found, err := GetDeal(db, deal.ID)
	if err != nil {
		t.Fatalf("GetDeal failed: %v", err)
	}
	if found == nil {
		t.Fatal("GetDeal returned nil for existing deal")
	}
	if found.Stage != models.StageNegotiation {
		t.Errorf("Expected stage %s, got %s", models.StageNegotiation, found.Stage)
	}
	if found.Probability != 70 {
		t.Errorf("Expected probability 70, got %d", found.Probability)
	}
}

func TestAddPayment(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := &models.Contact{Name: "Dana Fields"}
	if err := CreateContact(db, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	deal := &models.Deal{
		Title:     "Retainer",
		ContactID: contact.ID,
		Value:     500000,
	}
	if err := CreateDeal(db, deal); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}

	payment := &models.Payment{
		DealID: deal.ID,
		Amount: 200000,
		Status: models.PaymentPaid,
	}
	if err := AddPayment(db, payment); err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	if payment.ID == uuid.Nil {
		t.Error("Payment ID was not set")
	}

	pending := &models.Payment{
		DealID: deal.ID,
		Amount: 100000,
		Status: models.PaymentPending,
	}
	if err := AddPayment(db, pending); err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}

	found, err := GetDeal(db, deal.ID)
	if err != nil {
		t.Fatalf("GetDeal failed: %v", err)
	}
	if len(found.Payments) != 2 {
		t.Fatalf("Expected 2 payments, got %d", len(found.Payments))
	}
	if found.Collected() != 200000 {
		t.Errorf("Expected collected 200000, got %d", found.Collected())
	}
	if found.Remaining() != 300000 {
		t.Errorf("Expected remaining 300000, got %d", found.Remaining())
	}
}

func TestUpsertDealReplacesPayments(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := &models.Contact{Name: "Dana Fields"}
	if err := CreateContact(db, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	deal := &models.Deal{
		Title:     "Audit",
		ContactID: contact.ID,
		Value:     100000,
	}
	if err := CreateDeal(db, deal); err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	if err := AddPayment(db, &models.Payment{DealID: deal.ID, Amount: 50000, Status: models.PaymentPaid}); err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}

	// Remote row carries a single different payment
	remote := *deal
	remote.Title = "Audit (renamed)"
	remote.Payments = []models.Payment{
		{ID: uuid.New(), DealID: deal.ID, Amount: 75000, Status: models.PaymentPending, Date: deal.CreatedAt},
	}
	if err := UpsertDeal(db, &remote); err != nil {
		t.Fatalf("UpsertDeal failed: %v", err)
	}

	found, err := GetDeal(db, deal.ID)
	if err != nil {
		t.Fatalf("GetDeal failed: %v", err)
	}
	if found.Title != "Audit (renamed)" {
		t.Errorf("Expected upserted title, got %s", found.Title)
	}
	if len(found.Payments) != 1 {
		t.Fatalf("Expected 1 payment after upsert, got %d", len(found.Payments))
	}
	if found.Payments[0].Amount != 75000 {
		t.Errorf("Expected payment amount 75000, got %d", found.Payments[0].Amount)
	}
}

func TestListDealsOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := &models.Contact{Name: "Dana Fields"}
	if err := CreateContact(db, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	for _, title := range []string{"First", "Second", "Third"} {
		d := &models.Deal{Title: title, ContactID: contact.ID}
		if err := CreateDeal(db, d); err != nil {
			t.Fatalf("CreateDeal failed: %v", err)
		}
	}

	deals, err := ListDeals(db)
	if err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}
	if len(deals) != 3 {
		t.Fatalf("Expected 3 deals, got %d", len(deals))
	}
}
