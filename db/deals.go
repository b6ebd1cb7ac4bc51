// ABOUTME: Deal and payment database operations
// ABOUTME: Handles deal lifecycle, stage management, and payment tracking
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bizdesk/bizdesk/models"
	"github.com/google/uuid"
)

func CreateDeal(db *sql.DB, deal *models.Deal) error {
	if deal.ID == uuid.Nil {
		deal.ID = uuid.New()
	}
	now := time.Now()
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = now
	}
	deal.UpdatedAt = now
	deal.LastActivityAt = now

	if deal.Stage == "" {
		deal.Stage = models.StageDiscovery
	}

	_, err := db.Exec(`
		INSERT INTO deals (id, title, contact_id, value, stage, ad_spend, roas, probability, expected_close_date, created_at, updated_at, last_activity_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, deal.ID.String(), deal.Title, deal.ContactID.String(), deal.Value, deal.Stage, deal.AdSpend, deal.ROAS, deal.Probability, deal.ExpectedCloseDate, deal.CreatedAt, deal.UpdatedAt, deal.LastActivityAt)

	return err
}

func GetDeal(db *sql.DB, id uuid.UUID) (*models.Deal, error) {
	deal := &models.Deal{}

	err := db.QueryRow(`
		SELECT id, title, contact_id, value, stage, ad_spend, roas, probability, expected_close_date, created_at, updated_at, last_activity_at
		FROM deals WHERE id = ?
	`, id.String()).Scan(
		&deal.ID,
		&deal.Title,
		&deal.ContactID,
		&deal.Value,
		&deal.Stage,
		&deal.AdSpend,
		&deal.ROAS,
		&deal.Probability,
		&deal.ExpectedCloseDate,
		&deal.CreatedAt,
		&deal.UpdatedAt,
		&deal.LastActivityAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	payments, err := GetPayments(db, deal.ID)
	if err != nil {
		return nil, err
	}
	deal.Payments = payments

	return deal, nil
}

// ListDeals returns deals most-recent-first with their payments attached.
func ListDeals(db *sql.DB) ([]models.Deal, error) {
	rows, err := db.Query(`
		SELECT id, title, contact_id, value, stage, ad_spend, roas, probability, expected_close_date, created_at, updated_at, last_activity_at
		FROM deals
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []models.Deal
	for rows.Next() {
		var d models.Deal
		if err := rows.Scan(&d.ID, &d.Title, &d.ContactID, &d.Value, &d.Stage, &d.AdSpend, &d.ROAS, &d.Probability, &d.ExpectedCloseDate, &d.CreatedAt, &d.UpdatedAt, &d.LastActivityAt); err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range deals {
		payments, err := GetPayments(db, deals[i].ID)
		if err != nil {
			return nil, err
		}
		deals[i].Payments = payments
	}

	return deals, nil
}

func UpdateDeal(db *sql.DB, deal *models.Deal) error {
	now := time.Now()
	deal.UpdatedAt = now
	deal.LastActivityAt = now

	_, err := db.Exec(`
		UPDATE deals
		SET title = ?, contact_id = ?, value = ?, stage = ?, ad_spend = ?, roas = ?, probability = ?, expected_close_date = ?, updated_at = ?, last_activity_at = ?
		WHERE id = ?
	`, deal.Title, deal.ContactID.String(), deal.Value, deal.Stage, deal.AdSpend, deal.ROAS, deal.Probability, deal.ExpectedCloseDate, deal.UpdatedAt, deal.LastActivityAt, deal.ID.String())

	return err
}

// UpsertDeal creates or replaces a deal and its payments, keyed by id.
func UpsertDeal(db *sql.DB, deal *models.Deal) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	_, err = tx.Exec(`
		INSERT INTO deals (id, title, contact_id, value, stage, ad_spend, roas, probability, expected_close_date, created_at, updated_at, last_activity_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			contact_id = excluded.contact_id,
			value = excluded.value,
			stage = excluded.stage,
			ad_spend = excluded.ad_spend,
			roas = excluded.roas,
			probability = excluded.probability,
			expected_close_date = excluded.expected_close_date,
			updated_at = excluded.updated_at,
			last_activity_at = excluded.last_activity_at
	`, deal.ID.String(), deal.Title, deal.ContactID.String(), deal.Value, deal.Stage, deal.AdSpend, deal.ROAS, deal.Probability, deal.ExpectedCloseDate, deal.CreatedAt, deal.UpdatedAt, deal.LastActivityAt)
	if err != nil {
		return fmt.Errorf("failed to upsert deal: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM payments WHERE deal_id = ?`, deal.ID.String())
	if err != nil {
		return fmt.Errorf("failed to clear payments: %w", err)
	}

	for _, p := range deal.Payments {
		_, err = tx.Exec(`
			INSERT INTO payments (id, deal_id, amount, status, date)
			VALUES (?, ?, ?, ?, ?)
		`, p.ID.String(), deal.ID.String(), p.Amount, p.Status, p.Date)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
	}

	return tx.Commit()
}

func AddPayment(db *sql.DB, payment *models.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.Date.IsZero() {
		payment.Date = time.Now()
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(`
		INSERT INTO payments (id, deal_id, amount, status, date)
		VALUES (?, ?, ?, ?, ?)
	`, payment.ID.String(), payment.DealID.String(), payment.Amount, payment.Status, payment.Date)
	if err != nil {
		return err
	}

	// Update deal's last_activity_at
	_, err = tx.Exec(`
		UPDATE deals SET last_activity_at = ?, updated_at = ? WHERE id = ?
	`, payment.Date, payment.Date, payment.DealID.String())
	if err != nil {
		return err
	}

	return tx.Commit()
}

func GetPayments(db *sql.DB, dealID uuid.UUID) ([]models.Payment, error) {
	rows, err := db.Query(`
		SELECT id, deal_id, amount, status, date
		FROM payments
		WHERE deal_id = ?
		ORDER BY date ASC
	`, dealID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.DealID, &p.Amount, &p.Status, &p.Date); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}
