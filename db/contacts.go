// ABOUTME: Contact database operations
// ABOUTME: Handles CRUD operations and status/value edits for contacts
package db

import (
	"database/sql"
	"time"

	"github.com/bizdesk/bizdesk/models"
	"github.com/google/uuid"
)

func CreateContact(db *sql.DB, contact *models.Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	now := time.Now()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now
	if contact.Status == "" {
		contact.Status = models.ContactLead
	}

	_, err := db.Exec(`
		INSERT INTO contacts (id, name, company, email, phone, status, value, psychology, last_contact, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, contact.ID.String(), contact.Name, contact.Company, contact.Email, contact.Phone, contact.Status, contact.Value, contact.Psychology, contact.LastContact, contact.CreatedAt, contact.UpdatedAt)

	return err
}

func GetContact(db *sql.DB, id uuid.UUID) (*models.Contact, error) {
	contact := &models.Contact{}

	err := db.QueryRow(`
		SELECT id, name, company, email, phone, status, value, psychology, last_contact, created_at, updated_at
		FROM contacts WHERE id = ?
	`, id.String()).Scan(
		&contact.ID,
		&contact.Name,
		&contact.Company,
		&contact.Email,
		&contact.Phone,
		&contact.Status,
		&contact.Value,
		&contact.Psychology,
		&contact.LastContact,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return contact, nil
}

// ListContacts returns contacts most-recent-first.
func ListContacts(db *sql.DB) ([]models.Contact, error) {
	rows, err := db.Query(`
		SELECT id, name, company, email, phone, status, value, psychology, last_contact, created_at, updated_at
		FROM contacts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Status, &c.Value, &c.Psychology, &c.LastContact, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

func UpdateContact(db *sql.DB, contact *models.Contact) error {
	contact.UpdatedAt = time.Now()

	_, err := db.Exec(`
		UPDATE contacts
		SET name = ?, company = ?, email = ?, phone = ?, status = ?, value = ?, psychology = ?, last_contact = ?, updated_at = ?
		WHERE id = ?
	`, contact.Name, contact.Company, contact.Email, contact.Phone, contact.Status, contact.Value, contact.Psychology, contact.LastContact, contact.UpdatedAt, contact.ID.String())

	return err
}

// UpsertContact creates or replaces a contact, keyed by id. Used when
// applying rows fetched from the remote mirror.
func UpsertContact(db *sql.DB, contact *models.Contact) error {
	_, err := db.Exec(`
		INSERT INTO contacts (id, name, company, email, phone, status, value, psychology, last_contact, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			company = excluded.company,
			email = excluded.email,
			phone = excluded.phone,
			status = excluded.status,
			value = excluded.value,
			psychology = excluded.psychology,
			last_contact = excluded.last_contact,
			updated_at = excluded.updated_at
	`, contact.ID.String(), contact.Name, contact.Company, contact.Email, contact.Phone, contact.Status, contact.Value, contact.Psychology, contact.LastContact, contact.CreatedAt, contact.UpdatedAt)

	return err
}
