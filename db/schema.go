// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	company TEXT,
	email TEXT,
	phone TEXT,
	status TEXT NOT NULL DEFAULT 'lead' CHECK(status IN ('lead', 'qualified', 'customer', 'churned')),
	value INTEGER NOT NULL DEFAULT 0,
	psychology TEXT,
	last_contact DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contacts_status ON contacts(status);
CREATE INDEX IF NOT EXISTS idx_contacts_created ON contacts(created_at DESC);

CREATE TABLE IF NOT EXISTS deals (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	contact_id TEXT NOT NULL,
	value INTEGER NOT NULL DEFAULT 0,
	stage TEXT NOT NULL CHECK(stage IN ('discovery', 'proposal', 'negotiation', 'closed_won', 'closed_lost')),
	ad_spend INTEGER NOT NULL DEFAULT 0,
	roas REAL NOT NULL DEFAULT 0,
	probability INTEGER NOT NULL DEFAULT 0,
	expected_close_date DATE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	last_activity_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id)
);

CREATE INDEX IF NOT EXISTS idx_deals_stage ON deals(stage);
CREATE INDEX IF NOT EXISTS idx_deals_contact_id ON deals(contact_id);

CREATE TABLE IF NOT EXISTS payments (
	id TEXT PRIMARY KEY,
	deal_id TEXT NOT NULL,
	amount INTEGER NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('paid', 'pending')),
	date DATETIME NOT NULL,
	FOREIGN KEY (deal_id) REFERENCES deals(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_payments_deal_id ON payments(deal_id);

CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	priority TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('high', 'medium', 'low')),
	status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'completed')),
	due_date DATE,
	ai_suggested INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_at DESC);

CREATE TABLE IF NOT EXISTS brand_profile (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	industry TEXT,
	description TEXT,
	target_audience TEXT,
	psychology TEXT,
	ai_memory TEXT,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS sync_state (
	service TEXT PRIMARY KEY,
	last_sync_time DATETIME,
	status TEXT CHECK(status IN ('idle', 'syncing', 'error')),
	error_message TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
