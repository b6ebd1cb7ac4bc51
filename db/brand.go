// ABOUTME: Brand profile database operations
// ABOUTME: Persists the singleton brand profile row with JSON-encoded sub-objects
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizdesk/bizdesk/models"
)

// GetBrandProfile loads the singleton brand profile, or nil if none saved.
func GetBrandProfile(db *sql.DB) (*models.BrandProfile, error) {
	profile := &models.BrandProfile{}
	var psychology, memory sql.NullString

	err := db.QueryRow(`
		SELECT id, name, industry, description, target_audience, psychology, ai_memory, updated_at
		FROM brand_profile WHERE id = ?
	`, models.BrandProfileID).Scan(
		&profile.ID,
		&profile.Name,
		&profile.Industry,
		&profile.Description,
		&profile.TargetAudience,
		&psychology,
		&memory,
		&profile.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if psychology.Valid && psychology.String != "" {
		if err := json.Unmarshal([]byte(psychology.String), &profile.Psychology); err != nil {
			return nil, fmt.Errorf("failed to decode brand psychology: %w", err)
		}
	}
	if memory.Valid && memory.String != "" {
		if err := json.Unmarshal([]byte(memory.String), &profile.Memory); err != nil {
			return nil, fmt.Errorf("failed to decode brand memory: %w", err)
		}
	}

	return profile, nil
}

// SaveBrandProfile upserts the singleton brand profile row.
func SaveBrandProfile(db *sql.DB, profile *models.BrandProfile) error {
	if profile.ID == "" {
		profile.ID = models.BrandProfileID
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now()
	}

	psychology, err := json.Marshal(profile.Psychology)
	if err != nil {
		return fmt.Errorf("failed to encode brand psychology: %w", err)
	}
	memory, err := json.Marshal(profile.Memory)
	if err != nil {
		return fmt.Errorf("failed to encode brand memory: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO brand_profile (id, name, industry, description, target_audience, psychology, ai_memory, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			industry = excluded.industry,
			description = excluded.description,
			target_audience = excluded.target_audience,
			psychology = excluded.psychology,
			ai_memory = excluded.ai_memory,
			updated_at = excluded.updated_at
	`, profile.ID, profile.Name, profile.Industry, profile.Description, profile.TargetAudience, string(psychology), string(memory), profile.UpdatedAt)

	return err
}
