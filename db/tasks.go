// ABOUTME: Task database operations
// ABOUTME: Handles task creation, status toggling, and deletion
package db

import (
	"database/sql"
	"time"

	"github.com/bizdesk/bizdesk/models"
	"github.com/google/uuid"
)

func CreateTask(db *sql.DB, task *models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Status == "" {
		task.Status = models.TaskPending
	}

	_, err := db.Exec(`
		INSERT INTO tasks (id, title, priority, status, due_date, ai_suggested, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID.String(), task.Title, task.Priority, task.Status, task.DueDate, task.AISuggested, task.CreatedAt, task.UpdatedAt)

	return err
}

func GetTask(db *sql.DB, id uuid.UUID) (*models.Task, error) {
	task := &models.Task{}

	err := db.QueryRow(`
		SELECT id, title, priority, status, due_date, ai_suggested, created_at, updated_at
		FROM tasks WHERE id = ?
	`, id.String()).Scan(
		&task.ID,
		&task.Title,
		&task.Priority,
		&task.Status,
		&task.DueDate,
		&task.AISuggested,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return task, nil
}

// ListTasks returns tasks most-recent-first.
func ListTasks(db *sql.DB) ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT id, title, priority, status, due_date, ai_suggested, created_at, updated_at
		FROM tasks
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Priority, &t.Status, &t.DueDate, &t.AISuggested, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func UpdateTaskStatus(db *sql.DB, id uuid.UUID, status string) error {
	_, err := db.Exec(`
		UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?
	`, status, time.Now(), id.String())

	return err
}

func DeleteTask(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`DELETE FROM tasks WHERE id = ?`, id.String())
	return err
}

// UpsertTask creates or replaces a task, keyed by id.
func UpsertTask(db *sql.DB, task *models.Task) error {
	_, err := db.Exec(`
		INSERT INTO tasks (id, title, priority, status, due_date, ai_suggested, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			priority = excluded.priority,
			status = excluded.status,
			due_date = excluded.due_date,
			ai_suggested = excluded.ai_suggested,
			updated_at = excluded.updated_at
	`, task.ID.String(), task.Title, task.Priority, task.Status, task.DueDate, task.AISuggested, task.CreatedAt, task.UpdatedAt)

	return err
}
