// ABOUTME: Tests for task database operations
// ABOUTME: Covers creation defaults, status toggling, and deletion
package db

import (
	"testing"

	"github.com/google/uuid"

	"github.com/bizdesk/bizdesk/models"
)

func TestCreateTaskDefaults(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	task := &models.Task{Title: "Follow up with lead"}
	if err := CreateTask(db, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Task ID was not set")
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("Expected default priority %s, got %s", models.PriorityMedium, task.Priority)
	}
	if task.Status != models.TaskPending {
		t.Errorf("Expected default status %s, got %s", models.TaskPending, task.Status)
	}
}

func TestToggleTaskStatus(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	task := &models.Task{Title: "Send proposal"}
	if err := CreateTask(db, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := UpdateTaskStatus(db, task.ID, models.TaskCompleted); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}

	found, err := GetTask(db, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if found.Status != models.TaskCompleted {
		t.Errorf("Expected status %s, got %s", models.TaskCompleted, found.Status)
	}

	if err := UpdateTaskStatus(db, task.ID, models.TaskPending); err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	found, err = GetTask(db, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if found.Status != models.TaskPending {
		t.Errorf("Expected status %s after second toggle, got %s", models.TaskPending, found.Status)
	}
}

func TestDeleteTask(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	task := &models.Task{Title: "Temporary"}
	if err := CreateTask(db, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := DeleteTask(db, task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	found, err := GetTask(db, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if found != nil {
		t.Error("Expected nil for deleted task")
	}
}

func TestDeleteMissingTaskIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := DeleteTask(db, uuid.New()); err != nil {
		t.Errorf("DeleteTask on missing id should not error, got: %v", err)
	}
}

func TestBrandProfileRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	profile := models.DefaultBrandProfile()
	profile.Name = "Acme Studio"
	profile.Industry = "Creative services"
	profile.Memory.AppendChat(models.ChatLog{Role: "user", Text: "hello"})

	if err := SaveBrandProfile(db, &profile); err != nil {
		t.Fatalf("SaveBrandProfile failed: %v", err)
	}

	found, err := GetBrandProfile(db)
	if err != nil {
		t.Fatalf("GetBrandProfile failed: %v", err)
	}
	if found == nil {
		t.Fatal("GetBrandProfile returned nil after save")
	}
	if found.Name != "Acme Studio" {
		t.Errorf("Expected name Acme Studio, got %s", found.Name)
	}
	if len(found.Memory.ChatHistory) != 1 {
		t.Fatalf("Expected 1 chat entry, got %d", len(found.Memory.ChatHistory))
	}

	// Saving again must update the singleton row, not add a second one
	found.Industry = "Media"
	if err := SaveBrandProfile(db, found); err != nil {
		t.Fatalf("SaveBrandProfile update failed: %v", err)
	}
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM brand_profile").Scan(&count); err != nil {
		t.Fatalf("Failed to count brand_profile rows: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 brand_profile row, got %d", count)
	}
}

func TestSyncStateUpsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	state, err := GetSyncState(db, "remote")
	if err != nil {
		t.Fatalf("GetSyncState failed: %v", err)
	}
	if state != nil {
		t.Fatal("Expected nil state before any update")
	}

	if err := UpdateSyncStatus(db, "remote", "syncing", nil); err != nil {
		t.Fatalf("UpdateSyncStatus failed: %v", err)
	}
	msg := "connection refused"
	if err := UpdateSyncStatus(db, "remote", "error", &msg); err != nil {
		t.Fatalf("UpdateSyncStatus failed: %v", err)
	}

	state, err = GetSyncState(db, "remote")
	if err != nil {
		t.Fatalf("GetSyncState failed: %v", err)
	}
	if state.Status != "error" {
		t.Errorf("Expected status error, got %s", state.Status)
	}
	if state.ErrorMessage == nil || *state.ErrorMessage != msg {
		t.Error("Error message was not recorded")
	}

	if err := MarkSynced(db, "remote"); err != nil {
		t.Fatalf("MarkSynced failed: %v", err)
	}
	state, err = GetSyncState(db, "remote")
	if err != nil {
		t.Fatalf("GetSyncState failed: %v", err)
	}
	if state.Status != "idle" {
		t.Errorf("Expected status idle after MarkSynced, got %s", state.Status)
	}
	if state.ErrorMessage != nil {
		t.Error("Expected error message cleared after MarkSynced")
	}
	if state.LastSyncTime == nil {
		t.Error("Expected last sync time set after MarkSynced")
	}
}
