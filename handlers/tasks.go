// ABOUTME: Task MCP tool handlers
// ABOUTME: Implements add_task, list_tasks, toggle_task, and delete_task tools
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

type TaskHandlers struct {
	store *store.Store
}

func NewTaskHandlers(s *store.Store) *TaskHandlers {
	return &TaskHandlers{store: s}
}

type AddTaskInput struct {
	Title    string `json:"title" jsonschema:"Task title (required)"`
	Priority string `json:"priority,omitempty" jsonschema:"Priority: high, medium, or low (default medium)"`
	DueDate  string `json:"due_date,omitempty" jsonschema:"Due date (ISO 8601)"`
}

type TaskOutput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date,omitempty"`
	AISuggested bool    `json:"ai_suggested"`
	CreatedAt   string  `json:"created_at"`
}

func (h *TaskHandlers) AddTask(_ context.Context, request *mcp.CallToolRequest, input AddTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	if input.Title == "" {
		return nil, TaskOutput{}, fmt.Errorf("title is required")
	}

	task := models.Task{
		Title:    input.Title,
		Priority: input.Priority,
	}
	if input.DueDate != "" {
		due, err := time.Parse(time.RFC3339, input.DueDate)
		if err != nil {
			return nil, TaskOutput{}, fmt.Errorf("invalid due_date (use ISO 8601/RFC3339): %w", err)
		}
		task.DueDate = &due
	}

	created, err := h.store.AddTask(task)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to add task: %w", err)
	}

	return nil, taskToOutput(created), nil
}

type ListTasksInput struct {
	Status string `json:"status,omitempty" jsonschema:"Filter by status: pending or completed"`
}

type ListTasksOutput struct {
	Tasks []TaskOutput `json:"tasks"`
}

func (h *TaskHandlers) ListTasks(_ context.Context, request *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, ListTasksOutput, error) {
	var result []TaskOutput
	for _, task := range h.store.Tasks() {
		if input.Status != "" && task.Status != input.Status {
			continue
		}
		result = append(result, taskToOutput(task))
	}

	return nil, ListTasksOutput{Tasks: result}, nil
}

type ToggleTaskInput struct {
	ID string `json:"id" jsonschema:"Task ID (required)"`
}

func (h *TaskHandlers) ToggleTask(_ context.Context, request *mcp.CallToolRequest, input ToggleTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	if input.ID == "" {
		return nil, TaskOutput{}, fmt.Errorf("id is required")
	}

	taskID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	task, found, err := h.store.ToggleTask(taskID)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to toggle task: %w", err)
	}
	if !found {
		return nil, TaskOutput{}, fmt.Errorf("task %s not found", taskID)
	}

	return nil, taskToOutput(task), nil
}

type DeleteTaskInput struct {
	ID string `json:"id" jsonschema:"Task ID (required)"`
}

type DeleteTaskOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *TaskHandlers) DeleteTask(_ context.Context, request *mcp.CallToolRequest, input DeleteTaskInput) (*mcp.CallToolResult, DeleteTaskOutput, error) {
	if input.ID == "" {
		return nil, DeleteTaskOutput{}, fmt.Errorf("id is required")
	}

	taskID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, DeleteTaskOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	if err := h.store.DeleteTask(taskID); err != nil {
		return nil, DeleteTaskOutput{}, fmt.Errorf("failed to delete task: %w", err)
	}

	return nil, DeleteTaskOutput{
		Success: true,
		Message: fmt.Sprintf("Deleted task: %s", taskID),
	}, nil
}

func taskToOutput(task models.Task) TaskOutput {
	output := TaskOutput{
		ID:          task.ID.String(),
		Title:       task.Title,
		Priority:    task.Priority,
		Status:      task.Status,
		AISuggested: task.AISuggested,
		CreatedAt:   task.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if task.DueDate != nil {
		due := task.DueDate.Format("2006-01-02T15:04:05Z07:00")
		output.DueDate = &due
	}
	return output
}
