// ABOUTME: CLI commands for task management
// ABOUTME: Add, list, toggle, and delete tasks
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/bizdesk/bizdesk/models"
	"github.com/bizdesk/bizdesk/store"
)

// AddTaskCommand handles the add-task subcommand
func AddTaskCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-task", flag.ExitOnError)
	title := fs.String("title", "", "Task title (required)")
	priority := fs.String("priority", models.PriorityMedium, "Priority (high, medium, low)")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *title == "" {
		fs.Usage()
		return fmt.Errorf("--title is required")
	}

	task := models.Task{
		Title:    *title,
		Priority: *priority,
	}
	if *due != "" {
		t, err := time.Parse("2006-01-02", *due)
		if err != nil {
			return fmt.Errorf("invalid due date: %w", err)
		}
		task.DueDate = &t
	}

	created, err := s.AddTask(task)
	if err != nil {
		return err
	}

	fmt.Printf("Added task: %s (%s)\n", created.Title, created.ID)
	return nil
}

// ListTasksCommand handles the list-tasks subcommand
func ListTasksCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("list-tasks", flag.ExitOnError)
	status := fs.String("status", "", "Filter by status (pending, completed)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tTITLE\tPRIORITY\tDUE\tID")
	count := 0
	for _, t := range s.Tasks() {
		if *status != "" && t.Status != *status {
			continue
		}
		mark := "[ ]"
		if t.Status == models.TaskCompleted {
			mark = "[x]"
		}
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		title := t.Title
		if t.AISuggested {
			title += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", mark, title, t.Priority, due, t.ID)
		count++
	}
	w.Flush()

	fmt.Printf("\n%d task(s)\n", count)
	return nil
}

// ToggleTaskCommand handles the toggle-task subcommand
func ToggleTaskCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("toggle-task", flag.ExitOnError)
	id := fs.String("id", "", "Task ID (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		fs.Usage()
		return fmt.Errorf("--id is required")
	}

	taskID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid task ID: %w", err)
	}

	task, found, err := s.ToggleTask(taskID)
	if err != nil {
		return err
	}
	if !found {
		fmt.Printf("No task with ID %s; nothing to toggle\n", taskID)
		return nil
	}

	fmt.Printf("Task %q is now %s\n", task.Title, task.Status)
	return nil
}

// DeleteTaskCommand handles the delete-task subcommand
func DeleteTaskCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("delete-task", flag.ExitOnError)
	id := fs.String("id", "", "Task ID (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		fs.Usage()
		return fmt.Errorf("--id is required")
	}

	taskID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid task ID: %w", err)
	}

	if err := s.DeleteTask(taskID); err != nil {
		return err
	}

	fmt.Println("Task deleted")
	return nil
}
