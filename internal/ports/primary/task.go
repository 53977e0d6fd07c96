package primary

import (
	"context"
	"time"

	"github.com/dcaulton/smartcal1/internal/models"
)

// TaskService defines the primary port for task lifecycle operations.
type TaskService interface {
	// CreateTask creates a new pending task.
	CreateTask(ctx context.Context, description string) (*models.Task, error)

	// SnoozeTask defers a task by a duration spec like "1d" or "3h".
	// Malformed specs fall back to one day.
	SnoozeTask(ctx context.Context, taskID int64, durationSpec string) (*SnoozeResult, error)

	// ResolveTask marks a task resolved.
	ResolveTask(ctx context.Context, taskID int64) error

	// ListOpenTasks returns pending and snoozed tasks, newest first.
	ListOpenTasks(ctx context.Context, limit int) ([]*models.Task, error)

	// ListAllTasks returns tasks of every status, newest first.
	ListAllTasks(ctx context.Context, limit int) ([]*models.Task, error)
}

// SnoozeResult contains the outcome of a snooze operation.
type SnoozeResult struct {
	TaskID int64
	Until  time.Time
}
