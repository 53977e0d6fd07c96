// Package secondary defines the driven ports: interfaces the application
// core needs from infrastructure (persistence). Adapters in
// internal/adapters implement these.
package secondary

import (
	"context"
	"errors"
	"time"

	"github.com/dcaulton/smartcal1/internal/models"
)

// ErrNotFound is returned when a referenced task does not exist.
// Callers should check with errors.Is.
var ErrNotFound = errors.New("task not found")

// TaskRepository persists maintenance tasks.
type TaskRepository interface {
	// Create inserts a pending task and returns its assigned id.
	Create(ctx context.Context, description string) (int64, error)

	// GetByID retrieves a task by its id.
	GetByID(ctx context.Context, id int64) (*models.Task, error)

	// ListOpen returns pending and snoozed tasks, most recently created
	// first, truncated to limit.
	ListOpen(ctx context.Context, limit int) ([]*models.Task, error)

	// List returns all tasks regardless of status, most recent first.
	List(ctx context.Context, limit int) ([]*models.Task, error)

	// Snooze sets status to snoozed and snooze_until to until.
	// Re-snoozing overwrites the prior deadline silently.
	Snooze(ctx context.Context, id int64, until time.Time) error

	// Resolve marks a task resolved and clears snooze_until.
	Resolve(ctx context.Context, id int64) error
}

// ObservationRepository persists the append-only temperature log.
type ObservationRepository interface {
	// Record appends an observation at the current instant.
	Record(ctx context.Context, temp float64) (int64, error)

	// CountSince returns the number of observations with temp strictly
	// greater than threshold and timestamp strictly after since.
	CountSince(ctx context.Context, threshold float64, since time.Time) (int, error)
}
