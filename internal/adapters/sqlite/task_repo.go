// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dcaulton/smartcal1/internal/models"
	"github.com/dcaulton/smartcal1/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskSelectCols = "id, description, status, snooze_until, created_at"

// scanTask scans a task row into a models.Task.
func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*models.Task, error) {
	var (
		task        models.Task
		snoozeUntil sql.NullTime
	)

	err := scanner.Scan(&task.ID, &task.Description, &task.Status, &snoozeUntil, &task.CreatedAt)
	if err != nil {
		return nil, err
	}

	if snoozeUntil.Valid {
		t := snoozeUntil.Time
		task.SnoozeUntil = &t
	}

	return &task, nil
}

// Create persists a new pending task and returns its assigned id.
// Timestamps are bound explicitly so every row uses the driver's time
// format and comparisons against Go times stay consistent.
func (r *TaskRepository) Create(ctx context.Context, description string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (description, status, created_at) VALUES (?, ?, ?)",
		description, models.TaskStatusPending, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read task id: %w", err)
	}

	return id, nil
}

// GetByID retrieves a task by its id.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE id = ?",
		id,
	)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// ListOpen returns pending and snoozed tasks, most recently created first.
func (r *TaskRepository) ListOpen(ctx context.Context, limit int) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE status IN (?, ?) ORDER BY created_at DESC, id DESC LIMIT ?",
		models.TaskStatusPending, models.TaskStatusSnoozed, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list open tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// List returns tasks of every status, most recently created first.
func (r *TaskRepository) List(ctx context.Context, limit int) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

func collectTasks(rows *sql.Rows) ([]*models.Task, error) {
	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// Snooze sets a task's status to snoozed until the given instant.
// A second snooze overwrites the prior deadline.
func (r *TaskRepository) Snooze(ctx context.Context, id int64, until time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET status = ?, snooze_until = ? WHERE id = ?",
		models.TaskStatusSnoozed, until.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to snooze task: %w", err)
	}

	return requireRow(res, id)
}

// Resolve marks a task resolved and clears any snooze deadline.
func (r *TaskRepository) Resolve(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET status = ?, snooze_until = NULL WHERE id = ?",
		models.TaskStatusResolved, id,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve task: %w", err)
	}

	return requireRow(res, id)
}

// requireRow maps a zero-row update to ErrNotFound.
func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %d: %w", id, secondary.ErrNotFound)
	}
	return nil
}
