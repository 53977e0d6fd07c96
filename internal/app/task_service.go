package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dcaulton/smartcal1/internal/models"
	"github.com/dcaulton/smartcal1/internal/ports/primary"
	"github.com/dcaulton/smartcal1/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskRepo secondary.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(taskRepo secondary.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// CreateTask creates a new pending task.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, description string) (*models.Task, error) {
	id, err := s.taskRepo.Create(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created task: %w", err)
	}

	return task, nil
}

// SnoozeTask defers a task until now plus the parsed duration spec.
func (s *TaskServiceImpl) SnoozeTask(ctx context.Context, taskID int64, durationSpec string) (*primary.SnoozeResult, error) {
	until := s.now().Add(ParseSnoozeDuration(durationSpec))

	if err := s.taskRepo.Snooze(ctx, taskID, until); err != nil {
		return nil, err
	}

	return &primary.SnoozeResult{TaskID: taskID, Until: until}, nil
}

// ResolveTask marks a task resolved.
func (s *TaskServiceImpl) ResolveTask(ctx context.Context, taskID int64) error {
	return s.taskRepo.Resolve(ctx, taskID)
}

// ListOpenTasks returns pending and snoozed tasks, newest first.
func (s *TaskServiceImpl) ListOpenTasks(ctx context.Context, limit int) ([]*models.Task, error) {
	tasks, err := s.taskRepo.ListOpen(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list open tasks: %w", err)
	}
	return tasks, nil
}

// ListAllTasks returns tasks of every status, newest first.
func (s *TaskServiceImpl) ListAllTasks(ctx context.Context, limit int) ([]*models.Task, error) {
	tasks, err := s.taskRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ParseSnoozeDuration parses specs like "1d" (days) and "3h" (hours).
// Any other suffix or a non-numeric magnitude falls back to one day; the
// leniency is deliberate so a typo defers the task instead of dropping the
// request.
func ParseSnoozeDuration(spec string) time.Duration {
	const fallback = 24 * time.Hour

	if len(spec) < 2 {
		return fallback
	}

	magnitude, err := strconv.Atoi(spec[:len(spec)-1])
	if err != nil {
		return fallback
	}

	switch spec[len(spec)-1] {
	case 'd':
		return time.Duration(magnitude) * 24 * time.Hour
	case 'h':
		return time.Duration(magnitude) * time.Hour
	default:
		return fallback
	}
}
