// Package models contains domain types for smartcal entities.
// SQL persistence lives in internal/adapters/sqlite/*.go.
package models

import "time"

// Task represents a maintenance task created by the check agent.
// Description and CreatedAt are immutable after creation.
type Task struct {
	ID          int64
	Description string
	Status      string
	SnoozeUntil *time.Time // non-nil iff Status == snoozed
	CreatedAt   time.Time
}

// Task status constants
const (
	TaskStatusPending  = "pending"
	TaskStatusSnoozed  = "snoozed"
	TaskStatusResolved = "resolved"
)

// Open reports whether the task still needs attention.
func (t *Task) Open() bool {
	return t.Status == TaskStatusPending || t.Status == TaskStatusSnoozed
}
