package primary

import (
	"context"

	"github.com/dcaulton/smartcal1/internal/models"
)

// CheckService defines the primary port for one scheduled check run.
type CheckService interface {
	// RunCheck executes a single check cycle: record the current
	// temperature, evaluate the sustained-warmth window, and when the
	// condition holds, consult the model and possibly create a task.
	RunCheck(ctx context.Context) (*CheckResult, error)
}

// CheckResult summarizes what one check run did.
type CheckResult struct {
	Temp           float64
	QualifyingRuns int  // observations above threshold inside the window
	Sustained      bool // qualifying count reached the configured minimum
	Reasoning      string
	TaskCreated    bool
	TaskID         int64
	OpenTasks      []*models.Task
}
