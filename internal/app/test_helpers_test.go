package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dcaulton/smartcal1/internal/mlflow"
	"github.com/dcaulton/smartcal1/internal/models"
	"github.com/dcaulton/smartcal1/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockTaskRepository implements secondary.TaskRepository for testing.
type mockTaskRepository struct {
	tasks      map[int64]*models.Task
	nextID     int64
	createErr  error
	getErr     error
	listErr    error
	snoozeErr  error
	resolveErr error
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{tasks: make(map[int64]*models.Task)}
}

func (m *mockTaskRepository) Create(ctx context.Context, description string) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	m.tasks[m.nextID] = &models.Task{
		ID:          m.nextID,
		Description: description,
		Status:      models.TaskStatusPending,
		CreatedAt:   time.Now(),
	}
	return m.nextID, nil
}

func (m *mockTaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if task, ok := m.tasks[id]; ok {
		return task, nil
	}
	return nil, fmt.Errorf("task %d: %w", id, secondary.ErrNotFound)
}

func (m *mockTaskRepository) ListOpen(ctx context.Context, limit int) ([]*models.Task, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*models.Task
	for _, t := range m.tasks {
		if t.Open() {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockTaskRepository) List(ctx context.Context, limit int) ([]*models.Task, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*models.Task
	for _, t := range m.tasks {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockTaskRepository) Snooze(ctx context.Context, id int64, until time.Time) error {
	if m.snoozeErr != nil {
		return m.snoozeErr
	}
	task, ok := m.tasks[id]
	if !ok {
		return fmt.Errorf("task %d: %w", id, secondary.ErrNotFound)
	}
	task.Status = models.TaskStatusSnoozed
	u := until
	task.SnoozeUntil = &u
	return nil
}

func (m *mockTaskRepository) Resolve(ctx context.Context, id int64) error {
	if m.resolveErr != nil {
		return m.resolveErr
	}
	task, ok := m.tasks[id]
	if !ok {
		return fmt.Errorf("task %d: %w", id, secondary.ErrNotFound)
	}
	task.Status = models.TaskStatusResolved
	task.SnoozeUntil = nil
	return nil
}

// mockObservationRepository implements secondary.ObservationRepository.
type mockObservationRepository struct {
	observations []models.Observation
	recordErr    error
	countErr     error
}

func (m *mockObservationRepository) Record(ctx context.Context, temp float64) (int64, error) {
	if m.recordErr != nil {
		return 0, m.recordErr
	}
	id := int64(len(m.observations) + 1)
	m.observations = append(m.observations, models.Observation{
		ID: id, Timestamp: time.Now(), Temp: temp,
	})
	return id, nil
}

func (m *mockObservationRepository) CountSince(ctx context.Context, threshold float64, since time.Time) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	count := 0
	for _, o := range m.observations {
		if o.Temp > threshold && o.Timestamp.After(since) {
			count++
		}
	}
	return count, nil
}

// seed inserts an observation at a fixed timestamp.
func (m *mockObservationRepository) seed(at time.Time, temp float64) {
	m.observations = append(m.observations, models.Observation{
		ID: int64(len(m.observations) + 1), Timestamp: at, Temp: temp,
	})
}

// fakeFetcher implements weather.Fetcher.
type fakeFetcher struct {
	temp float64
	err  error
}

func (f *fakeFetcher) CurrentTemp(ctx context.Context, location string) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.temp, nil
}

// fakeReasoner implements llm.Reasoner and captures the prompt.
type fakeReasoner struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (f *fakeReasoner) Reason(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// recordingTracker implements mlflow.Tracker and mlflow.Run, capturing
// telemetry for assertions.
type recordingTracker struct {
	metrics map[string]float64
	params  map[string]string
	tags    map[string]string
	ended   bool
}

func newRecordingTracker() *recordingTracker {
	return &recordingTracker{
		metrics: make(map[string]float64),
		params:  make(map[string]string),
		tags:    make(map[string]string),
	}
}

func (r *recordingTracker) StartRun(ctx context.Context, name string) mlflow.Run { return r }

func (r *recordingTracker) LogParam(ctx context.Context, key, value string) { r.params[key] = value }
func (r *recordingTracker) LogMetric(ctx context.Context, key string, value float64) {
	r.metrics[key] = value
}
func (r *recordingTracker) SetTag(ctx context.Context, key, value string) { r.tags[key] = value }
func (r *recordingTracker) End(ctx context.Context)                       { r.ended = true }
