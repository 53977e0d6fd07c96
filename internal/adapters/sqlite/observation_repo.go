package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ObservationRepository implements secondary.ObservationRepository with
// SQLite. The weather_logs table is append-only; rows are never updated
// or deleted.
type ObservationRepository struct {
	db *sql.DB
}

// NewObservationRepository creates a new SQLite observation repository.
func NewObservationRepository(db *sql.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

// Record appends an observation at the current instant. The condition_met
// column keeps its schema default of 0; qualification is recomputed from
// temp at query time.
func (r *ObservationRepository) Record(ctx context.Context, temp float64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO weather_logs (timestamp, temp) VALUES (?, ?)",
		time.Now().UTC(), temp,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record observation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read observation id: %w", err)
	}

	return id, nil
}

// CountSince counts observations with temp strictly above threshold and
// timestamp strictly after since. Single consistent read.
func (r *ObservationRepository) CountSince(ctx context.Context, threshold float64, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM weather_logs WHERE temp > ? AND timestamp > ?",
		threshold, since.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count observations: %w", err)
	}

	return count, nil
}
