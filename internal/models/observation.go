package models

import "time"

// Observation is one temperature reading appended by a check run.
// Observations are append-only; Timestamp reflects write time, not
// measurement time.
type Observation struct {
	ID           int64
	Timestamp    time.Time
	Temp         float64
	ConditionMet bool
}
