package db

// SchemaSQL is the complete schema for fresh smartcal installs. It is
// applied idempotently on every Open, so a missing database file or a
// brand-new data directory is not an error.
//
// This is the single source of truth for the schema: all repository tests
// load it via GetSchemaSQL() instead of hardcoding CREATE TABLE statements,
// so a repository referencing a column that does not exist here fails
// immediately with "no such column".
const SchemaSQL = `
-- Maintenance tasks created by the check agent
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('pending', 'snoozed', 'resolved')) DEFAULT 'pending',
	snooze_until DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Append-only temperature log, one row per check run
CREATE TABLE IF NOT EXISTS weather_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	temp REAL,
	condition_met INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_weather_logs_timestamp ON weather_logs(timestamp);
`

// GetSchemaSQL returns the authoritative schema DDL.
func GetSchemaSQL() string {
	return SchemaSQL
}
