// Package cli contains the smartcal cobra commands.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/dcaulton/smartcal1/internal/adapters/sqlite"
	"github.com/dcaulton/smartcal1/internal/app"
	"github.com/dcaulton/smartcal1/internal/config"
	"github.com/dcaulton/smartcal1/internal/db"
	"github.com/dcaulton/smartcal1/internal/llm"
	"github.com/dcaulton/smartcal1/internal/mlflow"
	"github.com/dcaulton/smartcal1/internal/ports/primary"
	"github.com/dcaulton/smartcal1/internal/weather"
)

const experimentName = "/smartcal1"

// runtime bundles the per-invocation dependencies. Each command builds one,
// uses it, and closes it on every exit path; nothing is held as ambient
// process state.
type runtime struct {
	cfg      *config.Config
	database *sql.DB

	tasks primary.TaskService
	check primary.CheckService
}

// newRuntime loads configuration, opens the store, and wires the services.
// requireWeather guards the settings only check/serve need; snooze and task
// commands work without a weather endpoint.
func newRuntime(requireWeather bool) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if requireWeather {
		if err := cfg.ValidateForCheck(); err != nil {
			return nil, err
		}
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	taskRepo := sqlite.NewTaskRepository(database)
	obsRepo := sqlite.NewObservationRepository(database)

	rt := &runtime{
		cfg:      cfg,
		database: database,
		tasks:    app.NewTaskService(taskRepo),
	}

	rt.check = app.NewCheckService(
		obsRepo,
		taskRepo,
		weather.NewClient(cfg.WeatherAPIURL, cfg.WeatherAPIKey),
		llm.NewOllamaClient(cfg.OllamaURL, cfg.Model),
		mlflow.NewClient(cfg.MLflowURI, experimentName),
		app.CheckParams{
			Location:       cfg.Location,
			TempThreshold:  cfg.TempThreshold,
			DurationChecks: cfg.DurationChecks,
			CheckInterval:  cfg.CheckInterval,
		},
		os.Stdout,
	)

	return rt, nil
}

// Close releases the store handle.
func (r *runtime) Close() error {
	return r.database.Close()
}
