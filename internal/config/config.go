// Package config loads smartcal settings from the environment, with a
// local .env file honored for development. Deployment env vars override
// the .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dcaulton/smartcal1/internal/db"
)

// Config holds all runtime settings for the agent.
type Config struct {
	OllamaURL string
	Model     string
	MLflowURI string

	WeatherAPIURL string
	WeatherAPIKey string
	Location      string

	TempThreshold  float64
	DurationChecks int

	// CheckInterval is the expected scheduler cadence. The sustained
	// window is CheckInterval * DurationChecks, so the product only
	// approximates a real duration when the cadence is stable.
	CheckInterval time.Duration

	DBPath string
}

// Load reads configuration from the environment with defaults.
func Load() (*Config, error) {
	// Best-effort: a missing .env just means env-only configuration.
	_ = godotenv.Load()

	cfg := &Config{
		OllamaURL:     getenvDefault("OLLAMA_URL", "http://localhost:11434"),
		Model:         getenvDefault("MODEL", "phi3:mini"),
		MLflowURI:     getenvDefault("MLFLOW_URI", "http://localhost:5000"),
		WeatherAPIURL: os.Getenv("WEATHER_API_URL"),
		WeatherAPIKey: os.Getenv("WEATHER_API_KEY"),
		Location:      getenvDefault("LOCATION", "Park Forest,IL,US"),
	}

	threshold, err := getenvFloat("TEMP_THRESHOLD", 50)
	if err != nil {
		return nil, err
	}
	cfg.TempThreshold = threshold

	checks, err := getenvInt("DURATION_CHECKS", 4)
	if err != nil {
		return nil, err
	}
	if checks < 1 {
		return nil, fmt.Errorf("DURATION_CHECKS must be at least 1, got %d", checks)
	}
	cfg.DurationChecks = checks

	intervalStr := getenvDefault("CHECK_INTERVAL", "30m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CHECK_INTERVAL: %w", err)
	}
	cfg.CheckInterval = interval

	cfg.DBPath = os.Getenv("DB_PATH")
	if cfg.DBPath == "" {
		path, err := db.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}

	return cfg, nil
}

// ValidateForCheck verifies the settings that check and serve modes cannot
// run without. Snooze mode needs only the database.
func (c *Config) ValidateForCheck() error {
	if c.WeatherAPIURL == "" {
		return fmt.Errorf("WEATHER_API_URL is required")
	}
	if c.WeatherAPIKey == "" {
		return fmt.Errorf("WEATHER_API_KEY is required")
	}
	return nil
}

// Window returns the trailing evaluation window.
func (c *Config) Window() time.Duration {
	return c.CheckInterval * time.Duration(c.DurationChecks)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
