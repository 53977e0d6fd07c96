package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"OLLAMA_URL", "MODEL", "MLFLOW_URI", "WEATHER_API_URL", "WEATHER_API_KEY",
		"LOCATION", "TEMP_THRESHOLD", "DURATION_CHECKS", "CHECK_INTERVAL", "DB_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OllamaURL != "http://localhost:11434" {
		t.Errorf("unexpected OllamaURL: %s", cfg.OllamaURL)
	}
	if cfg.Model != "phi3:mini" {
		t.Errorf("unexpected Model: %s", cfg.Model)
	}
	if cfg.MLflowURI != "http://localhost:5000" {
		t.Errorf("unexpected MLflowURI: %s", cfg.MLflowURI)
	}
	if cfg.Location != "Park Forest,IL,US" {
		t.Errorf("unexpected Location: %s", cfg.Location)
	}
	if cfg.TempThreshold != 50 {
		t.Errorf("unexpected TempThreshold: %v", cfg.TempThreshold)
	}
	if cfg.DurationChecks != 4 {
		t.Errorf("unexpected DurationChecks: %d", cfg.DurationChecks)
	}
	if cfg.CheckInterval != 30*time.Minute {
		t.Errorf("unexpected CheckInterval: %v", cfg.CheckInterval)
	}
	if cfg.DBPath == "" {
		t.Error("expected a default DBPath")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TEMP_THRESHOLD", "62.5")
	t.Setenv("DURATION_CHECKS", "6")
	t.Setenv("CHECK_INTERVAL", "15m")
	t.Setenv("DB_PATH", "/tmp/smartcal-test.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TempThreshold != 62.5 {
		t.Errorf("unexpected TempThreshold: %v", cfg.TempThreshold)
	}
	if cfg.DurationChecks != 6 {
		t.Errorf("unexpected DurationChecks: %d", cfg.DurationChecks)
	}
	if cfg.Window() != 90*time.Minute {
		t.Errorf("unexpected window: %v", cfg.Window())
	}
	if cfg.DBPath != "/tmp/smartcal-test.db" {
		t.Errorf("unexpected DBPath: %s", cfg.DBPath)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"TEMP_THRESHOLD", "warm"},
		{"DURATION_CHECKS", "four"},
		{"DURATION_CHECKS", "0"},
		{"CHECK_INTERVAL", "soon"},
	}

	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestValidateForCheck(t *testing.T) {
	cfg := &Config{WeatherAPIURL: "", WeatherAPIKey: ""}
	if err := cfg.ValidateForCheck(); err == nil {
		t.Error("expected error with missing weather endpoint")
	}

	cfg.WeatherAPIURL = "https://api.openweathermap.org/data/2.5/weather"
	if err := cfg.ValidateForCheck(); err == nil {
		t.Error("expected error with missing weather key")
	}

	cfg.WeatherAPIKey = "secret"
	if err := cfg.ValidateForCheck(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}
