package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zenreader/zen-t/pkg/models"
)

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Settings.Theme != models.ThemeLight {
		t.Errorf("default theme = %q", cfg.Settings.Theme)
	}
	if cfg.LLM.TimeoutSeconds != 120 {
		t.Errorf("default timeout = %d", cfg.LLM.TimeoutSeconds)
	}
	if len(cfg.LLM.ProModels) == 0 || len(cfg.LLM.FlashModels) == 0 {
		t.Error("default model chains missing")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	payload := `
settings:
  theme: sepia
  font_size: 5
  font_family: sans
llm:
  api_key: k-123
  timeout_seconds: 30
measure_delay_ms: [50, 200]
`
	if err := os.WriteFile(path, []byte(payload), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Settings.Theme != models.ThemeSepia || cfg.Settings.FontSize != 5 || cfg.Settings.FontFamily != models.FontSans {
		t.Errorf("settings = %+v", cfg.Settings)
	}
	if cfg.LLM.APIKey != "k-123" || cfg.LLM.TimeoutSeconds != 30 {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	want := []time.Duration{50 * time.Millisecond, 200 * time.Millisecond}
	got := cfg.MeasureSchedule()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("MeasureSchedule() = %v", got)
	}
}

func TestLoadFromClampsSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	payload := `
settings:
  theme: neon
  font_size: 99
`
	if err := os.WriteFile(path, []byte(payload), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Settings.Theme != models.ThemeLight {
		t.Errorf("unknown theme should fall back, got %q", cfg.Settings.Theme)
	}
	if cfg.Settings.FontSize != models.MaxFontSize {
		t.Errorf("font size should clamp, got %d", cfg.Settings.FontSize)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ZEN_LLM_ENDPOINT", "http://localhost:9999/v1/chat/completions")
	t.Setenv("ZEN_LLM_API_KEY", "env-key")
	t.Setenv("ZEN_LLM_TIMEOUT", "15")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.LLM.Endpoint != "http://localhost:9999/v1/chat/completions" {
		t.Errorf("endpoint = %q", cfg.LLM.Endpoint)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Errorf("api key = %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.TimeoutSeconds != 15 {
		t.Errorf("timeout = %d", cfg.LLM.TimeoutSeconds)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Default()
	cfg.Settings.Theme = models.ThemeMidnight
	cfg.Settings.FontSize = 6
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Settings.Theme != models.ThemeMidnight || got.Settings.FontSize != 6 {
		t.Errorf("round trip settings = %+v", got.Settings)
	}
}
