// Package config loads and saves the application configuration from a
// YAML file under the user config directory, with environment variable
// overrides for the LLM credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zenreader/zen-t/internal/reader"
	"github.com/zenreader/zen-t/pkg/models"
)

const configFileName = "config.yaml"

// LLMConfig configures the chat-completions backend used for book
// generation, summaries and question answering.
type LLMConfig struct {
	Endpoint       string   `yaml:"endpoint"`
	APIKey         string   `yaml:"api_key"`
	ProModels      []string `yaml:"pro_models"`
	FlashModels    []string `yaml:"flash_models"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// Config is the full application configuration.
type Config struct {
	DataDir        string                `yaml:"data_dir"`
	Settings       models.ReaderSettings `yaml:"settings"`
	LLM            LLMConfig             `yaml:"llm"`
	Gestures       reader.SwipeConfig    `yaml:"gestures"`
	MeasureDelayMS []int                 `yaml:"measure_delay_ms"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Settings: models.DefaultSettings(),
		LLM: LLMConfig{
			Endpoint:       "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions",
			ProModels:      []string{"gemini-2.5-pro", "gemini-2.5-flash"},
			FlashModels:    []string{"gemini-2.5-flash", "gemini-2.5-flash-lite"},
			TimeoutSeconds: 120,
		},
		Gestures:       reader.DefaultSwipeConfig(),
		MeasureDelayMS: []int{100, 300, 800},
	}
}

// Path returns the config file location under the user config dir.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(base, "zen-t", configFileName), nil
}

// Load reads the config file, fills gaps with defaults, and applies
// environment overrides. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a specific config file.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ZEN_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("ZEN_LLM_ENDPOINT"); v != "" {
		c.LLM.Endpoint = v
	}
	if v := os.Getenv("ZEN_LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("ZEN_LLM_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.LLM.TimeoutSeconds = n
		}
	}
}

func (c *Config) normalize() {
	c.Settings = c.Settings.Clamp()
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = 120
	}
	if len(c.LLM.ProModels) == 0 {
		c.LLM.ProModels = Default().LLM.ProModels
	}
	if len(c.LLM.FlashModels) == 0 {
		c.LLM.FlashModels = Default().LLM.FlashModels
	}
	if len(c.MeasureDelayMS) == 0 {
		c.MeasureDelayMS = []int{100, 300, 800}
	}
}

// Save writes the config back to its default location, creating the
// directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// MeasureSchedule converts the configured re-measurement delays to
// durations.
func (c *Config) MeasureSchedule() []time.Duration {
	out := make([]time.Duration, 0, len(c.MeasureDelayMS))
	for _, ms := range c.MeasureDelayMS {
		if ms > 0 {
			out = append(out, time.Duration(ms)*time.Millisecond)
		}
	}
	return out
}

// LLMTimeout returns the request timeout as a duration.
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}
