// Package config holds the FrozenBOT configuration. Everything has a coded
// default so the bot runs with no config file at all; a YAML file overrides
// the defaults and a few environment variables override the file, which is
// how the weather API key is injected in deployment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file location relative to the working
// directory.
const DefaultPath = ".frozenbot/config.yaml"

// Environment overrides applied after the file is read.
const (
	EnvWeatherAPIKey = "FROZENBOT_WEATHER_API_KEY"
	EnvModelDir      = "FROZENBOT_MODEL_DIR"
	EnvDebug         = "FROZENBOT_DEBUG"
)

// Config is the root configuration.
type Config struct {
	// ModelDir points at an artifact directory. Empty means the embedded
	// artifact set baked into the binary.
	ModelDir string `yaml:"model_dir"`

	// Threshold is the classification confidence the top label must
	// strictly exceed.
	Threshold float64 `yaml:"threshold"`

	Weather   WeatherConfig `yaml:"weather"`
	Inventory []StockEntry  `yaml:"inventory"`
	Logging   LoggingConfig `yaml:"logging"`
}

// WeatherConfig configures the OpenWeatherMap collaborator.
type WeatherConfig struct {
	APIKey   string  `yaml:"api_key"`
	Lat      string  `yaml:"lat"`
	Lon      string  `yaml:"lon"`
	HotAbove float64 `yaml:"hot_above"`
	Timeout  string  `yaml:"timeout"`
}

// StockEntry is one product in the opening inventory. Order matters: stock
// listings are shown in this order.
type StockEntry struct {
	Name     string `yaml:"name"`
	Quantity int    `yaml:"quantity"`
}

// LoggingConfig controls categorized debug logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// Default returns the built-in configuration: embedded model, canonical
// threshold, Pehuajó coordinates, and the Frozen SRL opening stock.
func Default() Config {
	return Config{
		Threshold: 0.4,
		Weather: WeatherConfig{
			APIKey:   "d81015613923e3e435231f2740d5610b",
			Lat:      "-35.836948753554054",
			Lon:      "-61.870523905384076",
			HotAbove: 28,
			Timeout:  "5s",
		},
		Inventory: []StockEntry{
			{Name: "Chocolate", Quantity: 3},
			{Name: "Granizado", Quantity: 10},
			{Name: "Limon", Quantity: 0},
			{Name: "Dulce de Leche", Quantity: 5},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the config file at path (DefaultPath when empty), falling back
// to defaults when the file does not exist. Environment overrides are
// applied last.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file is fine; defaults carry the bot.
	case err != nil:
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvWeatherAPIKey); v != "" {
		c.Weather.APIKey = v
	}
	if v := os.Getenv(EnvModelDir); v != "" {
		c.ModelDir = v
	}
	if v := os.Getenv(EnvDebug); v == "1" || v == "true" {
		c.Logging.DebugMode = true
	}
}

func (c *Config) validate() error {
	if c.Threshold < 0 || c.Threshold >= 1 {
		return fmt.Errorf("threshold %v outside [0,1)", c.Threshold)
	}
	for _, s := range c.Inventory {
		if s.Name == "" {
			return fmt.Errorf("inventory entry with empty name")
		}
		if s.Quantity < 0 {
			return fmt.Errorf("inventory entry %q has negative quantity", s.Name)
		}
	}
	if _, err := c.WeatherTimeout(); err != nil {
		return err
	}
	return nil
}

// WeatherTimeout parses the weather timeout string. Empty means the
// collaborator's own default.
func (c *Config) WeatherTimeout() (time.Duration, error) {
	if c.Weather.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Weather.Timeout)
	if err != nil {
		return 0, fmt.Errorf("weather timeout %q: %w", c.Weather.Timeout, err)
	}
	return d, nil
}
