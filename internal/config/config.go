package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ah-flipper/internal/engine"
)

// Config is the full application configuration.
type Config struct {
	Store StoreConfig `yaml:"store"`
	Scan  ScanConfig  `yaml:"scan"`
	Log   LogConfig   `yaml:"log"`
}

// StoreConfig locates the market database written by the ingestion pipeline.
type StoreConfig struct {
	DSN           string `yaml:"dsn"`             // path to the SQLite file
	PullCacheSecs int    `yaml:"pull_cache_secs"` // latest-pull cache TTL
}

// ScanConfig carries the sampling caps and clamps for the detectors. Values
// left at zero fall back to the documented defaults.
type ScanConfig struct {
	FlipSample        int     `yaml:"flip_sample"`
	SnipeSample       int     `yaml:"snipe_sample"`
	UnderpricedSample int     `yaml:"underpriced_sample"`
	MaxFlipResults    int     `yaml:"max_flip_results"`
	MaxSnipeResults   int     `yaml:"max_snipe_results"`
	MaxTrendResults   int     `yaml:"max_trend_results"`
	MaxMarginResults  int     `yaml:"max_margin_results"`
	MaxSnipeAge       int     `yaml:"max_snipe_age_minutes"`
	SnipeMinDiscount  float64 `yaml:"snipe_min_discount"`
	MaxHistoryDays    int     `yaml:"max_history_days"`
	MaxHistoryHours   int     `yaml:"max_history_hours"`
}

// LogConfig controls console output.
type LogConfig struct {
	Debug bool `yaml:"debug"`
}

// Load reads configuration from a YAML file and the .env file if present.
// A missing config file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse %q: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	return &cfg, nil
}

// Limits converts the scan section into engine limits.
func (c *Config) Limits() engine.Limits {
	return engine.Limits{
		FlipSample:        c.Scan.FlipSample,
		SnipeSample:       c.Scan.SnipeSample,
		UnderpricedSample: c.Scan.UnderpricedSample,
		MaxFlipResults:    c.Scan.MaxFlipResults,
		MaxSnipeResults:   c.Scan.MaxSnipeResults,
		MaxTrendResults:   c.Scan.MaxTrendResults,
		MaxMarginResults:  c.Scan.MaxMarginResults,
		MaxSnipeAge:       c.Scan.MaxSnipeAge,
		SnipeMinDiscount:  c.Scan.SnipeMinDiscount,
		MaxHistoryDays:    c.Scan.MaxHistoryDays,
		MaxHistoryHours:   c.Scan.MaxHistoryHours,
	}
}

// PullCacheTTL returns the latest-pull cache TTL as a duration.
func (c *Config) PullCacheTTL() time.Duration {
	return time.Duration(c.Store.PullCacheSecs) * time.Second
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AHFLIPPER_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if os.Getenv("AHFLIPPER_DEBUG") == "1" {
		cfg.Log.Debug = true
	}
}

// setDefaults fills every zero value with the documented default.
func setDefaults(cfg *Config) {
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = "market.db"
	}
	if cfg.Store.PullCacheSecs <= 0 {
		cfg.Store.PullCacheSecs = 30
	}

	def := engine.DefaultLimits()
	if cfg.Scan.FlipSample <= 0 {
		cfg.Scan.FlipSample = def.FlipSample
	}
	if cfg.Scan.SnipeSample <= 0 {
		cfg.Scan.SnipeSample = def.SnipeSample
	}
	if cfg.Scan.UnderpricedSample <= 0 {
		cfg.Scan.UnderpricedSample = def.UnderpricedSample
	}
	if cfg.Scan.MaxFlipResults <= 0 {
		cfg.Scan.MaxFlipResults = def.MaxFlipResults
	}
	if cfg.Scan.MaxSnipeResults <= 0 {
		cfg.Scan.MaxSnipeResults = def.MaxSnipeResults
	}
	if cfg.Scan.MaxTrendResults <= 0 {
		cfg.Scan.MaxTrendResults = def.MaxTrendResults
	}
	if cfg.Scan.MaxMarginResults <= 0 {
		cfg.Scan.MaxMarginResults = def.MaxMarginResults
	}
	if cfg.Scan.MaxSnipeAge <= 0 {
		cfg.Scan.MaxSnipeAge = def.MaxSnipeAge
	}
	if cfg.Scan.SnipeMinDiscount <= 0 {
		cfg.Scan.SnipeMinDiscount = def.SnipeMinDiscount
	}
	if cfg.Scan.MaxHistoryDays <= 0 {
		cfg.Scan.MaxHistoryDays = def.MaxHistoryDays
	}
	if cfg.Scan.MaxHistoryHours <= 0 {
		cfg.Scan.MaxHistoryHours = def.MaxHistoryHours
	}
}
