package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		Symbol  string `yaml:"symbol"`
		Limit   int    `yaml:"limit"`
	} `yaml:"data_source"`
	Quote struct {
		BaseURL string `yaml:"base_url"`
		Pair    string `yaml:"pair"`
	} `yaml:"quote"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Display struct {
		WindowDays int `yaml:"window_days"`
	} `yaml:"display"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BINANCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("QUOTE_BASE_URL"); v != "" {
		cfg.Quote.BaseURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = "https://api.binance.us"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "BTCUSDT"
	}
	if cfg.DataSource.Limit == 0 {
		cfg.DataSource.Limit = 500
	}
	if cfg.Quote.BaseURL == "" {
		cfg.Quote.BaseURL = "https://api.gemini.com"
	}
	if cfg.Quote.Pair == "" {
		cfg.Quote.Pair = "btcusd"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "binance.db"
	}
	if cfg.Display.WindowDays == 0 {
		cfg.Display.WindowDays = 33
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 15 0 * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if c.DataSource.Limit <= 0 || c.DataSource.Limit > 1000 {
		return fmt.Errorf("data_source.limit must be between 1 and 1000")
	}
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	if c.Display.WindowDays <= 0 {
		return fmt.Errorf("display.window_days must be positive")
	}
	return nil
}
