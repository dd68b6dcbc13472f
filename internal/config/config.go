package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"HSScanner/internal/logging"
	"HSScanner/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Scan struct {
		SymbolsFile  string `yaml:"symbols_file"`
		OutputFile   string `yaml:"output_file"`
		HistoryDays  int    `yaml:"history_days"`
		MinSessions  int    `yaml:"min_sessions"`
		Workers      int    `yaml:"workers"`
		FetchRetries int    `yaml:"fetch_retries"`
	} `yaml:"scan"`
	Strategy model.Params `yaml:"strategy"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	API struct {
		Addr string `yaml:"addr"`
	} `yaml:"api"`
	Log   logging.Config `yaml:"log"`
	Proxy string         `yaml:"proxy"`
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides. Keys absent from the file keep their
// default, so an explicit 0 is honoured. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{
		Strategy: model.DefaultParams(),
		Log:      logging.DefaultConfig(),
	}
	cfg.Scan.HistoryDays = 365
	cfg.Scan.MinSessions = 50
	cfg.Scan.Workers = 4
	cfg.Scan.FetchRetries = 2
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		c.Schedule.ScanCron = v
	}
	if v := os.Getenv("SYMBOLS_FILE"); v != "" {
		c.Scan.SymbolsFile = v
	}
	if v := os.Getenv("OUTPUT_FILE"); v != "" {
		c.Scan.OutputFile = v
	}
	if v := os.Getenv("SCAN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Scan.Workers = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("API_ADDR"); v != "" {
		c.API.Addr = v
	}
}

// applyDefaults fills string settings left empty by the file and the
// environment.
func (c *Config) applyDefaults() {
	if c.Scan.SymbolsFile == "" {
		c.Scan.SymbolsFile = "data/symbols.txt"
	}
	if c.Scan.OutputFile == "" {
		c.Scan.OutputFile = "data/signals.json"
	}
	if c.Schedule.ScanCron == "" {
		c.Schedule.ScanCron = "0 30 18 * * 1-5"
	}
	if c.API.Addr == "" {
		c.API.Addr = ":8080"
	}
}

// Validate checks the configuration for values the scanner cannot run with.
func (c *Config) Validate() error {
	if err := c.Strategy.Validate(); err != nil {
		return err
	}
	if c.Scan.OutputFile == "" {
		return fmt.Errorf("scan.output_file is required")
	}
	if c.Scan.HistoryDays <= 0 {
		return fmt.Errorf("scan.history_days must be positive")
	}
	if c.Scan.MinSessions < 2*c.Strategy.SwingPeriod+1 {
		return fmt.Errorf("scan.min_sessions must be at least %d", 2*c.Strategy.SwingPeriod+1)
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be >= 1")
	}
	if c.Scan.FetchRetries < 0 {
		return fmt.Errorf("scan.fetch_retries must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
