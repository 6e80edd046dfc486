package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/tradelog/market"
	"gopkg.in/yaml.v3"
)

// Config represents the complete journal configuration
type Config struct {
	Journal  JournalConfig `json:"journal" yaml:"journal"`
	Goals    GoalsConfig   `json:"goals" yaml:"goals"`
	Defaults FormDefaults  `json:"defaults" yaml:"defaults"`
	Report   ReportConfig  `json:"report" yaml:"report"`
	Log      LogConfig     `json:"log" yaml:"log"`
}

// JournalConfig selects the storage backend and where its files live.
// Relative file names are resolved against Dir.
type JournalConfig struct {
	Type          string `json:"type" yaml:"type"` // "csv" or "sqlite"
	Dir           string `json:"dir" yaml:"dir"`
	TradesFile    string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	SessionsFile  string `json:"sessions_file,omitempty" yaml:"sessions_file,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	ElapsedPrefix string `json:"elapsed_prefix,omitempty" yaml:"elapsed_prefix,omitempty"`
}

// GoalsConfig seeds the in-memory daily targets at startup.
type GoalsConfig struct {
	TargetPnL     float64 `json:"target_pnl" yaml:"target_pnl"`
	TargetMinutes int     `json:"target_minutes" yaml:"target_minutes"`
}

// FormDefaults pre-fill the add-trade form.
type FormDefaults struct {
	Asset     string `json:"asset" yaml:"asset"`
	Timeframe string `json:"timeframe" yaml:"timeframe"`
	Amount    string `json:"amount" yaml:"amount"`
	Direction string `json:"direction" yaml:"direction"`
	Outcome   string `json:"outcome" yaml:"outcome"`
	Payout    string `json:"payout" yaml:"payout"`
	Emotion   string `json:"emotion" yaml:"emotion"`
}

type ReportConfig struct {
	Path     string `json:"path" yaml:"path"`
	Currency string `json:"currency" yaml:"currency"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug|info|warn|error
	Format string `json:"format" yaml:"format"` // text|json
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Missing keys keep their defaults.
	cfg := Default()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths and JSON
// otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv loads the given .env files (default ".env" if present) and lets
// TRADELOG_* variables override the file values.
func (c *Config) ApplyEnv(files ...string) {
	_ = godotenv.Load(files...)

	if val := os.Getenv("TRADELOG_DIR"); val != "" {
		c.Journal.Dir = val
	}
	if val := os.Getenv("TRADELOG_BACKEND"); val != "" {
		c.Journal.Type = strings.ToLower(val)
	}
	if val := os.Getenv("TRADELOG_LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("TRADELOG_TARGET_PNL"); val != "" {
		if v, err := strconv.ParseFloat(val, 64); err == nil {
			c.Goals.TargetPnL = v
		}
	}
	if val := os.Getenv("TRADELOG_TARGET_MINUTES"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.Goals.TargetMinutes = v
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && (c.Journal.TradesFile == "" || c.Journal.SessionsFile == "") {
		return fmt.Errorf("journal trades_file and sessions_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	if c.Goals.TargetMinutes < 0 {
		return fmt.Errorf("goals.target_minutes must not be negative")
	}
	if c.Defaults.Asset != "" {
		if _, err := market.ParseAsset(c.Defaults.Asset); err != nil {
			return fmt.Errorf("defaults.asset: %w", err)
		}
	}
	if c.Defaults.Timeframe != "" {
		if _, err := market.ParseTimeframe(c.Defaults.Timeframe); err != nil {
			return fmt.Errorf("defaults.timeframe: %w", err)
		}
	}
	if c.Defaults.Direction != "" {
		if _, err := market.ParseDirection(c.Defaults.Direction); err != nil {
			return fmt.Errorf("defaults.direction: %w", err)
		}
	}
	if c.Defaults.Outcome != "" {
		if _, err := market.ParseOutcome(c.Defaults.Outcome); err != nil {
			return fmt.Errorf("defaults.outcome: %w", err)
		}
	}
	if c.Defaults.Emotion != "" {
		if _, err := market.ParseEmotion(c.Defaults.Emotion); err != nil {
			return fmt.Errorf("defaults.emotion: %w", err)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

// TradesPath, SessionsPath and DBFile resolve journal files against Dir.
func (c *Config) TradesPath() string   { return c.resolve(c.Journal.TradesFile) }
func (c *Config) SessionsPath() string { return c.resolve(c.Journal.SessionsFile) }
func (c *Config) DBFile() string       { return c.resolve(c.Journal.DBPath) }

// ReportPath resolves the report output against Dir.
func (c *Config) ReportPath() string { return c.resolve(c.Report.Path) }

func (c *Config) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Journal.Dir, name)
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Type:          "csv",
			Dir:           ".",
			TradesFile:    "trades.csv",
			SessionsFile:  "sessions.csv",
			DBPath:        "tradelog.sqlite",
			ElapsedPrefix: ".elapsed_",
		},
		Goals: GoalsConfig{
			TargetPnL:     20.0,
			TargetMinutes: 60,
		},
		Defaults: FormDefaults{
			Asset:     "EUR/USD",
			Timeframe: "1m",
			Amount:    "10",
			Direction: "↓",
			Outcome:   "win",
			Payout:    "82",
			Emotion:   "Neutral",
		},
		Report: ReportConfig{
			Path:     "report.md",
			Currency: "USD",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
