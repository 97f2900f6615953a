// Package config loads the run settings of fund_backend.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreMongo = "mongo"
	StoreSQL   = "sql"
)

// Config holds the run settings. Precedence: defaults < YAML file < environment < CLI flags.
type Config struct {
	Store      StoreSection      `yaml:"store"`
	MutualFund MutualFundSection `yaml:"mutual_fund"`
	Screener   ScreenerSection   `yaml:"screener"`
	Server     ServerSection     `yaml:"server"`
	RunTimeout time.Duration     `yaml:"run_timeout"`
}

// StoreSection selects the document store.
type StoreSection struct {
	Driver string `yaml:"driver"` // mongo | sql
}

// MutualFundSection holds the mutual fund workflow defaults.
type MutualFundSection struct {
	Database      string  `yaml:"database"`
	Collection    string  `yaml:"collection"`
	BalanceUnits  float64 `yaml:"balance_units"`
	MonthlySIP    int     `yaml:"monthly_sip"`
	Months        int     `yaml:"investment_in_months"`
	Chronological bool    `yaml:"chronological"`
	AMCProfiles   bool    `yaml:"amc_profiles"`
}

// ScreenerSection holds the stock screener defaults.
type ScreenerSection struct {
	Database          string `yaml:"database"`
	IndexTicker       string `yaml:"index_ticker"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// ServerSection holds the HTTP server settings.
type ServerSection struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Store: StoreSection{Driver: StoreMongo},
		MutualFund: MutualFundSection{
			Database:     "mutual_fund",
			Collection:   "scheme_details",
			BalanceUnits: 445.804,
			MonthlySIP:   2000,
			Months:       51,
		},
		Screener: ScreenerSection{
			Database:          "stock_data",
			IndexTicker:       "^NSEI",
			RequestsPerMinute: 60,
		},
		Server:     ServerSection{Addr: ":8080"},
		RunTimeout: 2 * time.Minute,
	}
}

// LoadDotEnv reads .env into the process environment when present.
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		slog.Debug(".env not found; using system environment variables", "path", path)
	}
}

// Load builds the configuration from the defaults, the optional YAML file at
// path and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s not found: %w", path, err)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	// 既定値の上に上書きする
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Store.Driver, "STORE_DRIVER")
	setString(&c.MutualFund.Database, "MF_DATABASE")
	setString(&c.MutualFund.Collection, "MF_COLLECTION")
	setString(&c.Screener.Database, "STOCK_DATABASE")
	setString(&c.Screener.IndexTicker, "INDEX_TICKER")
	setString(&c.Server.Addr, "SERVER_ADDR")

	if v := os.Getenv("BALANCE_UNITS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("BALANCE_UNITS: %w", err)
		}
		c.MutualFund.BalanceUnits = f
	}
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_PER_MINUTE: %w", err)
		}
		c.Screener.RequestsPerMinute = n
	}
	if v := os.Getenv("RUN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("RUN_TIMEOUT: %w", err)
		}
		c.RunTimeout = d
	}
	return nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreMongo, StoreSQL:
	default:
		return fmt.Errorf("unknown store driver %q (want %s or %s)", c.Store.Driver, StoreMongo, StoreSQL)
	}
	if c.MutualFund.Database == "" || c.MutualFund.Collection == "" || c.Screener.Database == "" {
		return errors.New("database and collection names must not be empty")
	}
	if c.MutualFund.BalanceUnits < 0 {
		return fmt.Errorf("balance units must not be negative: %v", c.MutualFund.BalanceUnits)
	}
	if c.MutualFund.MonthlySIP < 0 || c.MutualFund.Months < 0 {
		return fmt.Errorf("monthly SIP and investment months must not be negative: %d, %d", c.MutualFund.MonthlySIP, c.MutualFund.Months)
	}
	if c.RunTimeout <= 0 {
		return fmt.Errorf("run timeout must be positive: %v", c.RunTimeout)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
