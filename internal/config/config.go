package config

import (
	"errors"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "COINPULSE_CONFIG"
	databaseDSNEnv  = "DBCONN"
	alphaAPIKeyEnv  = "ALPHA_APIKEY"
)

// Missing credentials are configuration errors, not runtime ones: the
// process should refuse to start instead of failing mid-run.
var (
	ErrMissingAPIKey = errors.New("config: alpha vantage api key is required")
	ErrMissingDSN    = errors.New("config: database dsn is required")
)

// Config holds high-level settings required across the application.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Alpha     AlphaConfig     `yaml:"alpha"`
	Scraper   ScraperConfig   `yaml:"scraper"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// AlphaConfig defines how to contact the quote API.
type AlphaConfig struct {
	Endpoint string        `yaml:"endpoint"`
	APIKey   string        `yaml:"apiKey"`
	Symbol   string        `yaml:"symbol"`
	Market   string        `yaml:"market"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ScraperConfig describes the news listing source.
type ScraperConfig struct {
	URL       string        `yaml:"url"`
	Origin    string        `yaml:"origin"`
	UserAgent string        `yaml:"userAgent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// SchedulerConfig defines when the pipeline should run.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// ServerConfig describes the read-only API listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// Validate checks that the required credential and connection string are
// present. Both come only from deployment configuration.
func (c Config) Validate() error {
	if c.Alpha.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Database.DSN == "" {
		return ErrMissingDSN
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(alphaAPIKeyEnv); v != "" {
		c.Alpha.APIKey = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Alpha.Endpoint != "" {
		base.Alpha.Endpoint = override.Alpha.Endpoint
	}
	if override.Alpha.APIKey != "" {
		base.Alpha.APIKey = override.Alpha.APIKey
	}
	if override.Alpha.Symbol != "" {
		base.Alpha.Symbol = override.Alpha.Symbol
	}
	if override.Alpha.Market != "" {
		base.Alpha.Market = override.Alpha.Market
	}
	if override.Alpha.Timeout != 0 {
		base.Alpha.Timeout = override.Alpha.Timeout
	}

	if override.Scraper.URL != "" {
		base.Scraper.URL = override.Scraper.URL
	}
	if override.Scraper.Origin != "" {
		base.Scraper.Origin = override.Scraper.Origin
	}
	if override.Scraper.UserAgent != "" {
		base.Scraper.UserAgent = override.Scraper.UserAgent
	}
	if override.Scraper.Timeout != 0 {
		base.Scraper.Timeout = override.Scraper.Timeout
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Database: DatabaseConfig{DSN: ""},
		Alpha: AlphaConfig{
			Endpoint: "https://www.alphavantage.co/query",
			Symbol:   "BTC",
			Market:   "EUR",
			Timeout:  30 * time.Second,
		},
		Scraper: ScraperConfig{
			URL:       "https://u.today/search/node?keys=bitcoin",
			Origin:    "https://u.today",
			UserAgent: "Mozilla/5.0",
			Timeout:   20 * time.Second,
		},
		Scheduler: SchedulerConfig{CronExpression: "0 6 * * *", Timezone: defaultTimezone, location: tz},
		Server:    ServerConfig{Addr: ":8080"},
		Logging:   LoggingConfig{Level: "info"},
	}
}
