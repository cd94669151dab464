package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockScan/internal/domain/models"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORSOrigins     []string      `yaml:"cors_origins"`
	} `yaml:"server"`
	Log struct {
		Level      string `yaml:"level" default:"info"`
		Format     string `yaml:"format" default:"json"`
		Output     string `yaml:"output" default:"stdout"`
		TimeFormat string `yaml:"time_format"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Provider struct {
		BaseURL       string        `yaml:"base_url" default:"https://query1.finance.yahoo.com"`
		Timeout       time.Duration `yaml:"timeout" default:"10s"`
		UserAgent     string        `yaml:"user_agent" default:"Mozilla/5.0 (compatible; StockScan/1.0)"`
		RatePerSecond float64       `yaml:"rate_per_second" default:"0"`
		Burst         int           `yaml:"burst" default:"5"`
		Retries       int           `yaml:"retries" default:"2"`
		HistoryRange  string        `yaml:"history_range" default:"1y"`
	} `yaml:"provider"`
	Cache struct {
		Enabled    bool          `yaml:"enabled" default:"true"`
		TTL        time.Duration `yaml:"ttl" default:"5m"`
		MemorySize int           `yaml:"memory_size" default:"2000"`
		Redis      struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"stockscan"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Scan struct {
		MaxSymbols  int `yaml:"max_symbols" default:"50"`
		Concurrency int `yaml:"concurrency" default:"16"`
		RateLimit   struct {
			Enabled  bool    `yaml:"enabled" default:"true"`
			Capacity float64 `yaml:"capacity" default:"20"`
			Refill   float64 `yaml:"refill_per_second" default:"1"`
		} `yaml:"rate_limit"`
	} `yaml:"scan"`
	Assumptions models.Assumptions `yaml:"assumptions"`
	Warmup      struct {
		Enabled bool     `yaml:"enabled"`
		Cron    string   `yaml:"cron" default:"0 */15 * * * *"`
		Symbols []string `yaml:"symbols"`
	} `yaml:"warmup"`
}

// Default returns a config populated only from struct defaults.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Load reads and parses a YAML configuration file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads .env if present, then config from YAML, then overrides with
// environment variables.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("PROVIDER_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Warmup.Symbols = models.SplitTickers(v)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if !strings.HasPrefix(c.Provider.BaseURL, "http://") && !strings.HasPrefix(c.Provider.BaseURL, "https://") {
		return fmt.Errorf("provider.base_url must be an http(s) URL, got '%s'", c.Provider.BaseURL)
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be positive")
	}
	if c.Provider.RatePerSecond < 0 {
		return fmt.Errorf("provider.rate_per_second cannot be negative")
	}
	if c.Scan.MaxSymbols <= 0 {
		return fmt.Errorf("scan.max_symbols must be positive")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl cannot be negative")
	}
	if c.Warmup.Enabled && c.Warmup.Cron == "" {
		return fmt.Errorf("warmup.cron is required when warmup is enabled")
	}
	return validateAssumptions(c.Assumptions)
}

func validateAssumptions(a models.Assumptions) error {
	switch {
	case a.DiscountRate < 0 || a.DiscountRate > 1:
		return fmt.Errorf("assumptions.discount_rate must be within [0,1]")
	case a.Years < 1 || a.Years > 30:
		return fmt.Errorf("assumptions.years must be within [1,30]")
	case a.ExitPE <= 0 || a.ExitPE > 100:
		return fmt.Errorf("assumptions.exit_pe must be within (0,100]")
	case a.DividendPayoutRatio < 0 || a.DividendPayoutRatio > 1:
		return fmt.Errorf("assumptions.dividend_payout_ratio must be within [0,1]")
	case a.BaseGrowth < 0 || a.BaseGrowth > 0.3:
		return fmt.Errorf("assumptions.base_growth must be within [0,0.3]")
	}
	for name, g := range map[string]float64{
		"high_growth": a.HighGrowth,
		"low_growth":  a.LowGrowth,
	} {
		if g < -0.5 || g > 1 {
			return fmt.Errorf("assumptions.%s must be within [-0.5,1]", name)
		}
	}
	return nil
}
