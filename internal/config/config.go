package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Ledger backend constants
const (
	LedgerMemory = "memory"
	LedgerRedis  = "redis"
)

// Config holds everything needed to reach the backend and run the suite
type Config struct {
	// BaseURL of the live backend. Empty means tests start the in-process stub.
	BaseURL string
	// APIKey is sent as a bearer token when set
	APIKey  string
	Timeout time.Duration

	// openSession defaults
	Platform        int
	InvalidPlatform int
	Version         string
	Region          string

	// Fixture ledger
	Ledger    string
	RedisURL  string
	LedgerTTL time.Duration

	Verbose bool
}

// Default returns a Config with default values and no environment applied
func Default() *Config {
	return &Config{
		Timeout:         30 * time.Second,
		Platform:        1,
		InvalidPlatform: 9999,
		Version:         "1.0",
		Region:          "us",
		Ledger:          LedgerMemory,
		RedisURL:        "redis://localhost:6379",
		LedgerTTL:       7 * 24 * time.Hour,
	}
}

// Load reads an optional dotenv file and then the GAMEAPI_* environment.
// Variables already present in the environment win over the file.
func Load() (*Config, error) {
	loadEnvFile(getEnvOrDefault("GAMEAPI_ENV_FILE", ".env"))

	def := Default()
	var errs []error
	cfg := &Config{
		BaseURL:         os.Getenv("GAMEAPI_BASE_URL"),
		APIKey:          os.Getenv("GAMEAPI_API_KEY"),
		Timeout:         getDuration("GAMEAPI_TIMEOUT", def.Timeout, &errs),
		Platform:        getInt("GAMEAPI_PLATFORM", def.Platform, &errs),
		InvalidPlatform: getInt("GAMEAPI_INVALID_PLATFORM", def.InvalidPlatform, &errs),
		Version:         getEnvOrDefault("GAMEAPI_VERSION", def.Version),
		Region:          getEnvOrDefault("GAMEAPI_REGION", def.Region),
		Ledger:          getEnvOrDefault("GAMEAPI_LEDGER", def.Ledger),
		RedisURL:        getEnvOrDefault("GAMEAPI_REDIS_URL", def.RedisURL),
		LedgerTTL:       getDuration("GAMEAPI_LEDGER_TTL", def.LedgerTTL, &errs),
		Verbose:         getBool("GAMEAPI_VERBOSE", false, &errs),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later with a confusing error
func (c *Config) Validate() error {
	switch c.Ledger {
	case LedgerMemory, LedgerRedis:
	default:
		return fmt.Errorf("unknown ledger backend %q (want %q or %q)", c.Ledger, LedgerMemory, LedgerRedis)
	}
	if c.Ledger == LedgerRedis && c.RedisURL == "" {
		return fmt.Errorf("GAMEAPI_REDIS_URL required when GAMEAPI_LEDGER=redis")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Platform == c.InvalidPlatform {
		return fmt.Errorf("platform and invalid platform are both %d", c.Platform)
	}
	return nil
}

// LogLevel maps the verbose switch onto a slog level
func (c *Config) LogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		// no dotenv file is the normal case in CI
		return
	}
	if err := godotenv.Load(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", path, err)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// The getters below return defaultVal for an unset variable and record an
// error for one that is set but cannot be parsed.

func getDuration(key string, defaultVal time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return defaultVal
	}
	return d
}

func getInt(key string, defaultVal int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, raw))
		return defaultVal
	}
	return n
}

func getBool(key string, defaultVal bool, errs *[]error) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid boolean %q", key, raw))
		return defaultVal
	}
	return b
}
