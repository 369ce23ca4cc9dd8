package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studentverse/internal/cryptox"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime settings for the StudentVerse CLI.
type Config struct {
	DatabaseDriver string        `env:"STUDENTVERSE_DB_DRIVER"`
	DatabaseDSN    string        `env:"STUDENTVERSE_DB_DSN"`
	BusyTimeout    time.Duration `env:"STUDENTVERSE_BUSY_TIMEOUT"`
	// OperationTimeout caps a single store call including busy retries.
	OperationTimeout time.Duration `env:"STUDENTVERSE_OP_TIMEOUT"`
	BusyRetries      uint64        `env:"STUDENTVERSE_BUSY_RETRIES"`
	RetryBaseDelay   time.Duration `env:"STUDENTVERSE_RETRY_BASE_DELAY"`

	KDF              string `env:"STUDENTVERSE_KDF"`
	PBKDF2Iterations int    `env:"STUDENTVERSE_PBKDF2_ITERATIONS"`

	// LoginRate is the sustained number of login attempts per second.
	LoginRate  float64 `env:"STUDENTVERSE_LOGIN_RATE"`
	LoginBurst int     `env:"STUDENTVERSE_LOGIN_BURST"`

	QuizFile string `env:"STUDENTVERSE_QUIZ_FILE"`

	LogLevel  string `env:"STUDENTVERSE_LOG_LEVEL"`
	LogFormat string `env:"STUDENTVERSE_LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "studentverse.db"
	c.BusyTimeout = 5 * time.Second
	c.OperationTimeout = 15 * time.Second
	c.BusyRetries = 3
	c.RetryBaseDelay = 50 * time.Millisecond
	c.KDF = cryptox.AlgorithmPBKDF2
	c.PBKDF2Iterations = 600_000
	c.LoginRate = 1
	c.LoginBurst = 3
	c.QuizFile = ""
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return errors.New("database dsn is required")
	}
	if c.BusyTimeout <= 0 || c.OperationTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if _, err := cryptox.NewHasher(c.KDF, c.PBKDF2Iterations); err != nil {
		return err
	}
	if c.LoginRate <= 0 || c.LoginBurst <= 0 {
		return errors.New("login rate and burst must be positive")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
