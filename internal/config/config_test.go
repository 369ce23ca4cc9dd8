package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, DriverSQLite, c.DatabaseDriver)
	assert.Equal(t, "studentverse.db", c.DatabaseDSN)
	assert.Equal(t, 5*time.Second, c.BusyTimeout)
	assert.Equal(t, uint64(3), c.BusyRetries)
	assert.Equal(t, "pbkdf2-sha256", c.KDF)
	assert.Equal(t, 600_000, c.PBKDF2Iterations)
	assert.Equal(t, "warn", c.LogLevel)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_NoSources(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("STUDENTVERSE_DB_DSN", "/env/sv.db")
	t.Setenv("STUDENTVERSE_BUSY_RETRIES", "9")

	cfg, err := LoadConfig([]string{"-d", "/flag/sv.db"})
	require.NoError(t, err)

	assert.Equal(t, "/flag/sv.db", cfg.DatabaseDSN)
	assert.Equal(t, uint64(9), cfg.BusyRetries)
}

func TestLoadConfig_InvalidIsRejected(t *testing.T) {
	_, err := LoadConfig([]string{"-driver", "mysql"})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "oracle" }},
		{"empty dsn", func(c *Config) { c.DatabaseDSN = "" }},
		{"zero busy timeout", func(c *Config) { c.BusyTimeout = 0 }},
		{"zero operation timeout", func(c *Config) { c.OperationTimeout = 0 }},
		{"unknown kdf", func(c *Config) { c.KDF = "md5" }},
		{"weak pbkdf2", func(c *Config) { c.PBKDF2Iterations = 1000 }},
		{"zero login rate", func(c *Config) { c.LoginRate = 0 }},
		{"zero login burst", func(c *Config) { c.LoginBurst = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestValidate_Argon2idIgnoresIterations(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.KDF = "argon2id"
	c.PBKDF2Iterations = 0
	require.NoError(t, c.Validate())
}
