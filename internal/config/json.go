package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/studentverse/internal/flagx"
	"github.com/dmitrijs2005/studentverse/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values, so a partial file only
// overrides what it mentions.
type JsonConfig struct {
	DatabaseDriver   *string         `json:"database_driver"`
	DatabaseDSN      *string         `json:"database_dsn"`
	BusyTimeout      *timex.Duration `json:"busy_timeout"`
	OperationTimeout *timex.Duration `json:"operation_timeout"`
	BusyRetries      *uint64         `json:"busy_retries"`
	RetryBaseDelay   *timex.Duration `json:"retry_base_delay"`
	KDF              *string         `json:"kdf"`
	PBKDF2Iterations *int            `json:"pbkdf2_iterations"`
	LoginRate        *float64        `json:"login_rate"`
	LoginBurst       *int            `json:"login_burst"`
	QuizFile         *string         `json:"quiz_file"`
	LogLevel         *string         `json:"log_level"`
	LogFormat        *string         `json:"log_format"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// Without such a flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	setIf(&cfg.DatabaseDriver, jc.DatabaseDriver)
	setIf(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setIf(&cfg.BusyRetries, jc.BusyRetries)
	setIf(&cfg.KDF, jc.KDF)
	setIf(&cfg.PBKDF2Iterations, jc.PBKDF2Iterations)
	setIf(&cfg.LoginRate, jc.LoginRate)
	setIf(&cfg.LoginBurst, jc.LoginBurst)
	setIf(&cfg.QuizFile, jc.QuizFile)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)

	if jc.BusyTimeout != nil {
		cfg.BusyTimeout = jc.BusyTimeout.Duration
	}
	if jc.OperationTimeout != nil {
		cfg.OperationTimeout = jc.OperationTimeout.Duration
	}
	if jc.RetryBaseDelay != nil {
		cfg.RetryBaseDelay = jc.RetryBaseDelay.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
