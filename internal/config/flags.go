package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/studentverse/internal/flagx"
)

var knownFlags = []string{"driver", "d", "busy-timeout", "retries", "kdf", "q", "log-level"}

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags listed in knownFlags are looked at (see flagx.FilterArgs),
// so the -c/-config flag handled by parseJson does not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("studentverse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "storage driver (sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.DurationVar(&cfg.BusyTimeout, "busy-timeout", cfg.BusyTimeout, "how long to wait on a locked store")
	fs.Uint64Var(&cfg.BusyRetries, "retries", cfg.BusyRetries, "retries when the store is busy")
	fs.StringVar(&cfg.KDF, "kdf", cfg.KDF, "password KDF for new users")
	fs.StringVar(&cfg.QuizFile, "q", cfg.QuizFile, "quiz bank JSON file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
