// Package config loads runtime configuration for the StudentVerse CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with STUDENTVERSE_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-driver string        storage driver: sqlite or postgres
//	-d string             database DSN (SQLite file path or PostgreSQL URL)
//	-busy-timeout dur     how long a locked store is waited on, e.g. 5s
//	-retries int          retries for operations that find the store busy
//	-kdf string           password KDF for new users: pbkdf2-sha256 or argon2id
//	-q string             quiz bank JSON file
//	-log-level string     debug, info, warn or error
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "5s" or
// integer nanoseconds:
//
//	{
//	  "database_driver": "sqlite",
//	  "database_dsn": "data/studentverse.db",
//	  "busy_timeout": "5s",
//	  "busy_retries": 3,
//	  "kdf": "pbkdf2-sha256",
//	  "pbkdf2_iterations": 600000,
//	  "quiz_file": "questions.json",
//	  "log_level": "warn"
//	}
package config
