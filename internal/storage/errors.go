package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE codes we care about.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
)

// Classify wraps a driver error in the matching sentinel from package common.
// nil and sql.ErrNoRows are returned unchanged, as are errors that already
// carry a sentinel.
func Classify(err error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) || classified(err) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", common.ErrStorageBusy, err)
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		return classifySQLite(se.Code(), err)
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return classifyPostgres(pe.Code, err)
	}

	return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
}

func classified(err error) bool {
	for _, s := range []error{
		common.ErrValidation,
		common.ErrAlreadyExists,
		common.ErrInvalidCredentials,
		common.ErrNotFound,
		common.ErrStorageBusy,
		common.ErrStorageUnavailable,
	} {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}

func classifySQLite(code int, err error) error {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %w", common.ErrAlreadyExists, err)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %w", common.ErrNotFound, err)
	case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}

	// Extended codes keep the primary code in the low byte.
	switch code & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return fmt.Errorf("%w: %w", common.ErrStorageBusy, err)
	}
	return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
}

func classifyPostgres(code string, err error) error {
	switch code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %w", common.ErrAlreadyExists, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %w", common.ErrNotFound, err)
	case pgCheckViolation:
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable, pgQueryCanceled:
		return fmt.Errorf("%w: %w", common.ErrStorageBusy, err)
	}
	return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
}
