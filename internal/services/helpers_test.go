package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/studentverse/internal/cryptox"
	"github.com/dmitrijs2005/studentverse/internal/dbx"
	"github.com/dmitrijs2005/studentverse/internal/repositories/repomanager"
	"github.com/dmitrijs2005/studentverse/internal/storage"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		Timeout: 10 * time.Second,
		Retry:   dbx.RetryPolicy{Retries: 3, BaseDelay: time.Millisecond},
		Clock:   func() time.Time { return fixedNow },
	}
}

func testHasher(t *testing.T) cryptox.Hasher {
	t.Helper()
	h, err := cryptox.NewPBKDF2(cryptox.MinPBKDF2Iterations)
	require.NoError(t, err)
	return h
}

func openDB(t *testing.T, path string) *storage.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), storage.Options{Driver: "sqlite", DSN: path, BusyTimeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newServices opens a fresh database and wires both services to it.
func newServices(t *testing.T) (*AuthService, *JournalService) {
	t.Helper()
	db := openDB(t, filepath.Join(t.TempDir(), "sv.db"))
	rm := repomanager.NewSQLRepositoryManager(db.Dialect)
	return NewAuthService(db.SQL, rm, testHasher(t), testOptions()),
		NewJournalService(db.SQL, rm, testOptions())
}
