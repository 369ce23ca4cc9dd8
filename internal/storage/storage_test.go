package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T, path string, busy time.Duration) *DB {
	t.Helper()
	db, err := Open(context.Background(), Options{Driver: "sqlite", DSN: path, BusyTimeout: busy})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpen_SQLite_CreatesSchema(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "sv.db")
	db := openTemp(t, path, time.Second)

	assert.Equal(t, DialectSQLite, db.Dialect)
	for _, tbl := range []string{"goose_db_version", "users", "quiz_scores", "notes", "plans"} {
		assert.True(t, tableExists(t, db.SQL, tbl), tbl)
	}

	var fk int
	require.NoError(t, db.SQL.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)

	var mode string
	require.NoError(t, db.SQL.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpen_SQLite_ReopenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sv.db")
	first := openTemp(t, path, time.Second)
	_, err := first.SQL.Exec(`INSERT INTO users (id, username, salt, hash, kdf, created_at) VALUES ('u1', 'alice', x'01', x'02', 'k', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := openTemp(t, path, time.Second)
	var n int
	require.NoError(t, second.SQL.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "oracle", DSN: "x"})
	require.Error(t, err)
}

func TestMigrate_PropagatesGooseError(t *testing.T) {
	old := gooseUpContext
	t.Cleanup(func() { gooseUpContext = old })

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return errors.New("boom")
	}

	err := Migrate(context.Background(), nil, DialectPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
	assert.Equal(t, "postgres", gotDir)
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{
		"sqlite": DialectSQLite, "SQLite3": DialectSQLite,
		"postgres": DialectPostgres, "pgx": DialectPostgres, " postgresql ": DialectPostgres,
	} {
		got, err := ParseDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDialect("mysql")
	require.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	got := sqliteDSN("data/sv.db", 1500*time.Millisecond)
	assert.Equal(t, "file:data/sv.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(1500)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_txlock=immediate", got)

	got = sqliteDSN("file:sv.db?cache=shared", time.Second)
	assert.Equal(t, "file:sv.db?cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(1000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_txlock=immediate", got)

	assert.Equal(t, "sv.db", sqlitePath("file:sv.db?cache=shared"))
	assert.Equal(t, "/tmp/a/sv.db", sqlitePath("/tmp/a/sv.db"))
}

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"url", "postgres://u:p@localhost:5432/sv", "postgres://u:p@localhost:5432/sv?lock_timeout=5000"},
		{"url with query", "postgresql://localhost/sv?sslmode=disable", "postgresql://localhost/sv?lock_timeout=5000&sslmode=disable"},
		{"keywords", "host=localhost dbname=sv", "host=localhost dbname=sv lock_timeout=5000"},
		{"already set", "host=localhost lock_timeout=10", "host=localhost lock_timeout=10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := postgresDSN(tt.dsn, 5*time.Second)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := postgresDSN("host=x", 0)
	require.NoError(t, err)
	assert.Equal(t, "host=x", got)
}

func TestRebind(t *testing.T) {
	q := `SELECT a FROM t WHERE b = ? AND c = ? LIMIT ?`
	assert.Equal(t, q, Rebind(DialectSQLite, q))
	assert.Equal(t, `SELECT a FROM t WHERE b = $1 AND c = $2 LIMIT $3`, Rebind(DialectPostgres, q))
}

func TestClassify_SQLiteConstraints(t *testing.T) {
	t.Parallel()

	db := openTemp(t, filepath.Join(t.TempDir(), "sv.db"), time.Second)
	ctx := context.Background()

	insertUser := `INSERT INTO users (id, username, salt, hash, kdf, created_at) VALUES (?, ?, x'01', x'02', 'k', '2026-01-01T00:00:00Z')`
	_, err := db.SQL.ExecContext(ctx, insertUser, "u1", "alice")
	require.NoError(t, err)

	_, err = db.SQL.ExecContext(ctx, insertUser, "u2", "alice")
	assert.ErrorIs(t, Classify(err), common.ErrAlreadyExists)

	_, err = db.SQL.ExecContext(ctx, `INSERT INTO notes (user_id, text, created_at) VALUES ('ghost', 'hi', '2026-01-01T00:00:00Z')`)
	assert.ErrorIs(t, Classify(err), common.ErrNotFound)

	_, err = db.SQL.ExecContext(ctx, `INSERT INTO quiz_scores (user_id, score, total, created_at) VALUES ('u1', 4, 3, '2026-01-01T00:00:00Z')`)
	assert.ErrorIs(t, Classify(err), common.ErrValidation)

	_, err = db.SQL.ExecContext(ctx, `INSERT INTO notes (user_id, text, created_at) VALUES ('u1', '', '2026-01-01T00:00:00Z')`)
	assert.ErrorIs(t, Classify(err), common.ErrValidation)
}

func TestClassify_SQLiteBusy(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sv.db")
	holder := openTemp(t, path, time.Second)
	waiter := openTemp(t, path, 50*time.Millisecond)
	ctx := context.Background()

	tx, err := holder.SQL.BeginTx(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })
	_, err = tx.ExecContext(ctx, `INSERT INTO users (id, username, salt, hash, kdf, created_at) VALUES ('u1', 'alice', x'01', x'02', 'k', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = waiter.SQL.ExecContext(ctx, `INSERT INTO users (id, username, salt, hash, kdf, created_at) VALUES ('u2', 'bob', x'01', x'02', 'k', '2026-01-01T00:00:00Z')`)
	require.Error(t, err)
	assert.ErrorIs(t, Classify(err), common.ErrStorageBusy)
}

func TestClassify_Postgres(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"23505", common.ErrAlreadyExists},
		{"23503", common.ErrNotFound},
		{"23514", common.ErrValidation},
		{"40001", common.ErrStorageBusy},
		{"40P01", common.ErrStorageBusy},
		{"55P03", common.ErrStorageBusy},
		{"57014", common.ErrStorageBusy},
		{"42P01", common.ErrStorageUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := Classify(&pgconn.PgError{Code: tt.code, Message: "x"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClassify_Passthrough(t *testing.T) {
	assert.NoError(t, Classify(nil))
	assert.Same(t, sql.ErrNoRows, Classify(sql.ErrNoRows))

	already := common.ErrNotFound
	assert.Same(t, already, Classify(already))

	assert.ErrorIs(t, Classify(context.DeadlineExceeded), common.ErrStorageBusy)
	assert.ErrorIs(t, Classify(errors.New("disk I/O")), common.ErrStorageUnavailable)
}
