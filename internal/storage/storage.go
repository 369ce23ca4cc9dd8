package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"github.com/dmitrijs2005/studentverse/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL flavour of an open database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// Options configures Open.
type Options struct {
	Driver string
	// DSN is a file path (or file: URI) for SQLite and a URL or keyword
	// string for PostgreSQL.
	DSN string
	// BusyTimeout is how long a statement waits for a lock held by another
	// connection before failing with common.ErrStorageBusy.
	BusyTimeout time.Duration
}

// DB is an open, migrated database.
type DB struct {
	SQL     *sql.DB
	Dialect Dialect
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.SQL.Close()
}

// Open connects to the configured database, verifies the connection and
// brings the schema up to date.
func Open(ctx context.Context, opts Options) (*DB, error) {
	dialect, err := ParseDialect(opts.Driver)
	if err != nil {
		return nil, err
	}

	var dsn string
	switch dialect {
	case DialectSQLite:
		if _, err := filex.EnsureParentDir(sqlitePath(opts.DSN)); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
		}
		dsn = sqliteDSN(opts.DSN, opts.BusyTimeout)
	case DialectPostgres:
		dsn, err = postgresDSN(opts.DSN, opts.BusyTimeout)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: db open error: %w", common.ErrStorageUnavailable, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", Classify(err))
	}

	if err := Migrate(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{SQL: db, Dialect: dialect}, nil
}

// sqlitePath strips the file: scheme and any query from a SQLite DSN.
func sqlitePath(dsn string) string {
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}

// sqliteDSN turns a path into a modernc.org/sqlite DSN with the pragmas every
// connection needs: enforced foreign keys, a busy timeout, WAL journaling and
// BEGIN IMMEDIATE for write transactions.
func sqliteDSN(dsn string, busy time.Duration) string {
	params := []string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(" + strconv.FormatInt(busy.Milliseconds(), 10) + ")",
		"_pragma=journal_mode(WAL)",
		"_pragma=synchronous(NORMAL)",
		"_txlock=immediate",
	}

	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// postgresDSN adds lock_timeout to dsn unless the caller already set one.
// Both URL and keyword/value forms are accepted.
func postgresDSN(dsn string, lockTimeout time.Duration) (string, error) {
	if lockTimeout <= 0 || strings.Contains(dsn, "lock_timeout") {
		return dsn, nil
	}
	ms := strconv.FormatInt(lockTimeout.Milliseconds(), 10)

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("invalid postgres dsn: %w", err)
		}
		q := u.Query()
		q.Set("lock_timeout", ms)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	return strings.TrimSpace(dsn + " lock_timeout=" + ms), nil
}

// Rebind rewrites '?' placeholders into the dialect's native form.
func Rebind(d Dialect, query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
