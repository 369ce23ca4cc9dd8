// Package storage opens the StudentVerse database, applies the embedded goose
// migrations and translates driver errors into the sentinel errors of package
// common.
//
// Two backends are supported. SQLite (modernc.org/sqlite) is the default and
// keeps everything in one local file; several processes may share that file,
// writers wait up to the configured busy timeout. PostgreSQL (pgx) is used
// when a shared server is preferred; the busy timeout becomes lock_timeout.
//
// Repositories speak SQL with '?' placeholders and call Rebind before
// executing, so one query text serves both dialects.
package storage
