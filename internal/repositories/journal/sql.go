package journal

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"github.com/dmitrijs2005/studentverse/internal/dbx"
	"github.com/dmitrijs2005/studentverse/internal/models"
	"github.com/dmitrijs2005/studentverse/internal/storage"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect storage.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect storage.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// tableFor maps a journal kind to its table: notes or plans.
func tableFor(kind models.EntryKind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: unknown journal %q", common.ErrValidation, kind)
	}
	return string(kind) + "s", nil
}

func (r *SQLRepository) AppendQuizResult(ctx context.Context, res *models.QuizResult) error {
	query :=
		`INSERT INTO quiz_scores (user_id, score, total, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, storage.Rebind(r.dialect, query),
		res.UserID, res.Score, res.Total, models.FormatTimestamp(res.CreatedAt)).Scan(&res.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", storage.Classify(err))
	}

	return nil
}

func (r *SQLRepository) ListQuizResults(ctx context.Context, userID string) ([]models.QuizResult, error) {
	query :=
		`SELECT id, user_id, score, total, created_at FROM quiz_scores
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, storage.Rebind(r.dialect, query), userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", storage.Classify(err))
	}
	defer rows.Close()

	res := []models.QuizResult{}
	for rows.Next() {
		var (
			q       models.QuizResult
			created string
		)
		if err := rows.Scan(&q.ID, &q.UserID, &q.Score, &q.Total, &created); err != nil {
			return nil, fmt.Errorf("db error: %w", storage.Classify(err))
		}
		if q.CreatedAt, err = models.ParseTimestamp(created); err != nil {
			return nil, fmt.Errorf("%w: quiz result %d: %w", common.ErrStorageUnavailable, q.ID, err)
		}
		res = append(res, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", storage.Classify(err))
	}

	return res, nil
}

func (r *SQLRepository) AppendEntry(ctx context.Context, e *models.JournalEntry) error {
	table, err := tableFor(e.Kind)
	if err != nil {
		return err
	}

	query := `INSERT INTO ` + table + ` (user_id, text, created_at)
		 VALUES (?, ?, ?)
		 RETURNING id`

	err = r.db.QueryRowContext(ctx, storage.Rebind(r.dialect, query),
		e.UserID, e.Text, models.FormatTimestamp(e.CreatedAt)).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", storage.Classify(err))
	}

	return nil
}

func (r *SQLRepository) ListEntries(ctx context.Context, kind models.EntryKind, userID string) ([]models.JournalEntry, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, user_id, text, created_at FROM ` + table + `
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, storage.Rebind(r.dialect, query), userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", storage.Classify(err))
	}
	defer rows.Close()

	res := []models.JournalEntry{}
	for rows.Next() {
		e := models.JournalEntry{Kind: kind}
		var created string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Text, &created); err != nil {
			return nil, fmt.Errorf("db error: %w", storage.Classify(err))
		}
		if e.CreatedAt, err = models.ParseTimestamp(created); err != nil {
			return nil, fmt.Errorf("%w: %s %d: %w", common.ErrStorageUnavailable, kind, e.ID, err)
		}
		res = append(res, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", storage.Classify(err))
	}

	return res, nil
}

func (r *SQLRepository) Count(ctx context.Context, kind models.EntryKind, userID string) (int, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	query := `SELECT COUNT(*) FROM ` + table + ` WHERE user_id = ?`

	var n int
	if err := r.db.QueryRowContext(ctx, storage.Rebind(r.dialect, query), userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", storage.Classify(err))
	}

	return n, nil
}
