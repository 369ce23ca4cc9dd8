// Package journal persists the append-only per-user logs: quiz results,
// notes and study plans. Rows are never updated or deleted, and every listing
// is most recent first with ties on created_at broken by descending id.
package journal

import (
	"context"

	"github.com/dmitrijs2005/studentverse/internal/models"
)

type Repository interface {
	// AppendQuizResult stores r and sets r.ID. An unknown r.UserID fails
	// with common.ErrNotFound.
	AppendQuizResult(ctx context.Context, r *models.QuizResult) error
	ListQuizResults(ctx context.Context, userID string) ([]models.QuizResult, error)

	// AppendEntry stores e in the journal selected by e.Kind and sets e.ID.
	AppendEntry(ctx context.Context, e *models.JournalEntry) error
	ListEntries(ctx context.Context, kind models.EntryKind, userID string) ([]models.JournalEntry, error)
	Count(ctx context.Context, kind models.EntryKind, userID string) (int, error)
}
