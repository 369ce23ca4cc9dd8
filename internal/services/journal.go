package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/studentverse/internal/dbx"
	"github.com/dmitrijs2005/studentverse/internal/models"
	"github.com/dmitrijs2005/studentverse/internal/repositories/repomanager"
	"github.com/dmitrijs2005/studentverse/internal/storage"
)

// JournalService appends to and reads the per-user journals. Appends for a
// user id that does not exist fail with common.ErrNotFound.
type JournalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	opts        Options
}

func NewJournalService(db *sql.DB, m repomanager.RepositoryManager, opts Options) *JournalService {
	return &JournalService{db: db, repomanager: m, opts: opts.withDefaults()}
}

// AppendQuizResult records a quiz attempt stamped with the current time.
func (s *JournalService) AppendQuizResult(ctx context.Context, userID string, score, total int) (*models.QuizResult, error) {
	if err := models.ValidateQuizResult(score, total); err != nil {
		return nil, err
	}

	res := &models.QuizResult{UserID: userID, Score: score, Total: total, CreatedAt: s.opts.now()}
	repo := s.repomanager.Journal(s.db)
	if err := s.opts.run(ctx, func(ctx context.Context) error {
		return repo.AppendQuizResult(ctx, res)
	}); err != nil {
		s.opts.Logger.Error(ctx, "append quiz result failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("error saving quiz result: %w", err)
	}

	s.opts.Logger.Debug(ctx, "quiz result saved", "user_id", userID, "score", score, "total", total)
	return res, nil
}

// ListQuizResults returns the user's attempts, most recent first. An unknown
// user has an empty history.
func (s *JournalService) ListQuizResults(ctx context.Context, userID string) ([]models.QuizResult, error) {
	var res []models.QuizResult
	repo := s.repomanager.Journal(s.db)
	err := s.opts.run(ctx, func(ctx context.Context) error {
		var err error
		res, err = repo.ListQuizResults(ctx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error listing quiz results: %w", err)
	}
	return res, nil
}

func (s *JournalService) AppendNote(ctx context.Context, userID, text string) (*models.JournalEntry, error) {
	return s.appendEntry(ctx, models.KindNote, userID, text)
}

func (s *JournalService) ListNotes(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	return s.listEntries(ctx, models.KindNote, userID)
}

func (s *JournalService) AppendPlan(ctx context.Context, userID, text string) (*models.JournalEntry, error) {
	return s.appendEntry(ctx, models.KindPlan, userID, text)
}

func (s *JournalService) ListPlans(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	return s.listEntries(ctx, models.KindPlan, userID)
}

// snapshot is a read-only transaction. On SQLite it begins deferred, so it
// never asks for the write lock.
var snapshot = &sql.TxOptions{ReadOnly: true}

// Progress summarizes the user's quiz history and journal sizes from one
// consistent snapshot. The returned history is the one the summary was
// computed from.
func (s *JournalService) Progress(ctx context.Context, userID string) (*models.Progress, error) {
	var p *models.Progress
	err := s.opts.run(ctx, func(ctx context.Context) error {
		// Begin and commit failures come straight from the driver.
		return storage.Classify(dbx.WithTx(ctx, s.db, snapshot, func(ctx context.Context, tx dbx.DBTX) error {
			repo := s.repomanager.Journal(tx)

			results, err := repo.ListQuizResults(ctx, userID)
			if err != nil {
				return err
			}
			notes, err := repo.Count(ctx, models.KindNote, userID)
			if err != nil {
				return err
			}
			plans, err := repo.Count(ctx, models.KindPlan, userID)
			if err != nil {
				return err
			}

			p = summarize(results)
			p.Notes, p.Plans = notes, plans
			return nil
		}))
	})
	if err != nil {
		return nil, fmt.Errorf("error computing progress: %w", err)
	}
	return p, nil
}

// summarize expects results most recent first. The best attempt has the
// highest score ratio; among equals the most recent wins.
func summarize(results []models.QuizResult) *models.Progress {
	p := &models.Progress{History: results, Attempts: len(results)}
	for i := range results {
		r := &results[i]
		p.CorrectAnswers += r.Score
		p.TotalQuestions += r.Total
		if p.Best == nil || r.Score*p.Best.Total > p.Best.Score*r.Total {
			p.Best = r
		}
	}
	if len(results) > 0 {
		p.Latest = &results[0]
	}
	return p
}

func (s *JournalService) appendEntry(ctx context.Context, kind models.EntryKind, userID, text string) (*models.JournalEntry, error) {
	t, err := models.ValidateEntryText(text)
	if err != nil {
		return nil, err
	}

	e := &models.JournalEntry{Kind: kind, UserID: userID, Text: t, CreatedAt: s.opts.now()}
	repo := s.repomanager.Journal(s.db)
	if err := s.opts.run(ctx, func(ctx context.Context) error {
		return repo.AppendEntry(ctx, e)
	}); err != nil {
		s.opts.Logger.Error(ctx, "append entry failed", "kind", kind, "user_id", userID, "error", err)
		return nil, fmt.Errorf("error saving %s: %w", kind, err)
	}

	s.opts.Logger.Debug(ctx, "entry saved", "kind", kind, "user_id", userID, "id", e.ID)
	return e, nil
}

func (s *JournalService) listEntries(ctx context.Context, kind models.EntryKind, userID string) ([]models.JournalEntry, error) {
	var res []models.JournalEntry
	repo := s.repomanager.Journal(s.db)
	err := s.opts.run(ctx, func(ctx context.Context) error {
		var err error
		res, err = repo.ListEntries(ctx, kind, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error listing %ss: %w", kind, err)
	}
	return res, nil
}
