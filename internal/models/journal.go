package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/studentverse/internal/common"
)

// TimestampLayout is how journal and user timestamps are stored: ISO-8601,
// UTC, second resolution. Strings in this layout sort chronologically.
const TimestampLayout = "2006-01-02T15:04:05Z"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimestampLayout)
}

// ParseTimestamp is the inverse of FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// QuizResult is one completed quiz attempt.
type QuizResult struct {
	ID        int64
	UserID    string
	Score     int
	Total     int
	CreatedAt time.Time
}

func (r QuizResult) String() string {
	return fmt.Sprintf("%s  %d/%d", r.CreatedAt.Format(TimestampLayout), r.Score, r.Total)
}

// ValidateQuizResult enforces 0 <= score <= total and total > 0.
func ValidateQuizResult(score, total int) error {
	if total <= 0 {
		return fmt.Errorf("%w: total must be positive, got %d", common.ErrValidation, total)
	}
	if score < 0 {
		return fmt.Errorf("%w: score must not be negative, got %d", common.ErrValidation, score)
	}
	if score > total {
		return fmt.Errorf("%w: score %d exceeds total %d", common.ErrValidation, score, total)
	}
	return nil
}

// EntryKind selects one of the free-text journals.
type EntryKind string

const (
	KindNote EntryKind = "note"
	KindPlan EntryKind = "plan"
)

// Valid reports whether k is a known journal kind.
func (k EntryKind) Valid() bool {
	return k == KindNote || k == KindPlan
}

// JournalEntry is a note or a study plan.
type JournalEntry struct {
	ID        int64
	UserID    string
	Kind      EntryKind
	Text      string
	CreatedAt time.Time
}

func (e JournalEntry) String() string {
	return fmt.Sprintf("%s  %s", e.CreatedAt.Format(TimestampLayout), e.Text)
}

// ValidateEntryText trims text and rejects blank or unstorable entries.
func ValidateEntryText(text string) (string, error) {
	if err := checkEncoding("text", text); err != nil {
		return "", err
	}
	t := strings.TrimSpace(text)
	if t == "" {
		return "", fmt.Errorf("%w: text is required", common.ErrValidation)
	}
	return t, nil
}
