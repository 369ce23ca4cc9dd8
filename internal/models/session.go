package models

import "time"

// Session identifies the authenticated user of one console session. It is
// handed to every journal command explicitly; nothing in the program keeps a
// global "current user".
type Session struct {
	UserID    string
	UserName  string
	StartedAt time.Time
}

// Progress summarizes a user's journals.
type Progress struct {
	// History holds every quiz attempt, most recent first. Best and Latest
	// point into it.
	History        []QuizResult
	Attempts       int
	CorrectAnswers int
	TotalQuestions int
	Best           *QuizResult
	Latest         *QuizResult
	Notes          int
	Plans          int
}

// Percent is the share of correctly answered questions over all attempts,
// 0 when no quiz was taken.
func (p Progress) Percent() float64 {
	if p.TotalQuestions == 0 {
		return 0
	}
	return float64(p.CorrectAnswers) * 100 / float64(p.TotalQuestions)
}
