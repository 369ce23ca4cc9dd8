package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/studentverse/internal/models"
)

// Quiz asks every question of the bank and records the score for s.
func (a *App) Quiz(ctx context.Context, s models.Session) error {
	fmt.Fprintln(a.out, "QUIZ ZONE")

	questions := a.bank.Questions()
	total := a.bank.Len()
	answers := make([]string, 0, total)
	for _, q := range questions {
		ans, err := getSimpleText(a.reader, "Q: "+q.Prompt, a.out)
		if err != nil {
			return err
		}
		answers = append(answers, ans)
		if q.Correct(ans) {
			fmt.Fprintln(a.out, "Correct!")
		} else {
			fmt.Fprintln(a.out, "Wrong!")
		}
	}

	score := a.bank.Score(answers)
	if _, err := a.journal.AppendQuizResult(ctx, s.UserID, score, total); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Your score: %d/%d\n", score, total)
	return nil
}

func (a *App) AddNote(ctx context.Context, s models.Session) error {
	text, err := getMultiline(a.reader, "Write your note", a.out)
	if err != nil {
		return err
	}
	if _, err := a.journal.AppendNote(ctx, s.UserID, text); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved!")
	return nil
}

func (a *App) Notes(ctx context.Context, s models.Session) error {
	notes, err := a.journal.ListNotes(ctx, s.UserID)
	if err != nil {
		return err
	}
	a.printEntries("NOTES", "No notes found.", notes)
	return nil
}

func (a *App) AddPlan(ctx context.Context, s models.Session) error {
	text, err := getMultiline(a.reader, "Enter today's study plan", a.out)
	if err != nil {
		return err
	}
	if _, err := a.journal.AppendPlan(ctx, s.UserID, text); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Plan saved!")
	return nil
}

func (a *App) Plans(ctx context.Context, s models.Session) error {
	plans, err := a.journal.ListPlans(ctx, s.UserID)
	if err != nil {
		return err
	}
	a.printEntries("STUDY PLANS", "No plans yet.", plans)
	return nil
}

// Progress prints the quiz history of s followed by a summary.
func (a *App) Progress(ctx context.Context, s models.Session) error {
	p, err := a.journal.Progress(ctx, s.UserID)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "--- PROGRESS ---")
	if len(p.History) == 0 {
		fmt.Fprintln(a.out, "No quiz attempts yet.")
	}
	for _, r := range p.History {
		fmt.Fprintln(a.out, "Quiz ->", r)
	}

	fmt.Fprintf(a.out, "Attempts: %d\n", p.Attempts)
	if p.Best != nil {
		fmt.Fprintf(a.out, "Best score: %d/%d\n", p.Best.Score, p.Best.Total)
		fmt.Fprintf(a.out, "Overall: %.1f%%\n", p.Percent())
	}
	fmt.Fprintf(a.out, "Notes: %d  Plans: %d\n", p.Notes, p.Plans)
	return nil
}

func (a *App) printEntries(title, empty string, entries []models.JournalEntry) {
	fmt.Fprintf(a.out, "--- %s ---\n", title)
	if len(entries) == 0 {
		fmt.Fprintln(a.out, empty)
		return
	}
	for _, e := range entries {
		fmt.Fprintln(a.out, e)
	}
}
