package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/studentverse/internal/logging"
	"github.com/dmitrijs2005/studentverse/internal/models"
	"github.com/dmitrijs2005/studentverse/internal/quiz"
)

// SessionManager turns credentials into sessions.
type SessionManager interface {
	Register(ctx context.Context, username string, password []byte) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) (models.Session, error)
}

// JournalService is the journal surface the console uses.
type JournalService interface {
	AppendQuizResult(ctx context.Context, userID string, score, total int) (*models.QuizResult, error)
	AppendNote(ctx context.Context, userID, text string) (*models.JournalEntry, error)
	ListNotes(ctx context.Context, userID string) ([]models.JournalEntry, error)
	AppendPlan(ctx context.Context, userID, text string) (*models.JournalEntry, error)
	ListPlans(ctx context.Context, userID string) ([]models.JournalEntry, error)
	Progress(ctx context.Context, userID string) (*models.Progress, error)
}

type App struct {
	sessions SessionManager
	journal  JournalService
	bank     *quiz.Bank
	log      logging.Logger

	// session is nil while nobody is logged in.
	session *models.Session

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(sm SessionManager, js JournalService, bank *quiz.Bank, in io.Reader, out io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		sessions: sm,
		journal:  js,
		bank:     bank,
		log:      log,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run prints the banner and serves commands until exit or end of input.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "==================================================")
	fmt.Fprintln(a.out, "        STUDENTVERSE")
	fmt.Fprintln(a.out, "     Learn | Plan | Grow")
	fmt.Fprintln(a.out, "==================================================")
	fmt.Fprintln(a.out, "Type 'help' for commands.")

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) currentSession() (models.Session, bool) {
	if a.session == nil {
		return models.Session{}, false
	}
	return *a.session, true
}

func (a *App) getStatus() string {
	if a.session == nil {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", a.session.UserName)
}
