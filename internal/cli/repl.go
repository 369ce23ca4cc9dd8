package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"github.com/dmitrijs2005/studentverse/internal/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	currentSession() (models.Session, bool)
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Quiz(ctx context.Context, s models.Session) error
	AddNote(ctx context.Context, s models.Session) error
	Notes(ctx context.Context, s models.Session) error
	AddPlan(ctx context.Context, s models.Session) error
	Plans(ctx context.Context, s models.Session) error
	Progress(ctx context.Context, s models.Session) error
	Game(ctx context.Context, s models.Session) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF, when ctx is cancelled or when the user types
// "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - quiz           take the quiz
//	  - note | notes   write a note | list notes
//	  - plan | plans   write a study plan | list plans
//	  - progress       quiz history and summary
//	  - game           play number guess
//	  - logout         end the session
//	  - exit | quit    leave the program
//
// Journal commands receive the current session explicitly; without one they
// are refused. Handler errors are reported and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("sv %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		s, loggedIn := a.currentSession()
		var cmdErr error

		switch cmd {
		case "help":
			if loggedIn {
				printlnFn("Available commands: quiz, note, notes, plan, plans, progress, game, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			if loggedIn {
				printlnFn("Already logged in as", s.UserName)
				continue
			}
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "quiz", "note", "notes", "plan", "plans", "progress", "game":
			if !loggedIn {
				printlnFn("Please login first.")
				continue
			}
			cmdErr = dispatchJournal(ctx, a, cmd, s)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(describeError(cmdErr))
		}
	}
}

func dispatchJournal(ctx context.Context, a execIface, cmd string, s models.Session) error {
	switch cmd {
	case "quiz":
		return a.Quiz(ctx, s)
	case "note":
		return a.AddNote(ctx, s)
	case "notes":
		return a.Notes(ctx, s)
	case "plan":
		return a.AddPlan(ctx, s)
	case "plans":
		return a.Plans(ctx, s)
	case "progress":
		return a.Progress(ctx, s)
	case "game":
		return a.Game(ctx, s)
	}
	return nil
}

// describeError renders err for the user. Storage details stay in the log.
func describeError(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, common.ErrAlreadyExists):
		return "That username is already taken."
	case errors.Is(err, common.ErrValidation):
		return "Invalid input: " + err.Error()
	case errors.Is(err, common.ErrNotFound):
		return "Your account no longer exists, please log in again."
	case errors.Is(err, common.ErrStorageBusy):
		return "The store is busy, please try again."
	case errors.Is(err, common.ErrStorageUnavailable):
		return "The store is unavailable, see the log for details."
	}
	return "Error: " + err.Error()
}
