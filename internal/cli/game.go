package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"github.com/dmitrijs2005/studentverse/internal/game"
	"github.com/dmitrijs2005/studentverse/internal/models"
)

// newNumberGuess is a test seam; tests replace it to fix the secret.
var newNumberGuess = game.NewNumberGuess

// Game plays one round of number guess. Nothing is recorded.
func (a *App) Game(ctx context.Context, s models.Session) error {
	fmt.Fprintln(a.out, "GAMES ZONE: Number Guess")

	g := newNumberGuess()
	prompt := fmt.Sprintf("Guess number (%d-%d)", game.MinGuess, game.MaxGuess)
	for !g.Over() {
		if err := ctx.Err(); err != nil {
			return err
		}

		text, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			fmt.Fprintln(a.out, "Please enter a whole number.")
			continue
		}

		out, err := g.Guess(n)
		if errors.Is(err, common.ErrValidation) {
			fmt.Fprintf(a.out, "Pick a number between %d and %d.\n", game.MinGuess, game.MaxGuess)
			continue
		}
		if err != nil {
			return err
		}

		switch out {
		case game.Win:
			fmt.Fprintln(a.out, "You win!")
		case game.Lost:
			fmt.Fprintln(a.out, "You lost! Number was:", g.Secret())
		default:
			fmt.Fprintln(a.out, "Wrong! Tries left:", g.TriesLeft())
		}
	}

	a.log.Debug(ctx, "game played", "user_id", s.UserID)
	return nil
}
