// Package game implements the console mini games.
package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/dmitrijs2005/studentverse/internal/common"
)

const (
	MinGuess   = 1
	MaxGuess   = 10
	GuessTries = 3
)

// Outcome is the result of one guess.
type Outcome int

const (
	// Miss means the guess was wrong and tries remain.
	Miss Outcome = iota
	Win
	Lost
)

// NumberGuess hides a number in [MinGuess, MaxGuess] and allows GuessTries
// guesses. It is not safe for concurrent use.
type NumberGuess struct {
	secret    int
	triesLeft int
}

// NewNumberGuess starts a round with a random secret.
func NewNumberGuess() *NumberGuess {
	return newNumberGuess(MinGuess + rand.IntN(MaxGuess-MinGuess+1))
}

func newNumberGuess(secret int) *NumberGuess {
	return &NumberGuess{secret: secret, triesLeft: GuessTries}
}

// Guess checks n against the secret. Out-of-range numbers fail with
// common.ErrValidation and do not use up a try. Guessing after the round is
// over fails too.
func (g *NumberGuess) Guess(n int) (Outcome, error) {
	if g.Over() {
		return Lost, fmt.Errorf("%w: the round is over", common.ErrValidation)
	}
	if n < MinGuess || n > MaxGuess {
		return Miss, fmt.Errorf("%w: guess must be between %d and %d", common.ErrValidation, MinGuess, MaxGuess)
	}

	if n == g.secret {
		g.triesLeft = -1
		return Win, nil
	}

	g.triesLeft--
	if g.triesLeft == 0 {
		return Lost, nil
	}
	return Miss, nil
}

func (g *NumberGuess) TriesLeft() int {
	if g.triesLeft < 0 {
		return 0
	}
	return g.triesLeft
}

// Over reports whether the round was won or all tries are used.
func (g *NumberGuess) Over() bool {
	return g.triesLeft <= 0
}

// Secret reveals the hidden number.
func (g *NumberGuess) Secret() int {
	return g.secret
}
