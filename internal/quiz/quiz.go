// Package quiz holds the question bank used by the console quiz and grades
// answers against it.
package quiz

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Question is one prompt with its expected answer.
type Question struct {
	Prompt string `json:"question"`
	Answer string `json:"answer"`
}

// Correct compares answer with the expected one, ignoring surrounding space
// and letter case.
func (q Question) Correct(answer string) bool {
	return normalizeAnswer(answer) == normalizeAnswer(q.Answer)
}

var folder = cases.Fold()

func normalizeAnswer(s string) string {
	return folder.String(strings.TrimSpace(norm.NFKC.String(s)))
}

// Bank is an immutable, ordered set of questions.
type Bank struct {
	questions []Question
}

var builtin = []Question{
	{Prompt: "What is 2 + 2?", Answer: "4"},
	{Prompt: "Capital of India?", Answer: "delhi"},
	{Prompt: "Which language is this project in?", Answer: "go"},
}

// Default returns the built-in bank.
func Default() *Bank {
	return &Bank{questions: append([]Question(nil), builtin...)}
}

// NewBank validates questions and wraps them in a Bank.
func NewBank(questions []Question) (*Bank, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: question bank is empty", common.ErrValidation)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Prompt) == "" || strings.TrimSpace(q.Answer) == "" {
			return nil, fmt.Errorf("%w: question %d needs both a prompt and an answer", common.ErrValidation, i+1)
		}
	}
	return &Bank{questions: append([]Question(nil), questions...)}, nil
}

// Parse reads a JSON array of {"question": ..., "answer": ...} objects.
func Parse(r io.Reader) (*Bank, error) {
	var qs []Question
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&qs); err != nil {
		return nil, fmt.Errorf("%w: decode question bank: %w", common.ErrValidation, err)
	}
	return NewBank(qs)
}

// Load reads a bank from path. An empty path selects the built-in bank.
func Load(path string) (*Bank, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("question bank %s: %w", path, err)
	}
	defer f.Close()

	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("question bank %s: %w", path, err)
	}
	return b, nil
}

// Questions returns a copy of the bank's questions in order.
func (b *Bank) Questions() []Question {
	return append([]Question(nil), b.questions...)
}

func (b *Bank) Len() int {
	return len(b.questions)
}

// Score counts correct answers; answers[i] answers question i. Missing
// answers count as wrong.
func (b *Bank) Score(answers []string) int {
	score := 0
	for i, q := range b.questions {
		if i < len(answers) && q.Correct(answers[i]) {
			score++
		}
	}
	return score
}
