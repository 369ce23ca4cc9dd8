// Package models defines the StudentVerse domain types shared by the
// repositories, services and the console client.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MaxUserNameLength bounds a normalized username, in runes.
const MaxUserNameLength = 64

// User is a registered identity. Salt and Hash are never empty for a stored
// user, and Hash is always derived with the hasher identified by KDF.
type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Hash      []byte
	KDF       string
	CreatedAt time.Time
}

var folder = cases.Fold()

// NormalizeUserName is the single normalization applied to usernames at
// registration and at login: NFKC, surrounding whitespace trimmed, Unicode
// case folding. "ALICE", " alice " and "Alice" all become "alice".
func NormalizeUserName(name string) string {
	return folder.String(strings.TrimSpace(norm.NFKC.String(name)))
}

// ValidateUserName normalizes name and checks it can be stored.
func ValidateUserName(name string) (string, error) {
	if err := checkEncoding("username", name); err != nil {
		return "", err
	}
	n := NormalizeUserName(name)
	if n == "" {
		return "", fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	if len([]rune(n)) > MaxUserNameLength {
		return "", fmt.Errorf("%w: username is longer than %d characters", common.ErrValidation, MaxUserNameLength)
	}
	for _, r := range n {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: username contains control characters", common.ErrValidation)
		}
	}
	return n, nil
}

// checkEncoding rejects text no backend can store: invalid UTF-8 or NUL.
func checkEncoding(field, s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: %s is not valid UTF-8", common.ErrValidation, field)
	}
	if strings.ContainsRune(s, 0) {
		return fmt.Errorf("%w: %s contains a NUL byte", common.ErrValidation, field)
	}
	return nil
}

// ValidatePassword checks the password is usable; its content is never
// altered or logged.
func ValidatePassword(password []byte) error {
	if len(password) == 0 {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	return nil
}
