// Package cryptox implements password hashing for the credential store.
//
// A Hasher turns (password, salt) into a fixed-length key with a slow,
// salted key-derivation function. Every hasher has a self-describing ID that
// is persisted next to the hash, so a stored credential can always be
// verified with the exact parameters it was created with, even after the
// configured defaults change.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of a freshly generated salt in bytes.
	SaltSize = 16

	// KeySize is the length of every derived key in bytes.
	KeySize = 32

	// MinPBKDF2Iterations is the lowest iteration count NewPBKDF2 accepts.
	MinPBKDF2Iterations = 100_000

	AlgorithmPBKDF2   = "pbkdf2-sha256"
	AlgorithmArgon2id = "argon2id"
)

var ErrUnknownHasher = errors.New("unknown password hasher")

// Hasher derives password hashes.
type Hasher interface {
	// ID encodes the algorithm and its parameters, e.g. "pbkdf2-sha256$i=600000".
	ID() string
	// Hash derives a KeySize-byte key from password and salt.
	Hash(password, salt []byte) []byte
}

type pbkdf2Hasher struct {
	iterations int
}

// NewPBKDF2 returns a PBKDF2-HMAC-SHA256 hasher.
func NewPBKDF2(iterations int) (Hasher, error) {
	if iterations < MinPBKDF2Iterations {
		return nil, fmt.Errorf("pbkdf2 iterations must be at least %d, got %d", MinPBKDF2Iterations, iterations)
	}
	return &pbkdf2Hasher{iterations: iterations}, nil
}

func (h *pbkdf2Hasher) ID() string {
	return fmt.Sprintf("%s$i=%d", AlgorithmPBKDF2, h.iterations)
}

func (h *pbkdf2Hasher) Hash(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, h.iterations, KeySize, sha256.New)
}

type argon2idHasher struct {
	time    uint32
	memory  uint32
	threads uint8
}

// NewArgon2id returns an Argon2id hasher. memory is in KiB.
func NewArgon2id(time, memory uint32, threads uint8) (Hasher, error) {
	if time == 0 || memory == 0 || threads == 0 {
		return nil, fmt.Errorf("argon2id parameters must be positive (t=%d m=%d p=%d)", time, memory, threads)
	}
	return &argon2idHasher{time: time, memory: memory, threads: threads}, nil
}

// DefaultArgon2id is an interactive login cost: one pass, 64 MiB, four
// lanes.
func DefaultArgon2id() Hasher {
	return &argon2idHasher{time: 1, memory: 64 * 1024, threads: 4}
}

func (h *argon2idHasher) ID() string {
	return fmt.Sprintf("%s$t=%d,m=%d,p=%d", AlgorithmArgon2id, h.time, h.memory, h.threads)
}

func (h *argon2idHasher) Hash(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, h.time, h.memory, h.threads, KeySize)
}

// ParseHasher reconstructs a Hasher from the ID stored with a credential.
func ParseHasher(id string) (Hasher, error) {
	alg, params, ok := strings.Cut(id, "$")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, id)
	}

	switch alg {
	case AlgorithmPBKDF2:
		var iterations int
		if _, err := fmt.Sscanf(params, "i=%d", &iterations); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnknownHasher, id, err)
		}
		return NewPBKDF2(iterations)

	case AlgorithmArgon2id:
		var (
			t, m uint32
			p    uint8
		)
		if _, err := fmt.Sscanf(params, "t=%d,m=%d,p=%d", &t, &m, &p); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnknownHasher, id, err)
		}
		return NewArgon2id(t, m, p)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, id)
}

// NewHasher builds the hasher selected by configuration.
func NewHasher(algorithm string, pbkdf2Iterations int) (Hasher, error) {
	switch algorithm {
	case AlgorithmPBKDF2:
		return NewPBKDF2(pbkdf2Iterations)
	case AlgorithmArgon2id:
		return DefaultArgon2id(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, algorithm)
}

// NewSalt returns SaltSize bytes of cryptographic randomness.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// Equal reports whether a and b are equal in time independent of their
// contents.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
