// Package passwords hashes and checks account passwords with bcrypt.
package passwords

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventportal/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

type Hasher interface {
	Hash(raw string) (string, error)
	// Verify reports whether raw matches hash. A mismatch is (false, nil);
	// an error means the hash could not be checked at all.
	Verify(raw, hash string) (bool, error)
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func TooLong(raw string) bool {
	return len(raw) > MaxPasswordBytes
}

func (h *BcryptHasher) Hash(raw string) (string, error) {
	if TooLong(raw) {
		return "", common.ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(raw, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("bcrypt: %w", err)
	}
}
