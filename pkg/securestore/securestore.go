// Package securestore persists the single bearer token that backs the
// current session. Drivers live in sub-packages; every driver encrypts the
// value at rest and keeps at most one record under Key.
package securestore

import (
	"context"
	"errors"
	"fmt"
)

// Key is the fixed record identifier the token is stored under.
const Key = "jwt"

// ErrStorage wraps every failure of the underlying storage. Absence of a
// token is not an error.
var ErrStorage = errors.New("securestore: storage failure")

// Store holds at most one token.
type Store interface {
	// Get returns the stored token. ok is false when nothing is stored.
	Get(ctx context.Context) (token string, ok bool, err error)

	// Set replaces any stored token.
	Set(ctx context.Context, token string) error

	// Delete removes the stored token. Deleting nothing is not an error.
	Delete(ctx context.Context) error

	// Close releases the underlying resources.
	Close() error
}

// Sealer encrypts values before they reach disk. *cryptox.Sealer
// implements it.
type Sealer interface {
	Seal(plaintext, additional []byte) ([]byte, error)
	Open(sealed, additional []byte) ([]byte, error)
}

// Wrap marks err as a storage failure of op, keeping the cause inspectable.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// SealToken encrypts token bound to Key.
func SealToken(s Sealer, token string) ([]byte, error) {
	return s.Seal([]byte(token), []byte(Key))
}

// OpenToken decrypts a value produced by SealToken.
func OpenToken(s Sealer, sealed []byte) (string, error) {
	plain, err := s.Open(sealed, []byte(Key))
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
