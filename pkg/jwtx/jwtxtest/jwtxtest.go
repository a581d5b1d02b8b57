// Package jwtxtest mints throwaway tokens for tests. The signatures are real
// HS256 but nothing in the client ever checks them.
package jwtxtest

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testKey = []byte("climblog-test-signing-key")

// Mint signs claims as given.
func Mint(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	if err != nil {
		t.Fatalf("jwtxtest: sign: %v", err)
	}
	return tok
}

// Token mints a token for userID/username expiring at exp. The subject is a
// decimal string like the API issues.
func Token(t testing.TB, userID int64, username string, exp time.Time) string {
	t.Helper()

	return Mint(t, jwt.MapClaims{
		"sub":      strconv.FormatInt(userID, 10),
		"username": username,
		"exp":      float64(exp.UnixNano()) / float64(time.Second),
	})
}

// Valid mints a token that stays valid for an hour.
func Valid(t testing.TB, userID int64, username string) string {
	t.Helper()
	return Token(t, userID, username, time.Now().Add(time.Hour))
}

// Expired mints a token that expired a minute ago.
func Expired(t testing.TB, userID int64, username string) string {
	t.Helper()
	return Token(t, userID, username, time.Now().Add(-time.Minute))
}
