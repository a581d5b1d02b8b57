package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL matches the lifetime the climbing API gives its
// access tokens. There are no refresh tokens, so a session lasts this long.
const DefaultAccessTokenTTL = 15 * time.Minute

// AccessClaims are the claims the API signs into an access token. The
// client only ever reads sub, username and exp back out of them.
type AccessClaims struct {
	jwt.RegisteredClaims

	// Username of the authenticated climber
	Username string `json:"username,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for a user. The subject
// is the user's numeric id in decimal.
func NewAccessClaims(
	userID int64,
	username string,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) AccessClaims {
	return AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Username: username,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// UserID parses the subject back into the user's id.
func (c *AccessClaims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrSubject
	}
	return id, nil
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *AccessClaims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *AccessClaims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiryAt checks exp and nbf against now, allowing leeway either
// side for clock skew.
func (c *AccessClaims) ValidateExpiryAt(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
