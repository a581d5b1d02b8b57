package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "climblog-api"},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("climblog-api"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateIssuer("someone-else"), jwtx.ErrIssuer)
	})
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Audience: []string{"mobile", "cli"}},
	}

	t.Run("contains match", func(t *testing.T) {
		require.NoError(t, c.ValidateAudience([]string{"cli"}))
	})

	t.Run("no match", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateAudience([]string{"admin"}), jwtx.ErrAudience)
	})

	t.Run("empty expected list", func(t *testing.T) {
		require.NoError(t, c.ValidateAudience(nil))
	})
}

func TestValidateExpiryAt(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		c := jwtx.NewAccessClaims(1, "alex", time.Minute, "", nil, now)
		require.NoError(t, c.ValidateExpiryAt(now, 0))
	})

	t.Run("expired token", func(t *testing.T) {
		c := jwtx.NewAccessClaims(1, "alex", time.Minute, "", nil, now.Add(-time.Hour))
		require.ErrorIs(t, c.ValidateExpiryAt(now, 0), jwtx.ErrExpired)
	})

	t.Run("expired but inside leeway", func(t *testing.T) {
		c := jwtx.NewAccessClaims(1, "alex", time.Minute, "", nil, now.Add(-70*time.Second))
		require.NoError(t, c.ValidateExpiryAt(now, 30*time.Second))
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := jwtx.NewAccessClaims(1, "alex", time.Minute, "", nil, now.Add(time.Hour))
		require.ErrorIs(t, c.ValidateExpiryAt(now, 0), jwtx.ErrNotYetValid)
	})
}

func TestNewAccessClaimsDecodeBack(t *testing.T) {
	now := time.Now().UTC()
	c := jwtx.NewAccessClaims(42, "alex", jwtx.DefaultAccessTokenTTL, "climblog-api", []string{"cli"}, now)

	require.Equal(t, "42", c.Subject)
	require.Equal(t, "alex", c.Username)
	require.NotEmpty(t, c.ID)
	require.WithinDuration(t, now.Add(15*time.Minute), c.ExpiresAt.Time, time.Second)
}

func TestUserID(t *testing.T) {
	c := jwtx.NewAccessClaims(42, "alex", time.Minute, "", nil, time.Now())
	id, err := c.UserID()
	require.NoError(t, err)
	require.EqualValues(t, 42, id)

	for _, sub := range []string{"", "alex", "0", "-3"} {
		c.Subject = sub
		_, err := c.UserID()
		require.ErrorIs(t, err, jwtx.ErrSubject, sub)
	}
}
