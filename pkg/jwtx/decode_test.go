package jwtx_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/jwtx"
	"github.com/aussiebroadwan/climblog/pkg/jwtx/jwtxtest"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func segment(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(10 * time.Minute).Truncate(time.Second)
	token := jwtxtest.Token(t, 42, "alex", exp)

	claims, ok := jwtx.Decode(token)
	require.True(t, ok)
	require.Equal(t, "42", claims.Subject())
	require.Equal(t, "alex", claims.Username())

	id, ok := claims.UserID()
	require.True(t, ok)
	require.Equal(t, int64(42), id)

	got, ok := claims.Expiry()
	require.True(t, ok)
	require.WithinDuration(t, exp, got, time.Millisecond)
}

func TestDecodeNumericSubject(t *testing.T) {
	t.Parallel()

	token := jwtxtest.Mint(t, jwt.MapClaims{"sub": 7, "exp": 4102444800})

	claims, ok := jwtx.Decode(token)
	require.True(t, ok)
	require.Equal(t, "7", claims.Subject())

	id, ok := claims.UserID()
	require.True(t, ok)
	require.Equal(t, int64(7), id)
	require.Empty(t, claims.Username())
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	header := segment(`{"alg":"none"}`)
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one segment", "abc"},
		{"two segments", header + "." + segment(`{"exp":1}`)},
		{"four segments", header + "." + segment(`{"exp":1}`) + ".sig.extra"},
		{"empty payload", header + "..sig"},
		{"invalid base64", header + ".!!!not-base64!!!.sig"},
		{"invalid json", header + "." + segment(`{"exp":`) + ".sig"},
		{"json array", header + "." + segment(`[1,2,3]`) + ".sig"},
		{"json string", header + "." + segment(`"hello"`) + ".sig"},
		{"json null", header + "." + segment(`null`) + ".sig"},
		{"trailing data", header + "." + segment(`{"exp":1}{"exp":2}`) + ".sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := jwtx.Decode(tt.token)
			require.False(t, ok)
			require.True(t, jwtx.IsExpired(tt.token, jwtx.DefaultGrace))
		})
	}
}

func TestDecodeAcceptsPaddingAndStandardAlphabet(t *testing.T) {
	t.Parallel()

	// Question marks encode to "/" in the standard alphabet.
	payload := `{"username":"??>>","exp":4102444800}`
	std := base64.StdEncoding.EncodeToString([]byte(payload))

	claims, ok := jwtx.Decode("h." + std + ".s")
	require.True(t, ok)
	require.Equal(t, "??>>", claims.Username())
}

func TestIsExpiredBoundaries(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_760_000_000, 0)
	mint := func(exp float64) string {
		return jwtxtest.Mint(t, jwt.MapClaims{"sub": "1", "username": "u", "exp": exp})
	}
	nowSecs := float64(now.UnixNano()) / float64(time.Second)

	t.Run("ten seconds ahead is valid", func(t *testing.T) {
		require.False(t, jwtx.IsExpiredAt(mint(nowSecs+10), jwtx.DefaultGrace, now))
	})

	t.Run("one second ago is expired", func(t *testing.T) {
		require.True(t, jwtx.IsExpiredAt(mint(nowSecs-1), jwtx.DefaultGrace, now))
	})

	t.Run("inside grace window is expired", func(t *testing.T) {
		require.True(t, jwtx.IsExpiredAt(mint(nowSecs+0.003), jwtx.DefaultGrace, now))
	})

	t.Run("exactly at exp minus grace is expired", func(t *testing.T) {
		require.True(t, jwtx.IsExpiredAt(mint(nowSecs+5), jwtx.DefaultGrace, now))
	})

	t.Run("zero grace uses exp directly", func(t *testing.T) {
		require.False(t, jwtx.IsExpiredAt(mint(nowSecs+0.5), 0, now))
	})

	t.Run("negative grace is treated as zero", func(t *testing.T) {
		require.True(t, jwtx.IsExpiredAt(mint(nowSecs), -time.Hour, now))
	})

	t.Run("missing exp is expired", func(t *testing.T) {
		tok := jwtxtest.Mint(t, jwt.MapClaims{"sub": "1"})
		require.True(t, jwtx.IsExpiredAt(tok, jwtx.DefaultGrace, now))
	})

	t.Run("string exp is expired", func(t *testing.T) {
		tok := jwtxtest.Mint(t, jwt.MapClaims{"sub": "1", "exp": "4102444800"})
		require.True(t, jwtx.IsExpiredAt(tok, jwtx.DefaultGrace, now))
	})
}

func TestIsExpiredUsesWallClock(t *testing.T) {
	t.Parallel()

	require.False(t, jwtx.IsExpired(jwtxtest.Valid(t, 1, "a"), jwtx.DefaultGrace))
	require.True(t, jwtx.IsExpired(jwtxtest.Expired(t, 1, "a"), jwtx.DefaultGrace))
}
