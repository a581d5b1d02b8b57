package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/cryptox"
	"github.com/aussiebroadwan/climblog/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "climblog-api"

func newTestSigner(t *testing.T, kid string) *jwtx.EdDSASigner {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	return signer
}

func TestEdDSASignAndVerify(t *testing.T) {
	signer := newTestSigner(t, "test-key-eddsa")
	require.Equal(t, "EdDSA", signer.Alg())
	require.Equal(t, "test-key-eddsa", signer.KID())

	claims := jwtx.NewAccessClaims(17, "sendit", 5*time.Minute, exampleIssuer, []string{"cli"}, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.False(t, keys.IsReady())
	require.NoError(t, keys.AddSigner(signer))
	require.True(t, keys.IsReady())

	verified, err := jwtx.NewVerifierEdDSA(keys, exampleIssuer, []string{"cli"}).Verify(token)
	require.NoError(t, err)
	require.Equal(t, "17", verified.Subject)
	require.Equal(t, "sendit", verified.Username)

	// The client side codec sees the same claims without a key.
	decoded, ok := jwtx.Decode(token)
	require.True(t, ok)
	id, ok := decoded.UserID()
	require.True(t, ok)
	require.Equal(t, int64(17), id)
	require.Equal(t, "sendit", decoded.Username())
	require.False(t, jwtx.IsExpired(token, jwtx.DefaultGrace))
}

func TestEdDSAVerifyRejects(t *testing.T) {
	signer := newTestSigner(t, "k1")
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := jwtx.NewVerifierEdDSA(keys, exampleIssuer, nil)

	t.Run("malformed", func(t *testing.T) {
		_, err := verifier.Verify("not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("expired", func(t *testing.T) {
		claims := jwtx.NewAccessClaims(1, "a", time.Minute, exampleIssuer, nil, time.Now().Add(-time.Hour))
		token, err := signer.Sign(claims)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := jwtx.NewAccessClaims(1, "a", time.Minute, "elsewhere", nil, time.Now())
		token, err := signer.Sign(claims)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("signed by an unknown key", func(t *testing.T) {
		other := newTestSigner(t, "k1")
		claims := jwtx.NewAccessClaims(1, "a", time.Minute, exampleIssuer, nil, time.Now())
		token, err := other.Sign(claims)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})
}

func TestNewSignerEdDSARejectsGarbage(t *testing.T) {
	_, err := jwtx.NewSignerEdDSA("k", []byte("not pem"))
	require.Error(t, err)
}
