package jwtx

import (
	"crypto"
	"crypto/ed25519"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (AccessClaims, error)
}

// KeySet holds Ed25519 verification keys by kid. Safe for concurrent use.
type KeySet struct {
	mu  sync.RWMutex
	pub map[string]ed25519.PublicKey
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{pub: make(map[string]ed25519.PublicKey)}
}

// AddSigner registers the public half of s.
func (k *KeySet) AddSigner(s Signer) error {
	return k.Add(s.KID(), s.Public())
}

// Add registers an Ed25519 public key under kid.
func (k *KeySet) Add(kid string, pub crypto.PublicKey) error {
	key, ok := pub.(ed25519.PublicKey)
	if !ok || len(key) != ed25519.PublicKeySize {
		return ErrInvalidKey
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub[kid] = key
	return nil
}

// Get returns the public key for kid.
func (k *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if pk, ok := k.pub[kid]; ok {
		return pk, nil
	}
	return nil, ErrNoKey
}

// IsReady returns true if the KeySet has at least one key loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pub) > 0
}

// EdDSAVerifier validates JWTs signed using EdDSA (Ed25519).
type EdDSAVerifier struct {
	keys   *KeySet
	issuer string
	aud    []string
	now    func() time.Time
}

// NewVerifierEdDSA creates a verifier using a KeySet of Ed25519 public keys.
func NewVerifierEdDSA(keys *KeySet, issuer string, aud []string) *EdDSAVerifier {
	return &EdDSAVerifier{keys: keys, issuer: issuer, aud: aud, now: time.Now}
}

// Verify validates the JWT string and returns its parsed claims.
func (v *EdDSAVerifier) Verify(tokenStr string) (AccessClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims AccessClaims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("jwtx: missing kid")
		}
		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
		}
		return pub, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return AccessClaims{}, ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return AccessClaims{}, ErrInvalidSig
	case err != nil:
		return AccessClaims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	case !token.Valid:
		return AccessClaims{}, ErrInvalidSig
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return AccessClaims{}, err
	}
	if err := claims.ValidateAudience(v.aud); err != nil {
		return AccessClaims{}, err
	}
	if err := claims.ValidateExpiryAt(v.now(), 0); err != nil {
		return AccessClaims{}, err
	}
	if _, err := claims.UserID(); err != nil {
		return AccessClaims{}, err
	}

	return claims, nil
}
