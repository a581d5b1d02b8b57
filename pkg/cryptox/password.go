package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrPasswordMismatch is returned by VerifyPassword for a wrong password.
var ErrPasswordMismatch = errors.New("password does not match")

// argon2Params are the cost settings stored alongside every hash, so hashes
// made under older settings keep verifying.
type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

var currentParams = argon2Params{memory: memory, iterations: iterations, parallelism: parallelism}

func (p argon2Params) key(password string, salt []byte, length uint32) []byte {
	return argon2.IDKey([]byte(password+currentPepper()), salt, p.iterations, p.memory, p.parallelism, length)
}

// HashPassword hashes password with Argon2id and the loaded pepper, returning
// a PHC string ($argon2id$v=19$m=..,t=..,p=..$salt$hash).
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: generate salt: %w", err)
	}

	p := currentParams
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.iterations, p.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(p.key(password, salt, keyLength)),
	), nil
}

// VerifyPassword compares password against a hash from HashPassword. A
// malformed hash is an error distinct from ErrPasswordMismatch.
func VerifyPassword(password, encodedHash string) error {
	p, salt, want, err := parsePHC(encodedHash)
	if err != nil {
		return err
	}

	got := p.key(password, salt, uint32(len(want))) // #nosec G115 - hash length is tiny
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

// parsePHC splits "$argon2id$v=19$m=X,t=Y,p=Z$salt$hash".
func parsePHC(encoded string) (argon2Params, []byte, []byte, error) {
	var p argon2Params

	parts := strings.Split(encoded, "$")
	switch {
	case len(parts) != 6:
		return p, nil, nil, errors.New("invalid hash format: expected 6 parts")
	case parts[1] != "argon2id":
		return p, nil, nil, errors.New("invalid hash format: not argon2id")
	case parts[2] != fmt.Sprintf("v=%d", argon2.Version):
		return p, nil, nil, errors.New("invalid hash format: wrong version")
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, nil, nil, fmt.Errorf("invalid hash format: parameters: %w", err)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("invalid hash format: salt: %w", err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("invalid hash format: hash: %w", err)
	}
	return p, salt, hash, nil
}
