package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// GenerateEd25519Key returns a fresh Ed25519 private key as PKCS8 PEM.
func GenerateEd25519Key() ([]byte, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate Ed25519 key: %w", err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal PKCS8 key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// LoadOrCreateEd25519Key returns the PEM key sealed at path, generating and
// sealing a new one when the file does not exist. An empty path always
// returns a new unsaved key.
func LoadOrCreateEd25519Key(path string, s *Sealer) ([]byte, error) {
	if path == "" {
		return GenerateEd25519Key()
	}

	aad := []byte("ed25519-signing-key")
	sealed, err := os.ReadFile(path)
	if err == nil {
		return s.Open(sealed, aad)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cryptox: read signing key: %w", err)
	}

	pemKey, err := GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	sealed, err = s.Seal(pemKey, aad)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("cryptox: create key dir: %w", err)
	}
	if err := os.WriteFile(path, sealed, 0o600); err != nil {
		return nil, fmt.Errorf("cryptox: write signing key: %w", err)
	}
	return pemKey, nil
}
