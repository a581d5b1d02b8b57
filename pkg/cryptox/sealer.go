package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/hkdf"
)

// MasterKeyEnv names the environment variable holding master key material
// when no key file is configured.
const MasterKeyEnv = "CLIMBLOG_MASTER_KEY"

var (
	masterKeyOnce sync.Once
	masterKey     []byte
	masterKeyErr  error
	masterKeyPath string
)

// ErrCiphertext is returned when sealed data cannot be opened.
var ErrCiphertext = errors.New("cryptox: invalid ciphertext")

// SetMasterKeyPath configures where to load the master key from. It must be
// called before the first Sealer is built.
func SetMasterKeyPath(path string) {
	masterKeyPath = path
}

// loadMasterKey reads key material from, in order:
//  1. the file set with SetMasterKeyPath
//  2. the CLIMBLOG_MASTER_KEY environment variable
//  3. a random key that only lives as long as the process
func loadMasterKey() ([]byte, error) {
	if masterKeyPath != "" {
		data, err := os.ReadFile(masterKeyPath)
		if err != nil {
			return nil, fmt.Errorf("cryptox: read master key file: %w", err)
		}
		data = []byte(strings.TrimSpace(string(data)))
		if len(data) == 0 {
			return nil, errors.New("cryptox: master key file is empty")
		}
		return data, nil
	}

	if env := os.Getenv(MasterKeyEnv); env != "" {
		return []byte(env), nil
	}

	// Anything sealed with this key is unreadable after a restart.
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("cryptox: generate ephemeral master key: %w", err)
	}
	return key, nil
}

func getMasterKey() ([]byte, error) {
	masterKeyOnce.Do(func() {
		masterKey, masterKeyErr = loadMasterKey()
	})
	return masterKey, masterKeyErr
}

// ResetMasterKeyForTesting forgets the loaded master key. Tests only.
func ResetMasterKeyForTesting() {
	masterKeyOnce = sync.Once{}
	masterKey = nil
	masterKeyErr = nil
}

// Sealer encrypts small records with AES-256-GCM. Output layout is
// [nonce][ciphertext][tag]. The additional data passed to Seal must be
// passed again to Open.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a purpose-bound key from the process master key.
func NewSealer(purpose string) (*Sealer, error) {
	master, err := getMasterKey()
	if err != nil {
		return nil, err
	}
	return NewSealerWithKey(master, purpose)
}

// NewSealerWithKey derives a purpose-bound AES-256 key from master with
// HKDF-SHA256.
func NewSealerWithKey(master []byte, purpose string) (*Sealer, error) {
	if len(master) == 0 {
		return nil, errors.New("cryptox: empty master key")
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, master, []byte("climblog/sealer/v1"), []byte(purpose))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("cryptox: derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create GCM: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext with a fresh random nonce.
func (s *Sealer) Seal(plaintext, additional []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cryptox: generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, additional), nil
}

// Open reverses Seal. Tampered data, a different key or different
// additional data all fail with ErrCiphertext.
func (s *Sealer) Open(sealed, additional []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(sealed) < n+s.aead.Overhead() {
		return nil, fmt.Errorf("%w: too short", ErrCiphertext)
	}

	plaintext, err := s.aead.Open(nil, sealed[:n], sealed[n:], additional)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCiphertext, err)
	}
	return plaintext, nil
}
