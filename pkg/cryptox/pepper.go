package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Argon2id parameters, the OWASP minimum profile.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// LoadPepper reads the password pepper from path, creating the file with a
// fresh random value if it does not exist yet. Passwords hashed under one
// pepper do not verify under another, so the file must survive restarts.
func LoadPepper(path string) error {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("cryptox: create pepper dir: %w", err)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		setPepper(string(data))
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("cryptox: read pepper: %w", err)
	}

	raw := make([]byte, keyLength)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("cryptox: generate pepper: %w", err)
	}
	value := base64.RawURLEncoding.EncodeToString(raw)
	if err := os.WriteFile(path, []byte(value), 0o600); err != nil {
		return fmt.Errorf("cryptox: write pepper: %w", err)
	}

	setPepper(value)
	return nil
}

func setPepper(v string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepper = v
}

func currentPepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}
