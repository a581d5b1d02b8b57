// Package boltstore keeps the session token in a bbolt file, sealed with a
// securestore.Sealer.
package boltstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/securestore"
	"go.etcd.io/bbolt"
)

var bucket = []byte("secure")

// Store implements securestore.Store on top of bbolt.
type Store struct {
	db     *bbolt.DB
	sealer securestore.Sealer
}

var _ securestore.Store = (*Store)(nil)

// Open opens (or creates) the bbolt file at path with owner-only permissions.
func Open(path string, sealer securestore.Sealer) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, securestore.Wrap("open", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, securestore.Wrap("open", fmt.Errorf("opening bbolt db: %w", err))
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, securestore.Wrap("open", err)
	}

	return &Store{db: db, sealer: sealer}, nil
}

func (s *Store) Get(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, securestore.Wrap("get", err)
	}

	var sealed []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucket).Get([]byte(securestore.Key)); v != nil {
			// bbolt values are only valid inside the transaction.
			sealed = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", false, securestore.Wrap("get", err)
	}
	if sealed == nil {
		return "", false, nil
	}

	token, err := securestore.OpenToken(s.sealer, sealed)
	if err != nil {
		return "", false, securestore.Wrap("get", err)
	}
	return token, true, nil
}

func (s *Store) Set(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return securestore.Wrap("set", err)
	}

	sealed, err := securestore.SealToken(s.sealer, token)
	if err != nil {
		return securestore.Wrap("set", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(securestore.Key), sealed)
	})
	return securestore.Wrap("set", err)
}

func (s *Store) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return securestore.Wrap("delete", err)
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(securestore.Key))
	})
	return securestore.Wrap("delete", err)
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}
