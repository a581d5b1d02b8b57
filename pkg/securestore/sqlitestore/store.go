// Package sqlitestore keeps the session token in a sqlite database, sealed
// with a securestore.Sealer.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/securestore"
	_ "modernc.org/sqlite"
)

type Store struct {
	db     *sql.DB
	sealer securestore.Sealer
}

var _ securestore.Store = (*Store)(nil)

// Open opens the database at path and applies pending migrations.
func Open(path string, sealer securestore.Sealer) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, securestore.Wrap("open", err)
	}

	// One connection serialises writers so concurrent Sets never see
	// SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, sealer: sealer}
	if err := s.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, securestore.Wrap("migrate", err)
	}
	return s, nil
}

func (s *Store) Get(ctx context.Context) (string, bool, error) {
	var sealed []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM secure_records WHERE key = ?`, securestore.Key,
	).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, securestore.Wrap("get", err)
	}

	token, err := securestore.OpenToken(s.sealer, sealed)
	if err != nil {
		return "", false, securestore.Wrap("get", err)
	}
	return token, true, nil
}

func (s *Store) Set(ctx context.Context, token string) error {
	sealed, err := securestore.SealToken(s.sealer, token)
	if err != nil {
		return securestore.Wrap("set", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO secure_records (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		securestore.Key, sealed, time.Now().UTC(),
	)
	return securestore.Wrap("set", err)
}

func (s *Store) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM secure_records WHERE key = ?`, securestore.Key)
	return securestore.Wrap("delete", err)
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error { return s.db.Close() }
