package sqlitestore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/climblog/pkg/cryptox"
	"github.com/aussiebroadwan/climblog/pkg/securestore"
	"github.com/aussiebroadwan/climblog/pkg/securestore/sqlitestore"
	"github.com/aussiebroadwan/climblog/pkg/securestore/storetest"
	"github.com/stretchr/testify/require"
)

func newSealer(t *testing.T) *cryptox.Sealer {
	t.Helper()
	s, err := cryptox.NewSealerWithKey([]byte("master"), "securestore")
	require.NoError(t, err)
	return s
}

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) securestore.Store {
		s, err := sqlitestore.Open(filepath.Join(t.TempDir(), "session.sqlite"), newSealer(t))
		require.NoError(t, err)
		return s
	})
}

func TestReopenKeepsTokenAndMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.sqlite")
	ctx := context.Background()

	s, err := sqlitestore.Open(path, newSealer(t))
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "a.b.c"))
	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Close())

	s, err = sqlitestore.Open(path, newSealer(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	tok, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a.b.c", tok)
}

func TestClosedStoreReportsStorageError(t *testing.T) {
	s, err := sqlitestore.Open(filepath.Join(t.TempDir(), "session.sqlite"), newSealer(t))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	require.ErrorIs(t, s.Set(context.Background(), "x"), securestore.ErrStorage)
	require.ErrorIs(t, s.Delete(context.Background()), securestore.ErrStorage)
}
