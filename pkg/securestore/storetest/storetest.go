// Package storetest holds behaviour every securestore driver must share.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/aussiebroadwan/climblog/pkg/securestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a driver. newStore must return an empty store; Run closes it.
func Run(t *testing.T, newStore func(t *testing.T) securestore.Store) {
	t.Helper()

	t.Run("get on empty store", func(t *testing.T) {
		s := open(t, newStore)
		tok, ok, err := s.Get(context.Background())
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, tok)
	})

	t.Run("set then get", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "aaa.bbb.ccc"))
		tok, ok, err := s.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "aaa.bbb.ccc", tok)
	})

	t.Run("set overwrites", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "first"))
		require.NoError(t, s.Set(ctx, "second"))
		tok, ok, err := s.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "second", tok)
	})

	t.Run("delete removes", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "token"))
		require.NoError(t, s.Delete(ctx))
		_, ok, err := s.Get(ctx)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("delete on empty store is a no-op", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		require.NoError(t, s.Delete(ctx))
		require.NoError(t, s.Delete(ctx))
	})

	t.Run("empty token is still a token", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, ""))
		_, ok, err := s.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("concurrent writers leave one value", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		values := []string{"a.a.a", "b.b.b", "c.c.c", "d.d.d"}
		var wg sync.WaitGroup
		for _, v := range values {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.Set(ctx, v))
			}()
		}
		wg.Wait()

		tok, ok, err := s.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Contains(t, values, tok)
	})
}

func open(t *testing.T, newStore func(t *testing.T) securestore.Store) securestore.Store {
	t.Helper()
	s := newStore(t)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
