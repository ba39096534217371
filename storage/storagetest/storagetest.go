// Package storagetest holds the behaviour every storage.Store must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/jrsteele09/afterschool-portal/storage"
	"github.com/stretchr/testify/require"
)

// Run exercises a store returned by newStore. Each subtest gets a fresh store.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		s := newStore(t)
		v, ok, err := s.Get(ctx, "absent")
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "afterschool.authToken", "a.b.c"))
		v, ok, err := s.Get(ctx, "afterschool.authToken")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "a.b.c", v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "k", "one"))
		require.NoError(t, s.Set(ctx, "k", `{"role":"관리자"}`))
		v, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, `{"role":"관리자"}`, v)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "k", "v"))
		require.NoError(t, s.Remove(ctx, "k"))
		require.NoError(t, s.Remove(ctx, "k"))
		_, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "k", ""))
		v, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.True(t, ok)
		require.Empty(t, v)
	})
}
