package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func setupSQLite(t *testing.T) *SQLite {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.RunMigrations())
	return s
}

func TestSQLite_Slot(t *testing.T) {
	exerciseSlot(t, setupSQLite(t))
}

func TestSQLite_MigrationsAreIdempotent(t *testing.T) {
	s := setupSQLite(t)

	require.NoError(t, s.RunMigrations())
}

func TestSQLite_ConcurrentWritersAllPersist(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()
	const writers = 50

	var g errgroup.Group
	for i := 0; i < writers; i++ {
		i := i
		key := fmt.Sprintf("cart:session-%d", i)
		g.Go(func() error {
			return s.Set(ctx, key, []byte(fmt.Sprintf(`[{"id":"tee","quantity":%d}]`, i+1)))
		})
	}
	require.NoError(t, g.Wait())

	for i := 0; i < writers; i++ {
		value, err := s.Get(ctx, fmt.Sprintf("cart:session-%d", i))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf(`[{"id":"tee","quantity":%d}]`, i+1), string(value))
	}
}
