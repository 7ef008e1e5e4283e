package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mindscript/internal/repository"
	"mindscript/internal/repository/memory"
	"mindscript/internal/repository/sqlite"
	"mindscript/internal/repository/storetest"
)

func newStore(t *testing.T) repository.Store {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "mindscript.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := sqlite.NewStore(db)
	require.NoError(t, store.Init(context.Background()))
	return store
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, newStore)
}

// The durable and volatile backings must be indistinguishable for the same
// operation sequence.
func TestEquivalenceWithMemory(t *testing.T) {
	storetest.RunEquivalence(t, newStore, func(t *testing.T) repository.Store {
		return memory.NewStore()
	})
}
