package memory_test

import (
	"testing"

	"mindscript/internal/repository"
	"mindscript/internal/repository/memory"
	"mindscript/internal/repository/storetest"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repository.Store {
		return memory.NewStore()
	})
}
