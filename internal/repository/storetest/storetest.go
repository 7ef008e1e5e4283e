// Package storetest holds the behavior suite every Store backing must pass.
// Backings register a factory and run the same assertions, so the memory and
// sqlite implementations cannot drift apart.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindscript/internal/domain"
	"mindscript/internal/repository"
)

// Factory returns a fresh, empty store for one test.
type Factory func(t *testing.T) repository.Store

// Run exercises the full Store contract against the backing built by factory.
func Run(t *testing.T, factory Factory) {
	t.Run("account roundtrip", func(t *testing.T) {
		ctx := context.Background()
		store := factory(t)

		created, err := store.CreateAccount(ctx, "a@x.com", "digest-1")
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		require.False(t, created.CreatedAt.IsZero())

		byEmail, err := store.FindAccountByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, created.ID, byEmail.ID)
		assert.Equal(t, "digest-1", byEmail.PasswordHash)

		byID, err := store.FindAccountByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, "a@x.com", byID.Email)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		ctx := context.Background()
		store := factory(t)

		_, err := store.CreateAccount(ctx, "a@x.com", "digest-1")
		require.NoError(t, err)

		_, err = store.CreateAccount(ctx, "a@x.com", "digest-2")
		require.ErrorIs(t, err, repository.ErrEmailTaken)
	})

	t.Run("absent account is nil not error", func(t *testing.T) {
		ctx := context.Background()
		store := factory(t)

		account, err := store.FindAccountByEmail(ctx, "nobody@x.com")
		require.NoError(t, err)
		assert.Nil(t, account)

		account, err = store.FindAccountByID(ctx, "no-such-id")
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("create script assigns id and timestamps", func(t *testing.T) {
		ctx := context.Background()
		store := factory(t)
		owner := mustAccount(t, store, "a@x.com")

		script, err := store.CreateScript(ctx, domain.Script{
			OwnerID:         owner.ID,
			Title:           "Sleep session",
			Symptoms:        []string{"insomnia", "restlessness"},
			Tone:            domain.ToneCalm,
			DurationMinutes: 20,
			Body:            "close your eyes",
		})
		require.NoError(t, err)
		require.NotEmpty(t, script.ID)
		require.False(t, script.CreatedAt.IsZero())
		assert.Equal(t, script.CreatedAt, script.UpdatedAt)

		got, err := store.GetScript(ctx, owner.ID, script.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, []string{"insomnia", "restlessness"}, got.Symptoms)
		assert.Equal(t, domain.ToneCalm, got.Tone)
		assert.Equal(t, 20, got.DurationMinutes)
		assert.Equal(t, "close your eyes", got.Body)
	})

	t.Run("list is most recent first", func(t *testing.T) {
		ctx := context.Background()
		store := factory(t)
		owner := mustAccount(t, store, "a@x.com")

		s1 := mustScript(t, store, owner.ID, "first")
		s2 := mustScript(t, store, owner.ID, "second")

		list, err := store.ListScripts(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, s2.ID, list[0].ID)
		assert.Equal(t, s1.ID, list[1].ID)
	})

	t.Run("unknown owner lists empty", func(t *testing.T) {
		ctx := context.Background()
		store := factory(t)

		list, err := store.ListScripts(ctx, "no-such-owner")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("scripts are invisible across owners", func(t *testing.T) {
		ctx := context.Background()
		store := factory(t)
		alice := mustAccount(t, store, "alice@x.com")
		bob := mustAccount(t, store, "bob@x.com")
		script := mustScript(t, store, alice.ID, "private")

		got, err := store.GetScript(ctx, bob.ID, script.ID)
		require.NoError(t, err)
		assert.Nil(t, got, "bob must not see alice's script even with its id")

		list, err := store.ListScripts(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, list)

		deleted, err := store.DeleteScript(ctx, bob.ID, script.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		// Still there for its owner.
		got, err = store.GetScript(ctx, alice.ID, script.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
	})

	t.Run("delete script", func(t *testing.T) {
		ctx := context.Background()
		store := factory(t)
		owner := mustAccount(t, store, "a@x.com")
		script := mustScript(t, store, owner.ID, "gone soon")

		deleted, err := store.DeleteScript(ctx, owner.ID, script.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		got, err := store.GetScript(ctx, owner.ID, script.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		deleted, err = store.DeleteScript(ctx, owner.ID, script.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("delete account cascades to scripts", func(t *testing.T) {
		ctx := context.Background()
		store := factory(t)
		owner := mustAccount(t, store, "a@x.com")
		mustScript(t, store, owner.ID, "one")
		mustScript(t, store, owner.ID, "two")

		deleted, err := store.DeleteAccount(ctx, owner.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		account, err := store.FindAccountByID(ctx, owner.ID)
		require.NoError(t, err)
		assert.Nil(t, account)

		list, err := store.ListScripts(ctx, owner.ID)
		require.NoError(t, err)
		assert.Empty(t, list, "cascade must leave no orphaned scripts")

		deleted, err = store.DeleteAccount(ctx, owner.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("callers receive copies", func(t *testing.T) {
		ctx := context.Background()
		store := factory(t)
		owner := mustAccount(t, store, "a@x.com")
		script := mustScript(t, store, owner.ID, "stable")

		script.Symptoms[0] = "tampered"
		script.Title = "tampered"

		got, err := store.GetScript(ctx, owner.ID, script.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "stable", got.Title)
		assert.Equal(t, []string{"insomnia"}, got.Symptoms)
	})
}

// RunEquivalence drives two backings through the same operation sequence and
// requires identical observable results. Ids and timestamps are assigned
// per-backing, so comparison is on semantic fields and ordering.
func RunEquivalence(t *testing.T, a, b Factory) {
	ctx := context.Background()
	first, second := a(t), b(t)

	type observation struct {
		kind    string
		titles  []string
		deleted bool
		found   bool
	}

	play := func(store repository.Store) []observation {
		var obs []observation

		owner, err := store.CreateAccount(ctx, "a@x.com", "digest")
		require.NoError(t, err)
		other, err := store.CreateAccount(ctx, "b@x.com", "digest")
		require.NoError(t, err)

		_, err = store.CreateAccount(ctx, "a@x.com", "digest")
		obs = append(obs, observation{kind: "dup", found: errors.Is(err, repository.ErrEmailTaken)})

		s1 := mustScript(t, store, owner.ID, "first")
		mustScript(t, store, owner.ID, "second")
		mustScript(t, store, other.ID, "other's")

		list, err := store.ListScripts(ctx, owner.ID)
		require.NoError(t, err)
		titles := make([]string, len(list))
		for i := range list {
			titles[i] = list[i].Title
		}
		obs = append(obs, observation{kind: "list", titles: titles})

		got, err := store.GetScript(ctx, other.ID, s1.ID)
		require.NoError(t, err)
		obs = append(obs, observation{kind: "cross-get", found: got != nil})

		deleted, err := store.DeleteScript(ctx, owner.ID, s1.ID)
		require.NoError(t, err)
		obs = append(obs, observation{kind: "delete", deleted: deleted})

		removed, err := store.DeleteAccount(ctx, owner.ID)
		require.NoError(t, err)
		obs = append(obs, observation{kind: "cascade", deleted: removed})

		list, err = store.ListScripts(ctx, owner.ID)
		require.NoError(t, err)
		obs = append(obs, observation{kind: "post-cascade", titles: titlesOf(list)})

		return obs
	}

	assert.Equal(t, play(first), play(second))
}

func titlesOf(scripts []domain.Script) []string {
	out := make([]string, len(scripts))
	for i := range scripts {
		out[i] = scripts[i].Title
	}
	return out
}

func mustAccount(t *testing.T, store repository.Store, email string) *domain.Account {
	t.Helper()
	account, err := store.CreateAccount(context.Background(), email, "digest")
	require.NoError(t, err)
	return account
}

func mustScript(t *testing.T, store repository.Store, ownerID, title string) *domain.Script {
	t.Helper()
	script, err := store.CreateScript(context.Background(), domain.Script{
		OwnerID:         ownerID,
		Title:           title,
		Symptoms:        []string{"insomnia"},
		Tone:            domain.ToneCalm,
		DurationMinutes: 20,
		Body:            "breathe in, breathe out",
	})
	require.NoError(t, err)
	return script
}
