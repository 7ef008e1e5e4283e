package repository

import (
	"context"
	"errors"

	"mindscript/internal/domain"
)

// ErrEmailTaken is returned by CreateAccount when the normalized email is
// already registered.
var ErrEmailTaken = errors.New("email already registered")

// Store is the single persistence contract for accounts and scripts. Two
// interchangeable implementations exist (memory, sqlite); one is selected at
// process start. Both must expose identical observable behavior.
//
// Lookups return (nil, nil) when no record matches — absence is a normal
// result, never an error. Errors indicate genuine medium failure. Each call
// is atomic on its own; no transaction spans multiple calls. Returned values
// are copies, never live references into the store.
type Store interface {
	// CreateAccount assigns a fresh id and creation timestamp atomically
	// with the write. Emails are expected pre-normalized by the caller.
	CreateAccount(ctx context.Context, email, passwordHash string) (*domain.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindAccountByID(ctx context.Context, id string) (*domain.Account, error)
	// DeleteAccount removes the account and every script it owns as one
	// atomic operation. Reports whether an account was removed.
	DeleteAccount(ctx context.Context, id string) (bool, error)

	// CreateScript persists script, assigning id, CreatedAt and UpdatedAt
	// (equal at creation) atomically. Id and timestamps on the argument are
	// ignored.
	CreateScript(ctx context.Context, script domain.Script) (*domain.Script, error)
	// ListScripts returns the owner's scripts most recent first. Unknown
	// owners yield an empty slice, not an error.
	ListScripts(ctx context.Context, ownerID string) ([]domain.Script, error)
	// GetScript returns (nil, nil) both for an unknown id and for an id
	// owned by someone else; the two cases are indistinguishable.
	GetScript(ctx context.Context, ownerID, scriptID string) (*domain.Script, error)
	// DeleteScript reports true iff a script matching both id and owner was
	// removed.
	DeleteScript(ctx context.Context, ownerID, scriptID string) (bool, error)
}
