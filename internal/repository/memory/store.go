// Package memory provides the volatile Store backing. State lives for the
// process lifetime only; a coarse mutex gives each operation the same
// atomicity the durable backing gets from its single-writer connection.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"mindscript/internal/domain"
	"mindscript/internal/repository"
)

type Store struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account  // id -> account
	byEmail  map[string]string          // normalized email -> id
	scripts  map[string][]domain.Script // owner id -> scripts, most recent first
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		byEmail:  make(map[string]string),
		scripts:  make(map[string][]domain.Script),
	}
}

var _ repository.Store = (*Store)(nil)

func (s *Store) CreateAccount(ctx context.Context, email, passwordHash string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, repository.ErrEmailTaken
	}

	account := domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.accounts[account.ID] = account
	s.byEmail[email] = account.ID

	out := account
	return &out, nil
}

func (s *Store) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	account := s.accounts[id]
	return &account, nil
}

func (s *Store) FindAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (s *Store) DeleteAccount(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return false, nil
	}
	delete(s.accounts, id)
	delete(s.byEmail, account.Email)
	delete(s.scripts, id)
	return true, nil
}

func (s *Store) CreateScript(ctx context.Context, script domain.Script) (*domain.Script, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	script.ID = uuid.NewString()
	script.CreatedAt = now
	script.UpdatedAt = now
	script.Symptoms = append([]string(nil), script.Symptoms...)

	// Prepend so the slice stays most-recent-first.
	s.scripts[script.OwnerID] = append([]domain.Script{script}, s.scripts[script.OwnerID]...)

	out := script.Clone()
	return &out, nil
}

func (s *Store) ListScripts(ctx context.Context, ownerID string) ([]domain.Script, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.scripts[ownerID]
	out := make([]domain.Script, 0, len(list))
	for _, script := range list {
		out = append(out, script.Clone())
	}
	return out, nil
}

func (s *Store) GetScript(ctx context.Context, ownerID, scriptID string) (*domain.Script, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, script := range s.scripts[ownerID] {
		if script.ID == scriptID {
			out := script.Clone()
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) DeleteScript(ctx context.Context, ownerID, scriptID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.scripts[ownerID]
	for i, script := range list {
		if script.ID == scriptID {
			s.scripts[ownerID] = append(list[:i:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
