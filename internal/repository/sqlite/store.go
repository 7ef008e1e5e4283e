// Package sqlite provides the durable Store backing on an embedded database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mindscript/internal/domain"
	"mindscript/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS scripts (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	symptoms TEXT NOT NULL,
	tone TEXT NOT NULL,
	duration_minutes INTEGER NOT NULL,
	body TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scripts_owner_created ON scripts (owner_id, created_at DESC);
`

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ repository.Store = (*Store)(nil)

// Init creates the schema if it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *Store) CreateAccount(ctx context.Context, email, passwordHash string) (*domain.Account, error) {
	account := domain.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO accounts (id, email, password_hash, created_at)
VALUES (?, ?, ?, ?)`,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.CreatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil, repository.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return &account, nil
}

func (s *Store) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, created_at
FROM accounts
WHERE email = ?`,
		email,
	)
	return scanAccount(row)
}

func (s *Store) FindAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, created_at
FROM accounts
WHERE id = ?`,
		id,
	)
	return scanAccount(row)
}

// DeleteAccount removes the account row; the ON DELETE CASCADE constraint
// removes its scripts in the same statement, so there is no window where
// scripts outlive their owner.
func (s *Store) DeleteAccount(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete account rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *Store) CreateScript(ctx context.Context, script domain.Script) (*domain.Script, error) {
	now := time.Now().UTC()
	script.ID = uuid.NewString()
	script.CreatedAt = now
	script.UpdatedAt = now

	symptoms, err := json.Marshal(script.Symptoms)
	if err != nil {
		return nil, fmt.Errorf("encode symptoms: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO scripts (id, owner_id, title, symptoms, tone, duration_minutes, body, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		script.ID,
		script.OwnerID,
		script.Title,
		string(symptoms),
		string(script.Tone),
		script.DurationMinutes,
		script.Body,
		script.CreatedAt,
		script.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert script: %w", err)
	}
	out := script.Clone()
	return &out, nil
}

func (s *Store) ListScripts(ctx context.Context, ownerID string) ([]domain.Script, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, owner_id, title, symptoms, tone, duration_minutes, body, created_at, updated_at
FROM scripts
WHERE owner_id = ?
ORDER BY created_at DESC, rowid DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	defer rows.Close()

	scripts := make([]domain.Script, 0)
	for rows.Next() {
		script, err := scanScript(rows)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, *script)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scripts rows: %w", err)
	}
	return scripts, nil
}

func (s *Store) GetScript(ctx context.Context, ownerID, scriptID string) (*domain.Script, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, owner_id, title, symptoms, tone, duration_minutes, body, created_at, updated_at
FROM scripts
WHERE id = ? AND owner_id = ?`,
		scriptID,
		ownerID,
	)
	script, err := scanScript(row)
	if err != nil {
		return nil, err
	}
	return script, nil
}

func (s *Store) DeleteScript(ctx context.Context, ownerID, scriptID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
DELETE FROM scripts WHERE id = ? AND owner_id = ?`,
		scriptID,
		ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("delete script: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete script rows affected: %w", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &account, nil
}

func scanScript(row rowScanner) (*domain.Script, error) {
	var (
		script   domain.Script
		symptoms string
		tone     string
	)
	if err := row.Scan(
		&script.ID,
		&script.OwnerID,
		&script.Title,
		&symptoms,
		&tone,
		&script.DurationMinutes,
		&script.Body,
		&script.CreatedAt,
		&script.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan script: %w", err)
	}
	if err := json.Unmarshal([]byte(symptoms), &script.Symptoms); err != nil {
		return nil, fmt.Errorf("decode symptoms: %w", err)
	}
	script.Tone = domain.Tone(tone)
	return &script, nil
}
