package service

import (
	"context"
	"errors"
	"fmt"

	"mindscript/internal/credential"
	"mindscript/internal/domain"
	"mindscript/internal/repository"
	"mindscript/internal/token"
)

// AccountService handles registration, login and token-based identification.
type AccountService interface {
	Register(ctx context.Context, email, password string) (string, *domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	Identify(ctx context.Context, tokenString string) (*domain.Account, error)
}

type accountService struct {
	store  repository.Store
	tokens *token.Issuer
}

func NewAccountService(store repository.Store, tokens *token.Issuer) AccountService {
	return &accountService{store: store, tokens: tokens}
}

// Register persists a new account and issues its first session token. If
// persistence fails no token is issued.
func (s *accountService) Register(ctx context.Context, email, password string) (string, *domain.Account, error) {
	email = domain.NormalizeEmail(email)

	hash, err := credential.Hash(password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.store.CreateAccount(ctx, email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}

	tokenString, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tokenString, sanitizeAccount(account), nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password are deliberately indistinguishable.
func (s *accountService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	email = domain.NormalizeEmail(email)

	account, err := s.store.FindAccountByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if account == nil || !credential.Verify(password, account.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tokenString, sanitizeAccount(account), nil
}

// Identify verifies the token and re-resolves the account by id rather than
// trusting the embedded email as current truth.
func (s *accountService) Identify(ctx context.Context, tokenString string) (*domain.Account, error) {
	identity, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	account, err := s.store.FindAccountByID(ctx, identity.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}
	return sanitizeAccount(account), nil
}

// sanitizeAccount strips the credential hash before the account leaves the
// service layer.
func sanitizeAccount(account *domain.Account) *domain.Account {
	if account == nil {
		return nil
	}
	return &domain.Account{
		ID:        account.ID,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	}
}
