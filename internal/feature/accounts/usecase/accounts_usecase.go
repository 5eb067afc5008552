// Package usecase implements the business logic for the accounts feature.
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"incrementum/internal/feature/accounts/domain/entity"
	"incrementum/internal/shared/apperr"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// apiKeyBytes is the entropy of a generated API key (hex-encoded to 64 chars).
	apiKeyBytes = 32
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// AccountRepository abstracts the persistence layer for accounts.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type AccountRepository interface {
	// Create persists a new account. Returns a conflict error when the
	// phone, email or API key already exists.
	Create(ctx context.Context, a *entity.Account) error

	// FindByEmail returns the account with the given email, or a not-found error.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByID returns the account with the given id, or a not-found error.
	FindByID(ctx context.Context, id uint) (*entity.Account, error)

	// FindByAPIKey returns the account owning the given API key, or a not-found error.
	FindByAPIKey(ctx context.Context, key string) (*entity.Account, error)
}

// TokenGenerator mints signed bearer tokens for authenticated accounts.
type TokenGenerator interface {
	GenerateToken(accountID uint, email string) (string, error)
}

// AccountsUsecase implements registration and login for accounts.
type AccountsUsecase struct {
	accounts AccountRepository
	tokens   TokenGenerator
}

// NewAccountsUsecase creates a new AccountsUsecase.
func NewAccountsUsecase(accounts AccountRepository, tokens TokenGenerator) *AccountsUsecase {
	return &AccountsUsecase{accounts: accounts, tokens: tokens}
}

// Register creates a new account. The password is stored only as a bcrypt
// hash and a fresh API key is generated for the account. Uniqueness of
// phone, email and API key is enforced by the store, not pre-checked here;
// a duplicate surfaces as a conflict error.
func (u *AccountsUsecase) Register(ctx context.Context, name, phone, email, password string) (*entity.Account, error) {
	if name == "" {
		return nil, apperr.Validationf("name must not be empty")
	}
	if !phonePattern.MatchString(phone) {
		return nil, apperr.Validationf("malformed phone number %q", phone)
	}
	if !emailPattern.MatchString(email) {
		return nil, apperr.Validationf("malformed email address %q", email)
	}
	if len(password) < minPasswordLength {
		return nil, apperr.Validationf("password must be at least %d characters long", minPasswordLength)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	key, err := generateAPIKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate api key: %w", err)
	}

	a := &entity.Account{
		Name:         name,
		Phone:        phone,
		Email:        email,
		PasswordHash: string(hashed),
		APIKey:       key,
	}
	if err := u.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Login authenticates an account and returns a signed bearer token.
// A bcrypt comparison runs even when the account does not exist, so the
// response time does not reveal whether the email is registered.
func (u *AccountsUsecase) Login(ctx context.Context, email, password string) (string, error) {
	a, err := u.accounts.FindByEmail(ctx, email)

	// Dummy hash keeps bcrypt.CompareHashAndPassword on the failure path too.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = a.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", errors.New("invalid email or password")
	}

	token, tokenErr := u.tokens.GenerateToken(a.ID, a.Email)
	if tokenErr != nil {
		return "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}
	return token, nil
}

// GetByAPIKey resolves the account owning an API key.
func (u *AccountsUsecase) GetByAPIKey(ctx context.Context, key string) (*entity.Account, error) {
	if key == "" {
		return nil, apperr.Validationf("api key must not be empty")
	}
	return u.accounts.FindByAPIKey(ctx, key)
}

// GetByID resolves an account by id.
func (u *AccountsUsecase) GetByID(ctx context.Context, id uint) (*entity.Account, error) {
	return u.accounts.FindByID(ctx, id)
}

// generateAPIKey returns a 64-character hex key from a CSPRNG.
func generateAPIKey() (string, error) {
	b := make([]byte, apiKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
