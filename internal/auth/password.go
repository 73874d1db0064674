// Package auth implements the login gate: bcrypt credential verification
// and JWT session tokens. The original dashboard compared plaintext
// credentials in the browser; this package replaces that with hashed
// storage and server-side verification.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"nexcrm/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrUsernameExists     = errors.New("username already registered")
)

// UserStore is the persistence surface the authenticator needs. It is
// satisfied by the SQLite repository.
type UserStore interface {
	CreateUser(ctx context.Context, user core.User) error
	GetUserByUsername(ctx context.Context, username string) (*core.User, error)
}

// PasswordAuthenticator verifies username/password pairs against bcrypt
// hashes held by the user store.
type PasswordAuthenticator struct {
	store UserStore
}

func NewPasswordAuthenticator(store UserStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{store: store}
}

// ValidateCredential checks minimum password requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword returns the bcrypt hash to persist for a new credential.
func HashPassword(credential string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, user core.User, credential string) (*core.User, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	existing, err := a.store.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := HashPassword(credential)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := a.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies the username and password, returning the user if
// valid. The error is deliberately identical for unknown users and wrong
// passwords.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*core.User, error) {
	user, err := a.store.GetUserByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
