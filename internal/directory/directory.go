// Package directory is the in-memory user directory: email to credential
// record, never persisted. It exists to hand out user identifiers; the API
// itself trusts whatever identifier a request carries.
package directory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/avolkov/pennywise/internal/domain"
	"github.com/avolkov/pennywise/internal/ledger"
)

var (
	// ErrEmailTaken reports a registration for an email that already exists.
	ErrEmailTaken = errors.New("user already exists")
	// ErrBadCredentials reports an unknown email or a wrong password.
	ErrBadCredentials = errors.New("invalid credentials")
)

// Directory maps emails to users and wires new identifiers into the ledger.
type Directory struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
	ledger  *ledger.Ledger
}

// New creates an empty directory.
func New(l *ledger.Ledger) *Directory {
	return &Directory{
		byEmail: make(map[string]domain.User),
		ledger:  l,
	}
}

// Register creates a user with a generated identifier and installs fresh
// collections for it. Fails with ErrEmailTaken on a duplicate email.
func (d *Directory) Register(ctx context.Context, email, password string) (string, error) {
	d.mu.Lock()
	if _, ok := d.byEmail[email]; ok {
		d.mu.Unlock()
		return "", ErrEmailTaken
	}
	user := domain.User{
		ID:       uuid.New().String(),
		Email:    email,
		Password: password,
	}
	d.byEmail[email] = user
	d.mu.Unlock()

	if err := d.ledger.InitUser(ctx, user.ID); err != nil {
		return "", err
	}
	return user.ID, nil
}

// Login checks the credentials by plain equality and warms the user's
// collections. Fails with ErrBadCredentials when the email is unknown or
// the password does not match.
func (d *Directory) Login(ctx context.Context, email, password string) (string, error) {
	d.mu.RLock()
	user, ok := d.byEmail[email]
	d.mu.RUnlock()

	if !ok || user.Password != password {
		return "", ErrBadCredentials
	}
	if err := d.ledger.WarmUser(ctx, user.ID); err != nil {
		return "", err
	}
	return user.ID, nil
}
