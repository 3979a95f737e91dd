package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound reports that no user matched the lookup key.
	ErrNotFound = errors.New("user not found")

	// ErrAlreadyExists reports a normalized-email collision. For the
	// Postgres store it is produced from the unique-violation raised by
	// the users_email_lower_unique index, so concurrent duplicate
	// registrations are arbitrated by the database, not by the caller.
	ErrAlreadyExists = errors.New("user already exists")
)

// UserIdentity is the durable record of one authenticated principal,
// reachable via password login, federated login, or both. Exactly one
// record exists per normalized email.
type UserIdentity struct {
	ID        string
	Email     string
	FirstName string
	LastName  string

	// PasswordHash is empty for federated-only accounts. An empty hash
	// means password login must always fail for this identity.
	PasswordHash string

	// PhotoURL is sourced only from a federated provider.
	PhotoURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins the display fields for API responses.
func (u UserIdentity) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NewUser carries the fields of a record to be created. ID and
// timestamps are assigned by the store.
type NewUser struct {
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	PhotoURL     string
}

// Store is the credential store. Lookups are keyed by normalized
// (lowercased, trimmed) email; callers pass emails already normalized.
type Store interface {
	// Create inserts a new user record and returns it with its assigned
	// ID. Returns ErrAlreadyExists on a normalized-email collision.
	Create(ctx context.Context, u NewUser) (*UserIdentity, error)

	// FindByEmail returns the user with the given normalized email, or
	// ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*UserIdentity, error)

	// FindByID returns the user with the given ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*UserIdentity, error)

	// UpdatePhotoURL overwrites the stored photo URL (last writer wins).
	UpdatePhotoURL(ctx context.Context, id string, photoURL string) error

	// LinkProvider records a (provider, provider_user_id) linkage for an
	// existing user. Re-linking the same pair is a no-op.
	LinkProvider(ctx context.Context, userID, provider, providerUserID string) error
}

// NormalizeEmail lowercases and trims an email so it can serve as the
// cross-path correlation key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
