package resolver

import (
	"context"
	"errors"

	"github.com/AnjaliPai16/Welly-sub000/internal/auth"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/store"
)

var (
	// ErrAlreadyExists reports a registration against an email that is
	// already claimed, regardless of which path created the record.
	ErrAlreadyExists = errors.New("account already exists")

	// ErrInvalidCredentials is deliberately shared by "no such email",
	// "email has no password set", and "wrong password" so responses do
	// not leak which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Reconciler maps either authentication path onto exactly one durable
// user identity, keyed by normalized email. It is the ONLY place where
// identity-to-user mapping decisions live.
type Reconciler interface {
	// RegisterWithPassword creates a password-backed identity. The
	// store's uniqueness constraint is the sole arbiter for concurrent
	// duplicate registrations.
	RegisterWithPassword(ctx context.Context, email, password, firstName, lastName string) (*store.UserIdentity, error)

	// LoginWithPassword authenticates a password login attempt.
	LoginWithPassword(ctx context.Context, email, password string) (*store.UserIdentity, error)

	// LoginWithFederatedToken verifies a federated ID token and finds
	// or creates the matching identity. An existing password-backed
	// account gains the federated linkage without losing its password.
	LoginWithFederatedToken(ctx context.Context, rawToken, displayNameHint, photoHint string) (*store.UserIdentity, error)

	// ReconcileClaims maps an already-verified claim set onto exactly
	// one user identity; the hosted OAuth callback enters here.
	ReconcileClaims(ctx context.Context, claims *auth.Claims, displayNameHint, photoHint string) (*store.UserIdentity, error)
}
