package provider

import (
	"context"
	"errors"

	"github.com/AnjaliPai16/Welly-sub000/internal/auth"
)

var (
	// ErrInvalidToken reports that a federated ID token failed
	// signature, audience, issuer, or expiry checks.
	ErrInvalidToken = errors.New("invalid federated token")

	// ErrVerifierUnavailable reports that the verifier's backing
	// configuration was never initialized. The verifier fails closed:
	// no claims are ever accepted unverified.
	ErrVerifierUnavailable = errors.New("federated verifier unavailable")
)

// TokenVerifier validates a caller-supplied raw ID token and extracts
// a verified claim set. Implementations return identity facts only and
// must not perform user creation, linking, or session management.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, rawToken string) (*auth.Claims, error)
}

// OAuthProvider is the contract for hosted redirect-flow providers.
// State and PKCE parameters are owned by the caller.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode exchanges the authorization code, verifies the
	// returned ID token, and yields a verified claim set.
	ExchangeCode(ctx context.Context, code string, codeVerifier string) (*auth.Claims, error)
}

// Unavailable is the fail-closed stand-in selected at wiring time when
// no federated project is configured. Choosing it is a constructor-time
// decision; handlers never consult a runtime flag.
type Unavailable struct{}

func (Unavailable) VerifyIDToken(ctx context.Context, rawToken string) (*auth.Claims, error) {
	return nil, ErrVerifierUnavailable
}
