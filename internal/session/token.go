package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken reports that no token was presented at all.
	ErrMissingToken = errors.New("missing session token")

	// ErrMalformedToken reports a token that fails structural checks.
	ErrMalformedToken = errors.New("malformed session token")

	// ErrInvalidSignature reports a structurally valid token whose
	// signature does not verify against the process signing key.
	ErrInvalidSignature = errors.New("invalid session token signature")

	// ErrExpired reports a token past its expiry. Expiry is terminal:
	// there is no refresh and no revocation in this design.
	ErrExpired = errors.New("session token expired")
)

const signingMethod = "HS256"

// Tokens issues and verifies signed, time-bounded session tokens. A
// token asserts only {subject, issuedAt, expiresAt}; verification is
// stateless and never touches storage.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option configures optional Tokens behavior.
type Option func(*Tokens)

// WithNow injects a clock, used by tests to cross the expiry boundary.
func WithNow(now func() time.Time) Option {
	return func(t *Tokens) {
		if now != nil {
			t.now = now
		}
	}
}

// New constructs the issuer/verifier pair. The signing secret is
// process-wide configuration; an empty secret is a startup error.
func New(secret []byte, issuer string, ttl time.Duration, opts ...Option) (*Tokens, error) {
	if len(secret) == 0 {
		return nil, errors.New("session: signing secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("session: ttl must be positive")
	}

	t := &Tokens{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Issue mints a signed token bound to the given user ID.
func (t *Tokens) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("session: missing user id")
	}

	now := t.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign token: %w", err)
	}
	return signed, nil
}

// Resolve verifies a raw bearer token and returns its subject. Failures
// are one of ErrMissingToken, ErrMalformedToken, ErrInvalidSignature,
// or ErrExpired.
func (t *Tokens) Resolve(raw string) (string, error) {
	if raw == "" {
		return "", ErrMissingToken
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethod}),
		// Time claims are checked below against the injectable clock so
		// the expiry boundary is exact and testable.
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", mapParseError(err)
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return "", ErrMalformedToken
	}
	if t.issuer != "" && claims.Issuer != t.issuer {
		return "", ErrMalformedToken
	}

	now := t.now().UTC()
	if !claims.ExpiresAt.Time.UTC().After(now) {
		return "", ErrExpired
	}

	return claims.Subject, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	default:
		return ErrMalformedToken
	}
}
