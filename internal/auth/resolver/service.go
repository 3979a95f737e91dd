package resolver

import (
	"context"
	"errors"
	"strings"

	"github.com/AnjaliPai16/Welly-sub000/internal/auth"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/credentials"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/provider"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/store"
	"github.com/AnjaliPai16/Welly-sub000/internal/logger"
)

// Service is the canonical Reconciler. It owns all find-or-create and
// linking decisions; the store, hasher, and verifier supply facts.
type Service struct {
	store    store.Store
	hasher   *credentials.Hasher
	verifier provider.TokenVerifier
}

var _ Reconciler = (*Service)(nil)

func NewService(st store.Store, hasher *credentials.Hasher, verifier provider.TokenVerifier) *Service {
	return &Service{
		store:    st,
		hasher:   hasher,
		verifier: verifier,
	}
}

func (s *Service) RegisterWithPassword(
	ctx context.Context,
	email, password, firstName, lastName string,
) (*store.UserIdentity, error) {

	email = store.NormalizeEmail(email)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	// No check-then-insert: the store's uniqueness constraint decides
	// the winner when two registrations race on the same email.
	user, err := s.store.Create(ctx, store.NewUser{
		Email:        email,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: hash,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) LoginWithPassword(
	ctx context.Context,
	email, password string,
) (*store.UserIdentity, error) {

	user, err := s.store.FindByEmail(ctx, store.NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	// Federated-only accounts carry no hash and must never pass a
	// password login.
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) LoginWithFederatedToken(
	ctx context.Context,
	rawToken, displayNameHint, photoHint string,
) (*store.UserIdentity, error) {

	claims, err := s.verifier.VerifyIDToken(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	return s.ReconcileClaims(ctx, claims, displayNameHint, photoHint)
}

// ReconcileClaims maps an already-verified claim set onto exactly one
// user identity. It is shared by the firebase endpoint and the hosted
// OAuth callback.
func (s *Service) ReconcileClaims(
	ctx context.Context,
	claims *auth.Claims,
	displayNameHint, photoHint string,
) (*store.UserIdentity, error) {

	if claims == nil || claims.Email == "" {
		return nil, provider.ErrInvalidToken
	}

	email := store.NormalizeEmail(claims.Email)
	displayName := firstNonEmpty(displayNameHint, claims.DisplayName)
	photoURL := firstNonEmpty(photoHint, claims.PhotoURL)

	user, err := s.store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		// Existing account, either origin. The photo follows the latest
		// federated login; the password hash is never touched here.
		if photoURL != "" && photoURL != user.PhotoURL {
			if err := s.store.UpdatePhotoURL(ctx, user.ID, photoURL); err != nil {
				return nil, err
			}
			user.PhotoURL = photoURL
		}

	case errors.Is(err, store.ErrNotFound):
		firstName, lastName := splitDisplayName(displayName, email)
		user, err = s.store.Create(ctx, store.NewUser{
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
			PhotoURL:  photoURL,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race against a concurrent login for the same
			// email; the winner's record is ours too.
			user, err = s.store.FindByEmail(ctx, email)
		}
		if err != nil {
			return nil, err
		}

	default:
		return nil, err
	}

	if claims.ProviderUserID != "" {
		if err := s.store.LinkProvider(ctx, user.ID, claims.Provider, claims.ProviderUserID); err != nil {
			return nil, err
		}
	}

	logger.Info("federated login reconciled", map[string]any{
		"provider":       claims.Provider,
		"email_verified": claims.EmailVerified,
	})

	return user, nil
}

// splitDisplayName derives first/last name fields from a display name,
// splitting on the first space. With no display name the local part of
// the email stands in for the first name.
func splitDisplayName(displayName, email string) (first, last string) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		local, _, _ := strings.Cut(email, "@")
		return local, ""
	}

	first, last, found := strings.Cut(displayName, " ")
	if !found {
		return displayName, ""
	}
	return first, strings.TrimSpace(last)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
