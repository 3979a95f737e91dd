package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnjaliPai16/Welly-sub000/internal/auth"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/credentials"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/provider"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/store"
)

// fakeVerifier returns a fixed claim set for any token, or an error.
type fakeVerifier struct {
	claims *auth.Claims
	err    error
}

func (f fakeVerifier) VerifyIDToken(ctx context.Context, raw string) (*auth.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func newService(verifier provider.TokenVerifier) (*Service, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return NewService(st, credentials.NewHasher(bcrypt.MinCost), verifier), st
}

func TestRegisterThenLoginRoundtrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(provider.Unavailable{})

	created, err := svc.RegisterWithPassword(ctx, "A@X.com", "secret123", "Ada", "Lovelace")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "a@x.com", created.Email)

	loggedIn, err := svc.LoginWithPassword(ctx, "a@x.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, created.ID, loggedIn.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(provider.Unavailable{})

	_, err := svc.RegisterWithPassword(ctx, "a@x.com", "secret123", "Ada", "Lovelace")
	require.NoError(t, err)

	// Same email, different casing.
	_, err = svc.RegisterWithPassword(ctx, "A@x.COM", "otherpass1", "Someone", "Else")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestRegisterAgainstFederatedOriginAccount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(fakeVerifier{claims: &auth.Claims{
		Provider:       "firebase",
		ProviderUserID: "sub-1",
		Email:          "fed@x.com",
		EmailVerified:  true,
	}})

	_, err := svc.LoginWithFederatedToken(ctx, "tok", "Fed User", "")
	require.NoError(t, err)

	// AlreadyExists regardless of which path created the record.
	_, err = svc.RegisterWithPassword(ctx, "fed@x.com", "secret123", "Fed", "User")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(fakeVerifier{claims: &auth.Claims{
		Provider:       "firebase",
		ProviderUserID: "sub-1",
		Email:          "fed@x.com",
		EmailVerified:  true,
	}})

	_, err := svc.RegisterWithPassword(ctx, "a@x.com", "secret123", "Ada", "Lovelace")
	require.NoError(t, err)
	_, err = svc.LoginWithFederatedToken(ctx, "tok", "Fed User", "")
	require.NoError(t, err)

	// Unknown email.
	_, err = svc.LoginWithPassword(ctx, "nobody@x.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Wrong password.
	_, err = svc.LoginWithPassword(ctx, "a@x.com", "wrongpass1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Federated-only account: no hash, correct-looking password must
	// still fail, never silently succeed.
	_, err = svc.LoginWithPassword(ctx, "fed@x.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestFederatedLoginIsIdempotentAndRefreshesPhoto(t *testing.T) {
	ctx := context.Background()

	st := store.NewMemoryStore()
	svc := NewService(st, credentials.NewHasher(bcrypt.MinCost), fakeVerifier{claims: &auth.Claims{
		Provider:       "firebase",
		ProviderUserID: "sub-1",
		Email:          "fed@x.com",
		EmailVerified:  true,
	}})

	first, err := svc.LoginWithFederatedToken(ctx, "tok", "Fed User", "https://p/1.png")
	require.NoError(t, err)
	require.Equal(t, "https://p/1.png", first.PhotoURL)

	second, err := svc.LoginWithFederatedToken(ctx, "tok", "Fed User", "https://p/2.png")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	stored, err := st.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "https://p/2.png", stored.PhotoURL)
	require.Empty(t, stored.PasswordHash)
}

func TestFederatedLoginLinksPasswordAccountWithoutTouchingHash(t *testing.T) {
	ctx := context.Background()

	st := store.NewMemoryStore()
	svc := NewService(st, credentials.NewHasher(bcrypt.MinCost), fakeVerifier{claims: &auth.Claims{
		Provider:       "firebase",
		ProviderUserID: "sub-1",
		Email:          "a@x.com",
		EmailVerified:  true,
	}})

	created, err := svc.RegisterWithPassword(ctx, "a@x.com", "secret123", "Ada", "Lovelace")
	require.NoError(t, err)

	linked, err := svc.LoginWithFederatedToken(ctx, "tok", "Ada Lovelace", "https://p/ada.png")
	require.NoError(t, err)
	require.Equal(t, created.ID, linked.ID)

	stored, err := st.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "https://p/ada.png", stored.PhotoURL)
	require.NotEmpty(t, stored.PasswordHash)

	// Password login keeps working after the federated link.
	_, err = svc.LoginWithPassword(ctx, "a@x.com", "secret123")
	require.NoError(t, err)
}

func TestFederatedLoginDerivesNames(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name      string
		hint      string
		claimName string
		email     string
		wantFirst string
		wantLast  string
	}{
		{"splits on first space", "Ada King Lovelace", "", "a@x.com", "Ada", "King Lovelace"},
		{"single word", "Ada", "", "a@x.com", "Ada", ""},
		{"claim name as fallback", "", "Grace Hopper", "g@x.com", "Grace", "Hopper"},
		{"email local part as last resort", "", "", "linus@x.com", "linus", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newService(fakeVerifier{claims: &auth.Claims{
				Provider:       "firebase",
				ProviderUserID: "sub-1",
				Email:          tc.email,
				DisplayName:    tc.claimName,
			}})

			user, err := svc.LoginWithFederatedToken(ctx, "tok", tc.hint, "")
			require.NoError(t, err)
			require.Equal(t, tc.wantFirst, user.FirstName)
			require.Equal(t, tc.wantLast, user.LastName)
		})
	}
}

func TestFederatedLoginPropagatesVerifierErrors(t *testing.T) {
	ctx := context.Background()

	svc, _ := newService(provider.Unavailable{})
	_, err := svc.LoginWithFederatedToken(ctx, "tok", "", "")
	require.ErrorIs(t, err, provider.ErrVerifierUnavailable)

	svc, _ = newService(fakeVerifier{err: provider.ErrInvalidToken})
	_, err = svc.LoginWithFederatedToken(ctx, "tok", "", "")
	require.ErrorIs(t, err, provider.ErrInvalidToken)
}

func TestConcurrentRegisterSingleWinner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(provider.Unavailable{})

	const attempts = 8
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			_, err := svc.RegisterWithPassword(ctx, "race@x.com", "secret123", "R", "Ace")
			results <- err
		}()
	}

	var wins, conflicts int
	for i := 0; i < attempts; i++ {
		switch err := <-results; {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, attempts-1, conflicts)
}
