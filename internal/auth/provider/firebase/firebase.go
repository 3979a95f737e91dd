package firebase

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/AnjaliPai16/Welly-sub000/internal/auth"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/provider"
	"github.com/AnjaliPai16/Welly-sub000/internal/logger"
)

const providerName = "firebase"

// issuerBase is the Firebase secure-token issuer prefix; the project ID
// completes both the issuer URL and the expected audience.
const issuerBase = "https://securetoken.google.com/"

// Verifier validates Firebase-issued ID tokens against Google's current
// public keys. Key fetching and refresh-on-signature-miss are handled
// by the oidc library's process-wide remote key set.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

// New initializes the verifier via OIDC discovery for the given
// Firebase project. An empty project ID is a configuration error;
// callers wanting the fail-closed behavior wire provider.Unavailable
// instead.
func New(ctx context.Context, projectID string) (*Verifier, error) {
	if projectID == "" {
		return nil, errors.New("firebase project id is required")
	}

	oidcProvider, err := oidc.NewProvider(ctx, issuerBase+projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase oidc provider: %w", err)
	}

	return &Verifier{
		verifier: oidcProvider.Verifier(&oidc.Config{
			ClientID: projectID,
		}),
	}, nil
}

// VerifyIDToken checks signature, issuer, audience, and expiry, then
// extracts the identity claim set. All failures map to
// provider.ErrInvalidToken; the concrete cause is logged, not returned.
func (v *Verifier) VerifyIDToken(ctx context.Context, rawToken string) (*auth.Claims, error) {
	if rawToken == "" {
		return nil, provider.ErrInvalidToken
	}

	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		logger.Warn("firebase id_token verification failed", map[string]any{
			"error": err.Error(),
		})
		return nil, provider.ErrInvalidToken
	}

	var claims struct {
		Subject       string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}

	if err := idToken.Claims(&claims); err != nil {
		logger.Warn("firebase id_token claims parse failed", map[string]any{
			"error": err.Error(),
		})
		return nil, provider.ErrInvalidToken
	}

	if claims.Subject == "" || claims.Email == "" {
		return nil, provider.ErrInvalidToken
	}

	logger.Info("firebase oidc verified", map[string]any{
		"issuer":         idToken.Issuer,
		"email_verified": claims.EmailVerified,
		"expiry_unix":    idToken.Expiry.Unix(),
	})

	return &auth.Claims{
		Provider:       providerName,
		ProviderUserID: claims.Subject,
		Email:          claims.Email,
		EmailVerified:  claims.EmailVerified,
		DisplayName:    claims.Name,
		PhotoURL:       claims.Picture,
	}, nil
}
