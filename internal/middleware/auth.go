package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/AnjaliPai16/Welly-sub000/internal/metrics"
	"github.com/AnjaliPai16/Welly-sub000/internal/session"
)

// unexported, collision-proof context key
type userIDContextKeyType struct{}

var userIDKey = userIDContextKeyType{}

// UserIDFromContext extracts the authenticated user ID from context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// AuthMiddleware gates every protected request behind session token
// verification. Verification is stateless: the middleware never queries
// the credential store, so a stale subject is a downstream concern.
type AuthMiddleware struct {
	Tokens *session.Tokens
}

func NewAuthMiddleware(tokens *session.Tokens) *AuthMiddleware {
	return &AuthMiddleware{Tokens: tokens}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Extract the bearer token. The token travels only in the
		// Authorization header, never in a cookie or URL.
		raw, err := bearerToken(r)
		if err != nil {
			metrics.TokenVerifications.WithLabelValues(metrics.OutcomeRejected).Inc()
			unauthorized(w, err)
			return
		}

		// 2. Verify signature and expiry.
		userID, err := a.Tokens.Resolve(raw)
		if err != nil {
			metrics.TokenVerifications.WithLabelValues(metrics.OutcomeRejected).Inc()
			unauthorized(w, err)
			return
		}

		metrics.TokenVerifications.WithLabelValues(metrics.OutcomeOK).Inc()

		// 3. Attach the verified subject and continue.
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", session.ErrMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", session.ErrMalformedToken
	}
	return strings.TrimSpace(token), nil
}

func unauthorized(w http.ResponseWriter, err error) {
	msg := "unauthorized"
	switch {
	case errors.Is(err, session.ErrMissingToken):
		msg = "missing token"
	case errors.Is(err, session.ErrMalformedToken):
		msg = "malformed token"
	case errors.Is(err, session.ErrInvalidSignature):
		msg = "invalid token signature"
	case errors.Is(err, session.ErrExpired):
		msg = "token expired"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
