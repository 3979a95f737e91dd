package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AnjaliPai16/Welly-sub000/internal/auth/provider"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/resolver"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/store"
	"github.com/AnjaliPai16/Welly-sub000/internal/flowstate"
	"github.com/AnjaliPai16/Welly-sub000/internal/session"
)

type Handler struct {
	resolver resolver.Reconciler
	tokens   *session.Tokens
	store    store.Store

	// Hosted flow wiring; both nil when no OAuth provider is
	// configured, in which case the flow routes are not registered.
	providers *provider.Registry
	flows     flowstate.Store
}

func NewHandler(
	resolver resolver.Reconciler,
	tokens *session.Tokens,
	st store.Store,
	registry *provider.Registry,
	flows flowstate.Store,
) *Handler {
	return &Handler{
		resolver:  resolver,
		tokens:    tokens,
		store:     st,
		providers: registry,
		flows:     flows,
	}
}

// RegisterRoutes registers the unauthenticated auth surface. The
// protected routes (/auth/me) are grouped behind the gate middleware by
// the app wiring.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/firebase", h.Firebase)

	if h.providers != nil && h.flows != nil {
		r.GET("/oauth/login/:provider", h.oauthLogin)
		r.GET("/oauth/callback/:provider", h.oauthCallback)
	}
}

// userView is the user record shape returned to clients. The password
// hash never appears here.
type userView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL,omitempty"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func viewOf(u *store.UserIdentity) userView {
	return userView{
		ID:       u.ID,
		Name:     u.FullName(),
		Email:    u.Email,
		PhotoURL: u.PhotoURL,
	}
}
