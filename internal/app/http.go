package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AnjaliPai16/Welly-sub000/internal/auth/credentials"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/handler"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/provider"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/provider/firebase"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/provider/google"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/resolver"
	"github.com/AnjaliPai16/Welly-sub000/internal/auth/store"
	"github.com/AnjaliPai16/Welly-sub000/internal/config"
	"github.com/AnjaliPai16/Welly-sub000/internal/flowstate"
	"github.com/AnjaliPai16/Welly-sub000/internal/logger"
	"github.com/AnjaliPai16/Welly-sub000/internal/middleware"
	"github.com/AnjaliPai16/Welly-sub000/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	tokens, err := session.New(
		[]byte(cfg.SessionSecret),
		cfg.SessionIssuer,
		cfg.SessionTTL,
	)
	if err != nil {
		return nil, nil, err
	}

	userStore := store.NewPostgresStore(infra.DB)
	hasher := credentials.NewHasher(cfg.BcryptCost)

	// The verifier is chosen once, at wiring time. Without a project ID
	// the federated path fails closed; password auth is unaffected.
	var verifier provider.TokenVerifier = provider.Unavailable{}
	if cfg.FirebaseProjectID != "" {
		fb, err := firebase.New(ctx, cfg.FirebaseProjectID)
		if err != nil {
			return nil, nil, err
		}
		verifier = fb
	} else {
		logger.Warn("firebase project not configured, federated login disabled", nil)
	}

	reconciler := resolver.NewService(userStore, hasher, verifier)

	var registry *provider.Registry
	var flows flowstate.Store
	if cfg.GoogleEnabled() {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}

		registry = provider.NewRegistry(googleProvider)

		if infra.Redis != nil {
			flows = flowstate.NewRedisStore(infra.Redis.Client)
		} else {
			flows = flowstate.NewMemoryStore()
		}
	}

	authHandler := handler.NewHandler(reconciler, tokens, userStore, registry, flows)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ----------------------------
	// Protected Routes
	// ----------------------------

	authed := router.Group("/auth")
	authed.Use(middleware.GinRequireAuth(authMiddleware))

	authed.GET("/me", authHandler.Me)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if infra.Redis != nil {
			if err := infra.Redis.Close(); err != nil {
				return err
			}
		}
		return infra.DB.Close()
	}, nil
}
