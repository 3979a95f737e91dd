package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AnjaliPai16/Welly-sub000/internal/flowstate"
	"github.com/AnjaliPai16/Welly-sub000/internal/logger"
	"github.com/AnjaliPai16/Welly-sub000/internal/metrics"
	"github.com/AnjaliPai16/Welly-sub000/internal/utils"
)

// oauthLogin starts the hosted redirect flow: mint state + PKCE
// verifier, stash them server-side, and send the browser to the
// provider's consent page.
func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown oauth provider"})
		return
	}

	state, err := utils.RandomString(32)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start login"})
		return
	}
	verifier, err := utils.RandomString(32)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start login"})
		return
	}

	err = h.flows.Save(c.Request.Context(), flowstate.State{
		State:        state,
		CodeVerifier: verifier,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start login"})
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, pkceChallenge(verifier)))
}

// oauthCallback terminates the flow: one-shot state consumption, code
// exchange, reconciliation, and session issuance. The response is the
// same JSON shape as the other login endpoints.
func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown oauth provider"})
		return
	}

	flow, err := h.flows.Consume(c.Request.Context(), c.Query("state"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid state"})
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", nil)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	claims, err := p.ExchangeCode(c.Request.Context(), code, flow.CodeVerifier)
	if err != nil {
		metrics.Logins.WithLabelValues(metrics.MethodFederated, metrics.OutcomeRejected).Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	user, err := h.resolver.ReconcileClaims(c.Request.Context(), claims, "", "")
	if err != nil {
		metrics.Logins.WithLabelValues(metrics.MethodFederated, metrics.OutcomeError).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		metrics.Logins.WithLabelValues(metrics.MethodFederated, metrics.OutcomeError).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	metrics.Logins.WithLabelValues(metrics.MethodFederated, metrics.OutcomeOK).Inc()
	c.JSON(http.StatusOK, authResponse{
		Token: token,
		User:  viewOf(user),
	})
}
