package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnjaliPai16/Welly-sub000/internal/auth/provider"
	"github.com/AnjaliPai16/Welly-sub000/internal/metrics"
)

// federatedRequest carries the provider-issued ID token plus display
// hints. The email field is accepted for shape compatibility but the
// verified claim is what drives reconciliation.
type federatedRequest struct {
	IDToken  string `json:"idToken" binding:"required"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

func (h *Handler) Firebase(c *gin.Context) {
	var req federatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.resolver.LoginWithFederatedToken(
		c.Request.Context(),
		req.IDToken,
		req.Name,
		req.PhotoURL,
	)
	if err != nil {
		switch {
		case errors.Is(err, provider.ErrVerifierUnavailable):
			metrics.Logins.WithLabelValues(metrics.MethodFederated, metrics.OutcomeError).Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "federated login unavailable"})
		case errors.Is(err, provider.ErrInvalidToken):
			metrics.Logins.WithLabelValues(metrics.MethodFederated, metrics.OutcomeRejected).Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid federated token"})
		default:
			metrics.Logins.WithLabelValues(metrics.MethodFederated, metrics.OutcomeError).Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "federated login failed"})
		}
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
