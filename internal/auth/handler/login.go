package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnjaliPai16/Welly-sub000/internal/auth/resolver"
	"github.com/AnjaliPai16/Welly-sub000/internal/metrics"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.resolver.LoginWithPassword(
		c.Request.Context(),
		req.Email,
		req.Password,
	)
	if err != nil {
		// One message for unknown email, missing hash, and wrong
		// password alike.
		if errors.Is(err, resolver.ErrInvalidCredentials) {
			metrics.Logins.WithLabelValues(metrics.MethodPassword, metrics.OutcomeRejected).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
			return
		}
		metrics.Logins.WithLabelValues(metrics.MethodPassword, metrics.OutcomeError).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		metrics.Logins.WithLabelValues(metrics.MethodPassword, metrics.OutcomeError).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	metrics.Logins.WithLabelValues(metrics.MethodPassword, metrics.OutcomeOK).Inc()
	c.JSON(http.StatusOK, authResponse{
		Token: token,
		User:  viewOf(user),
	})
}
