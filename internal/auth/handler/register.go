package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnjaliPai16/Welly-sub000/internal/auth/resolver"
	"github.com/AnjaliPai16/Welly-sub000/internal/metrics"
)

type registerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.resolver.RegisterWithPassword(
		c.Request.Context(),
		req.Email,
		req.Password,
		req.FirstName,
		req.LastName,
	)
	if err != nil {
		if errors.Is(err, resolver.ErrAlreadyExists) {
			metrics.Registrations.WithLabelValues(metrics.OutcomeRejected).Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "account already exists"})
		} else {
			metrics.Registrations.WithLabelValues(metrics.OutcomeError).Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		metrics.Registrations.WithLabelValues(metrics.OutcomeError).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	metrics.Registrations.WithLabelValues(metrics.OutcomeOK).Inc()
	c.JSON(http.StatusCreated, authResponse{
		Token: token,
		User:  viewOf(user),
	})
}
