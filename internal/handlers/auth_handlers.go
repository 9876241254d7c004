package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/freshmart/inventory-api/internal/auth"
	"github.com/freshmart/inventory-api/internal/models"
	"github.com/freshmart/inventory-api/internal/store"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /login. Every credential mismatch returns the
// same 401 so the response never reveals whether the email exists.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationFailed(c, bindingErrors(err))
		return
	}

	admin, err := h.Admins.GetByEmail(input.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		serverError(c, err, "Database error")
		return
	}

	var password models.Password
	password.Hash = admin.PasswordHash

	match, err := password.Matches(input.Password)
	if err != nil {
		serverError(c, err, "Failed to check password")
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	// The jti is persisted so the token can be revoked on logout.
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(h.TokenTTL)

	token, err := auth.GenerateToken(h.JWTSecret, admin.ID, tokenID, h.TokenTTL)
	if err != nil {
		serverError(c, err, "Failed to generate token")
		return
	}
	if err := h.Tokens.Create(tokenID, admin.ID, expiresAt); err != nil {
		serverError(c, err, "Failed to store token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"user":         admin,
	})
}

// Logout is the handler for POST /logout. It revokes the caller's own token.
func (h *Handlers) Logout(c *gin.Context) {
	tokenID := c.GetString("tokenID")
	if tokenID != "" {
		if err := h.Tokens.Delete(tokenID); err != nil {
			serverError(c, err, "Failed to revoke token")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// CurrentUser is the handler for GET /user.
func (h *Handlers) CurrentUser(c *gin.Context) {
	adminID := c.GetInt64("adminID")

	admin, err := h.Admins.GetByID(adminID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
			return
		}
		serverError(c, err, "Database error")
		return
	}

	c.JSON(http.StatusOK, admin)
}
