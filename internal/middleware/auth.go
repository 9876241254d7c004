package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/inventory-api/internal/auth"
)

// TokenChecker resolves a token ID to its owning admin. A revoked or expired
// token resolves to an error.
type TokenChecker interface {
	Lookup(id string) (int64, error)
}

// AuthMiddleware guards the mutating routes. It validates the bearer JWT and
// then checks the server-side token row, so a logged-out token fails even
// before its signature expires.
func AuthMiddleware(secret []byte, tokens TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}

		adminID, tokenID, err := auth.ValidateToken(secret, parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Revocation check: logout deletes the row.
		storedAdminID, err := tokens.Lookup(tokenID)
		if err != nil || storedAdminID != adminID {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("adminID", adminID)
		c.Set("tokenID", tokenID)
		c.Next()
	}
}
