// internal/middleware/identity.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/artstylelab/backend/internal/utils"
)

// Identity resolves the acting user from a Bearer token when one is
// presented. Clients that predate token issuance keep working: handlers fall
// back to the user id asserted in the request body or query, so a missing or
// invalid token never aborts the request here.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Name)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}
