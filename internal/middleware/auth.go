package middleware

import (
	"errors"
	"net/http"
	"strings"

	"taskhub/backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Authenticate resolves the bearer token against the credential store and
// places the caller in the request context under "user" and "user_id".
// Tokens are opaque; validity means the row still exists, so a logged-out
// token fails here immediately.
func Authenticate(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthenticated(c)
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				abortUnauthenticated(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success":       false,
				"message":       "An unexpected error occurred during authentication",
				"error_message": err.Error(),
			})
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)

		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Unauthenticated.",
	})
}
