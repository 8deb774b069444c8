// handlers/middleware.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tripexpense/tripexpense-backend/services"
)

const contextUserID = "userID"

// RequireAuth validates the bearer token and stores the caller's user id
// in the request context
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		userID, err := services.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(contextUserID, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's user id
func CurrentUserID(c *gin.Context) int {
	return c.GetInt(contextUserID)
}
