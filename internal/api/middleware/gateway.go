package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// UserIDHeader carries the caller identity for preferences
	UserIDHeader = "X-User-ID"
	// AnonymousUser is used when no identity header is sent
	AnonymousUser = "default"

	maxUserIDLength = 128
)

// UserIdentity reads the caller identity from X-User-ID.
// Requests without the header share the anonymous identity. Identities longer
// than maxUserIDLength bytes are rejected.
func UserIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			userID = AnonymousUser
		}
		if len(userID) > maxUserIDLength {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "InvalidRequest",
				"message": fmt.Sprintf("%s must be at most %d bytes", UserIDHeader, maxUserIDLength),
			})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// GetUserID retrieves the identity set by UserIdentity
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("user_id")
	if !exists {
		return AnonymousUser
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return AnonymousUser
	}
	return id
}
