package middleware

import (
	"net/http" // HTTP status codes

	"settleup/internal/repository" // Entity store contract

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// AdminOnlyMiddleware checks the user's role from the database on each request
func AdminOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	users := repository.NewUsers(db)
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// The JWT middleware must have run first
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, ok := userID.(uint)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// The role is read per request, so revoking admin takes effect
		// immediately even for tokens issued earlier
		user, err := users.Get(id)
		if err != nil || user.Role != "admin" {
			logrus.WithField("user_id", id).Warn("Non-admin request to admin route")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}
