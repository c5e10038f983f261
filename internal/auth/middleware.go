package auth

import (
	"net/http"
	"time"

	"github.com/flaveur/RealTimeChatApp/internal/database"
	"github.com/flaveur/RealTimeChatApp/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the session cookie to a user id and stores it in
// the request context as "userID". Expiry is checked here, on every
// protected route; an expired row is deleted and the request rejected.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var session models.Session
		if err := database.DB.First(&session, "token = ?", token).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		if session.Expired(time.Now()) {
			database.DB.Delete(&models.Session{}, "token = ?", token)
			ClearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			return
		}

		c.Set("userID", session.UserID)
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
		c.Next()
	}
}
