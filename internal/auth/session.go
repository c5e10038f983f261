package auth

import (
	"net/http"
	"time"

	"github.com/flaveur/RealTimeChatApp/internal/config"
	"github.com/flaveur/RealTimeChatApp/internal/database"
	"github.com/flaveur/RealTimeChatApp/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "session"

// SessionTTL returns the configured session lifetime.
func SessionTTL() time.Duration {
	hours := 168
	if config.AppConfig != nil && config.AppConfig.SessionTTLHours > 0 {
		hours = config.AppConfig.SessionTTLHours
	}
	return time.Duration(hours) * time.Hour
}

// CreateSession inserts a session row for the user and returns it.
func CreateSession(userID uint) (models.Session, error) {
	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(SessionTTL()),
	}
	if err := database.DB.Create(&session).Error; err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// DestroySession deletes the session row for the given token. Deleting a
// token that no longer exists is not an error.
func DestroySession(token string) error {
	return database.DB.Delete(&models.Session{}, "token = ?", token).Error
}

// SetSessionCookie attaches the session cookie to the response.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(SessionTTL().Seconds()), "/", "", false, true)
}

// ClearSessionCookie instructs the browser to drop the session cookie.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
