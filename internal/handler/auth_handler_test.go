package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/flaveur/RealTimeChatApp/internal/database"
	"github.com/flaveur/RealTimeChatApp/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDuplicateUsername(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"password": "different456",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "username_taken")
}

func TestRegisterMissingFields(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{"password": "password123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username":    "alice",
		"password":    "password123",
		"displayName": "Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 604800, cookie.MaxAge)

	var user userPayload
	decode(t, w, &user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice", user.Name)
}

func TestLoginBadCredentials(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password and unknown user look the same to the caller.
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	wrongPassword := w.Body.String()

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "nobody",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, wrongPassword, w.Body.String())
}

func TestLogoutRevokesSession(t *testing.T) {
	r := setupRouter(t)
	cookie, _ := signup(t, r, "alice")

	w := doJSON(t, r, http.MethodGet, "/api/me", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	// The session row is gone, so the old cookie no longer authenticates.
	w = doJSON(t, r, http.MethodGet, "/api/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExpiredSessionRejected(t *testing.T) {
	r := setupRouter(t)
	cookie, _ := signup(t, r, "alice")

	require.NoError(t, database.DB.Model(&models.Session{}).
		Where("token = ?", cookie.Value).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	w := doJSON(t, r, http.MethodGet, "/api/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The expired row was deleted on sight.
	var count int64
	database.DB.Model(&models.Session{}).Where("token = ?", cookie.Value).Count(&count)
	assert.Zero(t, count)
}

func TestUnauthenticatedRequests(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{"/api/me", "/api/friends", "/api/messages", "/api/notes", "/api/settings"} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
