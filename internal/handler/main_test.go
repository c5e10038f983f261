package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flaveur/RealTimeChatApp/internal/database"
	"github.com/flaveur/RealTimeChatApp/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter wires the full route table against a fresh in-memory database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return router.New()
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

type userPayload struct {
	ID         uint    `json:"id"`
	Username   string  `json:"username"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	StatusText *string `json:"statusText"`
	AvatarURL  *string `json:"avatarUrl"`
}

// signup registers a user and logs in, returning the session cookie and id.
func signup(t *testing.T, r *gin.Engine, username string) (*http.Cookie, uint) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %s", username, w.Body.String())

	var user userPayload
	decode(t, w, &user)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, "login %s: %s", username, w.Body.String())

	return sessionCookie(t, w), user.ID
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// befriend sends a request from a to b and accepts it as b.
func befriend(t *testing.T, r *gin.Engine, a *http.Cookie, bUsername string, b *http.Cookie) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/friends/request", gin.H{"username": bUsername}, a)
	require.Equal(t, http.StatusCreated, w.Code, "send request: %s", w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	decode(t, w, &created)

	w = doJSON(t, r, http.MethodPost, "/api/friends/accept", gin.H{"requestId": created.ID}, b)
	require.Equal(t, http.StatusOK, w.Code, "accept request: %s", w.Body.String())
}

// friendNames returns the usernames in the caller's friend list.
func friendNames(t *testing.T, r *gin.Engine, cookie *http.Cookie) []string {
	t.Helper()

	w := doJSON(t, r, http.MethodGet, "/api/friends", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Friends []userPayload `json:"friends"`
	}
	decode(t, w, &resp)

	names := []string{}
	for _, f := range resp.Friends {
		names = append(names, f.Username)
	}
	return names
}
