package handler_test

import (
	"net/http"
	"testing"

	"github.com/flaveur/RealTimeChatApp/internal/database"
	"github.com/flaveur/RealTimeChatApp/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settingsPayload struct {
	Theme         string `json:"theme"`
	Language      string `json:"language"`
	Notifications bool   `json:"notifications"`
}

func TestSettingsCreatedOnFirstRead(t *testing.T) {
	r := setupRouter(t)
	alice, aliceID := signup(t, r, "alice")

	var count int64
	database.DB.Model(&models.UserSettings{}).Where("user_id = ?", aliceID).Count(&count)
	require.Zero(t, count)

	w := doJSON(t, r, http.MethodGet, "/api/settings", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)

	var settings settingsPayload
	decode(t, w, &settings)
	assert.Equal(t, "dark", settings.Theme)
	assert.Equal(t, "no", settings.Language)
	assert.True(t, settings.Notifications)

	// The defaults were persisted as a side effect of the read.
	database.DB.Model(&models.UserSettings{}).Where("user_id = ?", aliceID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSettingsPartialUpdate(t *testing.T) {
	r := setupRouter(t)
	alice, _ := signup(t, r, "alice")

	w := doJSON(t, r, http.MethodPut, "/api/settings", gin.H{"theme": "light"}, alice)
	require.Equal(t, http.StatusOK, w.Code)

	var settings settingsPayload
	decode(t, w, &settings)
	assert.Equal(t, "light", settings.Theme)
	assert.Equal(t, "no", settings.Language, "unsupplied fields keep their values")
	assert.True(t, settings.Notifications)

	w = doJSON(t, r, http.MethodPut, "/api/settings", gin.H{"notifications": false, "language": "en"}, alice)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &settings)
	assert.Equal(t, "light", settings.Theme)
	assert.Equal(t, "en", settings.Language)
	assert.False(t, settings.Notifications)
}

func TestSettingsValidation(t *testing.T) {
	r := setupRouter(t)
	alice, _ := signup(t, r, "alice")

	w := doJSON(t, r, http.MethodPut, "/api/settings", gin.H{"theme": "neon"}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/settings", gin.H{"language": "fr"}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
