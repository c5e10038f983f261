package handler

import (
	"errors"
	"net/http"

	"github.com/flaveur/RealTimeChatApp/internal/database"
	"github.com/flaveur/RealTimeChatApp/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// UpdateSettingsInput defines the structure for a partial settings update.
type UpdateSettingsInput struct {
	Theme         *string `json:"theme" example:"dark"`
	Language      *string `json:"language" example:"no"`
	Notifications *bool   `json:"notifications" example:"true"`
}

// SettingsResponse defines the structure for the user's settings.
type SettingsResponse struct {
	Theme         string `json:"theme" example:"dark"`
	Language      string `json:"language" example:"no"`
	Notifications bool   `json:"notifications" example:"true"`
}

// endregion

func newSettingsResponse(s models.UserSettings) SettingsResponse {
	return SettingsResponse{
		Theme:         string(s.Theme),
		Language:      s.Language,
		Notifications: s.Notifications,
	}
}

// getOrCreateSettings loads the settings row, inserting the defaults the
// first time a user reads their settings.
func getOrCreateSettings(userID uint) (models.UserSettings, error) {
	var settings models.UserSettings
	err := database.DB.First(&settings, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultSettings(userID)
		err = database.DB.Create(&settings).Error
	}
	return settings, err
}

// GetSettings godoc
// @Summary      Get settings
// @Description  Returns the authenticated user's settings, creating the row with defaults on first read.
// @Tags         settings
// @Produce      json
// @Success      200  {object}  SettingsResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /settings [get]
func GetSettings(c *gin.Context) {
	settings, err := getOrCreateSettings(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, newSettingsResponse(settings))
}

// UpdateSettings godoc
// @Summary      Update settings
// @Description  Updates only the supplied settings fields after validating enum membership.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        input body UpdateSettingsInput true "Fields to update"
// @Success      200  {object}  SettingsResponse
// @Failure      400  {object}  ErrorResponse "Invalid theme or language"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /settings [put]
func UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Theme != nil && !models.ValidTheme(*input.Theme) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theme"})
		return
	}
	if input.Language != nil && !models.ValidLanguage(*input.Language) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid language"})
		return
	}

	settings, err := getOrCreateSettings(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	if input.Theme != nil {
		settings.Theme = models.Theme(*input.Theme)
	}
	if input.Language != nil {
		settings.Language = *input.Language
	}
	if input.Notifications != nil {
		settings.Notifications = *input.Notifications
	}

	if err := database.DB.Save(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, newSettingsResponse(settings))
}
