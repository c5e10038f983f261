package handler

import (
	"net/http"
	"strings"

	"github.com/flaveur/RealTimeChatApp/internal/database"
	"github.com/flaveur/RealTimeChatApp/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// UserResponse defines the structure for a user's profile as seen by clients.
type UserResponse struct {
	ID         uint    `json:"id" example:"1"`
	Username   string  `json:"username" example:"alice"`
	Name       string  `json:"name" example:"Alice"`
	Status     string  `json:"status" example:"online"`
	StatusText *string `json:"statusText"`
	AvatarURL  *string `json:"avatarUrl"`
}

// UpdateNameInput defines the structure for display name updates.
type UpdateNameInput struct {
	Name string `json:"name" binding:"required" example:"Alice A."`
}

// UpdateStatusInput defines the structure for presence updates.
type UpdateStatusInput struct {
	Status string `json:"status" binding:"required" example:"busy"`
}

// UpdateAvatarInput defines the structure for avatar URL updates.
type UpdateAvatarInput struct {
	AvatarURL string `json:"avatarUrl" binding:"required" example:"/api/upload/avatar/avatars/1-17000.png"`
}

// UpdateStatusTextInput defines the structure for status text updates.
type UpdateStatusTextInput struct {
	StatusText string `json:"statusText" example:"In a meeting"`
}

// endregion

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Name:       user.Name(),
		Status:     string(user.Status),
		StatusText: user.StatusText,
		AvatarURL:  user.AvatarURL,
	}
}

func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	return userID.(uint)
}

// GetMe godoc
// @Summary      Get current user's profile
// @Description  Retrieves the profile of the currently authenticated user.
// @Tags         users
// @Produce      json
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /me [get]
func GetMe(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, currentUserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateName godoc
// @Summary      Update display name
// @Description  Sets the authenticated user's display name (min 2 characters).
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input body UpdateNameInput true "New name"
// @Success      200  {object}  map[string]string "{"name": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /me/name [put]
func UpdateName(c *gin.Context) {
	var input UpdateNameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name must be at least 2 characters"})
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", currentUserID(c)).
		Update("display_name", name).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update name"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": name})
}

// UpdateStatus godoc
// @Summary      Update presence status
// @Description  Sets the authenticated user's presence (online, busy, away, offline).
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input body UpdateStatusInput true "New status"
// @Success      200  {object}  map[string]string "{"status": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /me/status [put]
func UpdateStatus(c *gin.Context) {
	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidUserStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", currentUserID(c)).
		Update("status", input.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": input.Status})
}

// UpdateAvatar godoc
// @Summary      Update avatar URL
// @Description  Sets the authenticated user's avatar URL.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input body UpdateAvatarInput true "New avatar URL"
// @Success      200  {object}  map[string]string "{"avatarUrl": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /me/avatar [put]
func UpdateAvatar(c *gin.Context) {
	var input UpdateAvatarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	avatarURL := strings.TrimSpace(input.AvatarURL)
	if avatarURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing avatar URL"})
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", currentUserID(c)).
		Update("avatar_url", avatarURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": avatarURL})
}

// UpdateStatusText godoc
// @Summary      Update status text
// @Description  Sets the authenticated user's custom status message (max 100 characters, empty clears it).
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input body UpdateStatusTextInput true "New status text"
// @Success      200  {object}  map[string]string "{"statusText": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /me/status-text [put]
func UpdateStatusText(c *gin.Context) {
	var input UpdateStatusTextInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := strings.TrimSpace(input.StatusText)
	if len(text) > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status text can be at most 100 characters"})
		return
	}

	var value *string
	if text != "" {
		value = &text
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", currentUserID(c)).
		Update("status_text", value).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status text"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"statusText": value})
}
