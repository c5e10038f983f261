package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/flaveur/RealTimeChatApp/internal/config"
	"github.com/flaveur/RealTimeChatApp/internal/database"
	"github.com/flaveur/RealTimeChatApp/internal/models"

	"github.com/gin-gonic/gin"
)

const maxAvatarSize = 5 * 1024 * 1024 // 5MB

var avatarExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

func uploadDir() string {
	if config.AppConfig != nil && config.AppConfig.UploadDir != "" {
		return config.AppConfig.UploadDir
	}
	return "uploads"
}

// UploadAvatar godoc
// @Summary      Upload avatar
// @Description  Accepts a multipart image (jpeg, png, gif or webp, max 5MB), stores it and updates the user's avatar URL.
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Avatar image"
// @Success      200  {object}  map[string]string "{"avatarUrl": "..."}"
// @Failure      400  {object}  ErrorResponse "Missing file, bad type or too large"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /upload/avatar [post]
func UploadAvatar(c *gin.Context) {
	viewerID := currentUserID(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	ext, ok := avatarExtensions[file.Header.Get("Content-Type")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only JPG, PNG, GIF and WebP are allowed."})
		return
	}

	if file.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Max 5MB."})
		return
	}

	key := fmt.Sprintf("%d-%d.%s", viewerID, time.Now().UnixMilli(), ext)
	dir := filepath.Join(uploadDir(), "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(dir, key)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	avatarURL := "/api/upload/avatar/" + key
	if err := database.DB.Model(&models.User{}).Where("id = ?", viewerID).
		Update("avatar_url", avatarURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": avatarURL})
}

// GetAvatar godoc
// @Summary      Fetch avatar
// @Description  Serves a previously uploaded avatar image.
// @Tags         upload
// @Produce      image/*
// @Param        key path string true "Avatar key"
// @Success      200
// @Failure      404  {object}  ErrorResponse
// @Router       /upload/avatar/{key} [get]
func GetAvatar(c *gin.Context) {
	key := c.Param("key")
	// Keys never contain path separators; reject anything that tries.
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	path := filepath.Join(uploadDir(), "avatars", key)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	c.File(path)
}
