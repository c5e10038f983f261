package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/flaveur/RealTimeChatApp/internal/database"
	"github.com/flaveur/RealTimeChatApp/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// region --- DTOs ---

// CreateNoteInput defines the structure for creating a note.
type CreateNoteInput struct {
	Title   string `json:"title" binding:"required" example:"Shopping list"`
	Content string `json:"content" example:"milk, bread"`
}

// UpdateNoteInput defines the structure for a partial note update.
// Only the supplied fields are written.
type UpdateNoteInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// NoteResponse defines the structure for a note.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// endregion

func newNoteResponse(note models.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// loadOwnedNote fetches the note and verifies ownership, writing the error
// response itself when the note is missing or owned by someone else.
func loadOwnedNote(c *gin.Context, noteID string) (models.Note, bool) {
	var note models.Note
	if err := database.DB.First(&note, "id = ?", noteID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		return note, false
	}
	if note.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your note"})
		return note, false
	}
	return note, true
}

// GetNotes godoc
// @Summary      List notes
// @Description  Returns the authenticated user's notes, newest first.
// @Tags         notes
// @Produce      json
// @Success      200  {object}  map[string][]NoteResponse "{"notes": [...]}"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notes [get]
func GetNotes(c *gin.Context) {
	var notes []models.Note
	if err := database.DB.
		Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}

	response := []NoteResponse{}
	for _, note := range notes {
		response = append(response, newNoteResponse(note))
	}

	c.JSON(http.StatusOK, gin.H{"notes": response})
}

// CreateNote godoc
// @Summary      Create a note
// @Description  Creates a note owned by the authenticated user. Title is required.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        input body CreateNoteInput true "Note"
// @Success      201  {object}  NoteResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notes [post]
func CreateNote(c *gin.Context) {
	var input CreateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	note := models.Note{
		ID:      uuid.NewString(),
		UserID:  currentUserID(c),
		Title:   title,
		Content: strings.TrimSpace(input.Content),
	}
	if err := database.DB.Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}

	c.JSON(http.StatusCreated, newNoteResponse(note))
}

// UpdateNote godoc
// @Summary      Update a note
// @Description  Updates the supplied fields of an owned note, preserving the rest.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id path string true "Note ID"
// @Param        input body UpdateNoteInput true "Fields to update"
// @Success      200  {object}  NoteResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the owner"
// @Failure      404  {object}  ErrorResponse "Note not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /notes/{id} [put]
func UpdateNote(c *gin.Context) {
	note, ok := loadOwnedNote(c, c.Param("id"))
	if !ok {
		return
	}

	var input UpdateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
			return
		}
		note.Title = title
	}
	if input.Content != nil {
		note.Content = strings.TrimSpace(*input.Content)
	}

	if err := database.DB.Save(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note"})
		return
	}

	c.JSON(http.StatusOK, newNoteResponse(note))
}

// DeleteNote godoc
// @Summary      Delete a note
// @Description  Deletes an owned note.
// @Tags         notes
// @Produce      json
// @Param        id path string true "Note ID"
// @Success      200  {object}  map[string]string "{"message": "Note deleted"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the owner"
// @Failure      404  {object}  ErrorResponse "Note not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /notes/{id} [delete]
func DeleteNote(c *gin.Context) {
	note, ok := loadOwnedNote(c, c.Param("id"))
	if !ok {
		return
	}

	if err := database.DB.Delete(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
