package handler

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/flaveur/RealTimeChatApp/internal/database"
	"github.com/flaveur/RealTimeChatApp/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// SendMessageInput defines the structure for sending a direct message.
type SendMessageInput struct {
	ReceiverID uint   `json:"receiverId" binding:"required" example:"2"`
	Content    string `json:"content" binding:"required" example:"hi"`
}

// MessageResponse defines the structure for a single message.
type MessageResponse struct {
	ID         uint       `json:"id"`
	SenderID   uint       `json:"senderId"`
	ReceiverID uint       `json:"receiverId"`
	Content    string     `json:"content"`
	ReadAt     *time.Time `json:"readAt"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ConversationSummary is one entry in the conversation list.
type ConversationSummary struct {
	Friend      UserResponse     `json:"friend"`
	LastMessage *MessageResponse `json:"lastMessage"`
	UnreadCount int64            `json:"unreadCount"`
}

// ConversationResponse is the full history of one conversation.
type ConversationResponse struct {
	Friend   UserResponse      `json:"friend"`
	Messages []MessageResponse `json:"messages"`
}

// endregion

func newMessageResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt,
	}
}

// GetConversations godoc
// @Summary      List conversations
// @Description  Returns one entry per friend with the most recent message and unread count, sorted by last message time (friends without messages last).
// @Tags         messages
// @Produce      json
// @Success      200  {object}  map[string][]ConversationSummary "{"conversations": [...]}"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /messages [get]
func GetConversations(c *gin.Context) {
	viewerID := currentUserID(c)

	var friendships []models.Friendship
	if err := database.DB.Preload("Friend").
		Where("user_id = ?", viewerID).
		Find(&friendships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}

	conversations := []ConversationSummary{}
	for _, f := range friendships {
		if f.Friend.ID == 0 {
			continue
		}

		var last models.Message
		var lastMessage *MessageResponse
		err := database.DB.
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				viewerID, f.FriendID, f.FriendID, viewerID).
			Order("created_at DESC").Order("id DESC").
			First(&last).Error
		if err == nil {
			resp := newMessageResponse(last)
			lastMessage = &resp
		}

		var unread int64
		database.DB.Model(&models.Message{}).
			Where("sender_id = ? AND receiver_id = ? AND read_at IS NULL", f.FriendID, viewerID).
			Count(&unread)

		conversations = append(conversations, ConversationSummary{
			Friend:      newUserResponse(f.Friend),
			LastMessage: lastMessage,
			UnreadCount: unread,
		})
	}

	// Most recent conversation first; friends without any messages sort
	// last, ordered by friend id so the result is stable.
	sort.SliceStable(conversations, func(i, j int) bool {
		a, b := conversations[i], conversations[j]
		if a.LastMessage == nil && b.LastMessage == nil {
			return a.Friend.ID < b.Friend.ID
		}
		if a.LastMessage == nil {
			return false
		}
		if b.LastMessage == nil {
			return true
		}
		return a.LastMessage.CreatedAt.After(b.LastMessage.CreatedAt)
	})

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// GetConversation godoc
// @Summary      Get conversation history
// @Description  Returns all messages exchanged with the given friend, oldest first.
// @Tags         messages
// @Produce      json
// @Param        friendId path int true "Friend user ID"
// @Success      200  {object}  ConversationResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not friends"
// @Failure      500  {object}  ErrorResponse
// @Router       /messages/{friendId} [get]
func GetConversation(c *gin.Context) {
	viewerID := currentUserID(c)

	friendID, err := strconv.ParseUint(c.Param("friendId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid friend ID"})
		return
	}

	if !friendshipExists(database.DB, viewerID, uint(friendID)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not friends with this user"})
		return
	}

	var friend models.User
	if err := database.DB.First(&friend, uint(friendID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var messages []models.Message
	if err := database.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			viewerID, friendID, friendID, viewerID).
		Order("created_at ASC").Order("id ASC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	history := []MessageResponse{}
	for _, m := range messages {
		history = append(history, newMessageResponse(m))
	}

	c.JSON(http.StatusOK, ConversationResponse{
		Friend:   newUserResponse(friend),
		Messages: history,
	})
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Sends a direct message to a friend. Content is trimmed and must be non-empty.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        input body SendMessageInput true "Message"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Empty content"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not friends"
// @Failure      500  {object}  ErrorResponse
// @Router       /messages [post]
func SendMessage(c *gin.Context) {
	viewerID := currentUserID(c)

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content cannot be empty"})
		return
	}

	if !friendshipExists(database.DB, viewerID, input.ReceiverID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not friends with this user"})
		return
	}

	message := models.Message{
		SenderID:   viewerID,
		ReceiverID: input.ReceiverID,
		Content:    content,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, newMessageResponse(message))
}

// MarkConversationRead godoc
// @Summary      Mark conversation read
// @Description  Marks all unread messages from the given friend as read. Idempotent.
// @Tags         messages
// @Produce      json
// @Param        friendId path int true "Friend user ID"
// @Success      200  {object}  map[string]int64 "{"marked": n}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /messages/{friendId}/read [post]
func MarkConversationRead(c *gin.Context) {
	viewerID := currentUserID(c)

	friendID, err := strconv.ParseUint(c.Param("friendId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid friend ID"})
		return
	}

	now := time.Now()
	result := database.DB.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read_at IS NULL", uint(friendID), viewerID).
		Update("read_at", now)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark messages read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked": result.RowsAffected})
}
