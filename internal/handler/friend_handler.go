package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/flaveur/RealTimeChatApp/internal/database"
	"github.com/flaveur/RealTimeChatApp/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// region --- DTOs ---

// SendRequestInput defines the structure for sending a friend request.
type SendRequestInput struct {
	Username string `json:"username" binding:"required" example:"bob"`
}

// RequestIDInput defines the structure for accepting or rejecting a request.
type RequestIDInput struct {
	RequestID string `json:"requestId" binding:"required" example:"4f9d4f64-47c4-4d3e-9f7c-2f1a9b6c9d01"`
}

// RemoveFriendInput defines the structure for removing a friend.
type RemoveFriendInput struct {
	FriendID uint `json:"friendId" binding:"required" example:"2"`
}

// FriendRequestResponse describes one pending friend request.
type FriendRequestResponse struct {
	ID        string       `json:"id"`
	User      UserResponse `json:"user"`
	CreatedAt time.Time    `json:"createdAt"`
}

// FriendRequestsResponse groups pending requests by direction.
type FriendRequestsResponse struct {
	Incoming []FriendRequestResponse `json:"incoming"`
	Outgoing []FriendRequestResponse `json:"outgoing"`
}

// endregion

const searchResultLimit = 20

// friendshipExists reports whether a friendship row exists in either
// direction between the two users.
func friendshipExists(db *gorm.DB, userID, friendID uint) bool {
	var count int64
	db.Model(&models.Friendship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID).
		Count(&count)
	return count > 0
}

// GetFriends godoc
// @Summary      List friends
// @Description  Returns the authenticated user's friends with their profile data.
// @Tags         friends
// @Produce      json
// @Success      200  {object}  map[string][]UserResponse "{"friends": [...]}"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friends [get]
func GetFriends(c *gin.Context) {
	viewerID := currentUserID(c)

	var friendships []models.Friendship
	if err := database.DB.Preload("Friend").
		Where("user_id = ?", viewerID).
		Find(&friendships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	friends := []UserResponse{}
	for _, f := range friendships {
		if f.Friend.ID == 0 {
			continue
		}
		friends = append(friends, newUserResponse(f.Friend))
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// GetFriendRequests godoc
// @Summary      List pending friend requests
// @Description  Returns the authenticated user's pending requests, incoming and outgoing.
// @Tags         friends
// @Produce      json
// @Success      200  {object}  FriendRequestsResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/requests [get]
func GetFriendRequests(c *gin.Context) {
	viewerID := currentUserID(c)

	var incoming []models.FriendRequest
	if err := database.DB.Preload("Sender").
		Where("receiver_id = ? AND status = ?", viewerID, models.RequestPending).
		Find(&incoming).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	var outgoing []models.FriendRequest
	if err := database.DB.Preload("Receiver").
		Where("sender_id = ? AND status = ?", viewerID, models.RequestPending).
		Find(&outgoing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	response := FriendRequestsResponse{
		Incoming: []FriendRequestResponse{},
		Outgoing: []FriendRequestResponse{},
	}
	for _, r := range incoming {
		response.Incoming = append(response.Incoming, FriendRequestResponse{
			ID:        r.ID,
			User:      newUserResponse(r.Sender),
			CreatedAt: r.CreatedAt,
		})
	}
	for _, r := range outgoing {
		response.Outgoing = append(response.Outgoing, FriendRequestResponse{
			ID:        r.ID,
			User:      newUserResponse(r.Receiver),
			CreatedAt: r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// SearchUsers godoc
// @Summary      Search for users
// @Description  Case-insensitive substring search on username or display name, excluding the requester. Capped at 20 results.
// @Tags         friends
// @Produce      json
// @Param        q query string true "Search query"
// @Success      200  {object}  map[string][]UserResponse "{"users": [...]}"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/search [get]
func SearchUsers(c *gin.Context) {
	viewerID := currentUserID(c)

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"users": []UserResponse{}})
		return
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var users []models.User
	if err := database.DB.
		Where("id <> ? AND (LOWER(username) LIKE ? OR LOWER(display_name) LIKE ?)",
			viewerID, pattern, pattern).
		Limit(searchResultLimit).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	results := []UserResponse{}
	for _, user := range users {
		results = append(results, newUserResponse(user))
	}

	c.JSON(http.StatusOK, gin.H{"users": results})
}

// SendFriendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request to the user with the given username.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        input body SendRequestInput true "Target username"
// @Success      201  {object}  FriendRequestResponse
// @Failure      400  {object}  ErrorResponse "Request to self"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Already friends or request pending"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/request [post]
func SendFriendRequest(c *gin.Context) {
	viewerID := currentUserID(c)

	var input SendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var target models.User
	if err := database.DB.Where("username = ?", input.Username).First(&target).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if target.ID == viewerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send a friend request to yourself"})
		return
	}

	if friendshipExists(database.DB, viewerID, target.ID) {
		c.JSON(http.StatusConflict, gin.H{"error": "Already friends"})
		return
	}

	var pending int64
	database.DB.Model(&models.FriendRequest{}).
		Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
			viewerID, target.ID, target.ID, viewerID, models.RequestPending).
		Count(&pending)
	if pending > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "A request between you is already pending"})
		return
	}

	request := models.FriendRequest{
		ID:         uuid.NewString(),
		SenderID:   viewerID,
		ReceiverID: target.ID,
		Status:     models.RequestPending,
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// A resolved earlier request in this direction is superseded by
		// the new one; deleting it frees the (sender, receiver) index.
		if err := tx.Where("sender_id = ? AND receiver_id = ? AND status <> ?",
			viewerID, target.ID, models.RequestPending).
			Delete(&models.FriendRequest{}).Error; err != nil {
			return err
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Unique index on (sender_id, receiver_id) catches the
			// concurrent double-send that slips past the checks above.
			c.JSON(http.StatusConflict, gin.H{"error": "A request between you is already pending"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send request"})
		return
	}

	c.JSON(http.StatusCreated, FriendRequestResponse{
		ID:        request.ID,
		User:      newUserResponse(target),
		CreatedAt: request.CreatedAt,
	})
}

// AcceptFriendRequest godoc
// @Summary      Accept friend request
// @Description  Accepts a pending friend request addressed to the authenticated user and creates the friendship.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        input body RequestIDInput true "Request ID"
// @Success      200  {object}  map[string]string "{"message": "Request accepted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the receiver"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      409  {object}  ErrorResponse "Request already resolved"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/accept [post]
func AcceptFriendRequest(c *gin.Context) {
	viewerID := currentUserID(c)

	var input RequestIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var request models.FriendRequest
	if err := database.DB.First(&request, "id = ?", input.RequestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	if request.ReceiverID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the receiver can accept a request"})
		return
	}

	if request.Status != models.RequestPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Request already resolved"})
		return
	}

	// Status flip and both friendship rows commit together. The conditional
	// update guards against a concurrent accept or reject on the same id.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.FriendRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestPending).
			Update("status", models.RequestAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		pair := []models.Friendship{
			{UserID: request.SenderID, FriendID: request.ReceiverID},
			{UserID: request.ReceiverID, FriendID: request.SenderID},
		}
		return tx.Create(&pair).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusConflict, gin.H{"error": "Request already resolved"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
}

// RejectFriendRequest godoc
// @Summary      Reject friend request
// @Description  Rejects a pending friend request addressed to the authenticated user. The request row is kept with status rejected.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        input body RequestIDInput true "Request ID"
// @Success      200  {object}  map[string]string "{"message": "Request rejected"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the receiver"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      409  {object}  ErrorResponse "Request already resolved"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/reject [post]
func RejectFriendRequest(c *gin.Context) {
	viewerID := currentUserID(c)

	var input RequestIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var request models.FriendRequest
	if err := database.DB.First(&request, "id = ?", input.RequestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	if request.ReceiverID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the receiver can reject a request"})
		return
	}

	result := database.DB.Model(&models.FriendRequest{}).
		Where("id = ? AND status = ?", request.ID, models.RequestPending).
		Update("status", models.RequestRejected)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject request"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Request already resolved"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request rejected"})
}

// RemoveFriend godoc
// @Summary      Remove friend
// @Description  Removes the friendship with the given user (both directional rows).
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        input body RemoveFriendInput true "Friend ID"
// @Success      200  {object}  map[string]string "{"message": "Friend removed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Friendship not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/remove [delete]
func RemoveFriend(c *gin.Context) {
	viewerID := currentUserID(c)

	var input RemoveFriendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := database.DB.
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			viewerID, input.FriendID, input.FriendID, viewerID).
		Delete(&models.Friendship{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove friend"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}
