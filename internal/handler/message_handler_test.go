package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messagePayload struct {
	ID         uint       `json:"id"`
	SenderID   uint       `json:"senderId"`
	ReceiverID uint       `json:"receiverId"`
	Content    string     `json:"content"`
	ReadAt     *time.Time `json:"readAt"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type conversationPayload struct {
	Friend   userPayload      `json:"friend"`
	Messages []messagePayload `json:"messages"`
}

func getConversation(t *testing.T, r *gin.Engine, cookie *http.Cookie, friendID uint) conversationPayload {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/messages/%d", friendID), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var conv conversationPayload
	decode(t, w, &conv)
	return conv
}

func TestSendAndReadMessage(t *testing.T) {
	r := setupRouter(t)
	alice, aliceID := signup(t, r, "alice")
	bob, bobID := signup(t, r, "bob")
	befriend(t, r, alice, "bob", bob)

	w := doJSON(t, r, http.MethodPost, "/api/messages", gin.H{
		"receiverId": bobID, "content": "hi",
	}, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	var sent messagePayload
	decode(t, w, &sent)
	assert.Equal(t, "hi", sent.Content)
	assert.Nil(t, sent.ReadAt)

	conv := getConversation(t, r, alice, bobID)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, "hi", conv.Messages[0].Content)
	assert.Nil(t, conv.Messages[0].ReadAt)

	// bob marks the conversation read; the message now carries a read time
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/messages/%d/read", aliceID), nil, bob)
	require.Equal(t, http.StatusOK, w.Code)

	conv = getConversation(t, r, bob, aliceID)
	require.Len(t, conv.Messages, 1)
	assert.NotNil(t, conv.Messages[0].ReadAt)
}

func TestConversationSameBothDirections(t *testing.T) {
	r := setupRouter(t)
	alice, aliceID := signup(t, r, "alice")
	bob, bobID := signup(t, r, "bob")
	befriend(t, r, alice, "bob", bob)

	contents := []string{"one", "two", "three"}
	for i, content := range contents {
		sender, receiver := alice, bobID
		if i%2 == 1 {
			sender, receiver = bob, aliceID
		}
		w := doJSON(t, r, http.MethodPost, "/api/messages", gin.H{
			"receiverId": receiver, "content": content,
		}, sender)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	aliceView := getConversation(t, r, alice, bobID)
	bobView := getConversation(t, r, bob, aliceID)

	require.Len(t, aliceView.Messages, len(contents))
	require.Len(t, bobView.Messages, len(contents))
	for i := range contents {
		assert.Equal(t, contents[i], aliceView.Messages[i].Content)
		assert.Equal(t, aliceView.Messages[i].ID, bobView.Messages[i].ID)
	}
}

func TestSendMessageRequiresFriendship(t *testing.T) {
	r := setupRouter(t)
	alice, _ := signup(t, r, "alice")
	_, bobID := signup(t, r, "bob")

	w := doJSON(t, r, http.MethodPost, "/api/messages", gin.H{
		"receiverId": bobID, "content": "hi",
	}, alice)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/messages/%d", bobID), nil, alice)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSendMessageEmptyContent(t *testing.T) {
	r := setupRouter(t)
	alice, _ := signup(t, r, "alice")
	bob, bobID := signup(t, r, "bob")
	befriend(t, r, alice, "bob", bob)

	w := doJSON(t, r, http.MethodPost, "/api/messages", gin.H{
		"receiverId": bobID, "content": "   ",
	}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkReadIdempotent(t *testing.T) {
	r := setupRouter(t)
	alice, aliceID := signup(t, r, "alice")
	bob, bobID := signup(t, r, "bob")
	befriend(t, r, alice, "bob", bob)

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/messages", gin.H{
			"receiverId": bobID, "content": fmt.Sprintf("msg %d", i),
		}, alice)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	unread := func() int64 {
		w := doJSON(t, r, http.MethodGet, "/api/messages", nil, bob)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Conversations []struct {
				Friend      userPayload `json:"friend"`
				UnreadCount int64       `json:"unreadCount"`
			} `json:"conversations"`
		}
		decode(t, w, &resp)
		require.Len(t, resp.Conversations, 1)
		return resp.Conversations[0].UnreadCount
	}

	assert.EqualValues(t, 3, unread())

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/messages/%d/read", aliceID), nil, bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, unread())

	// Second call marks nothing and the count stays zero.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/messages/%d/read", aliceID), nil, bob)
	require.Equal(t, http.StatusOK, w.Code)
	var marked struct {
		Marked int64 `json:"marked"`
	}
	decode(t, w, &marked)
	assert.Zero(t, marked.Marked)
	assert.Zero(t, unread())
}

func TestConversationListOrdering(t *testing.T) {
	r := setupRouter(t)
	alice, _ := signup(t, r, "alice")
	bob, bobID := signup(t, r, "bob")
	carol, carolID := signup(t, r, "carol")
	dave, _ := signup(t, r, "dave")
	befriend(t, r, alice, "bob", bob)
	befriend(t, r, alice, "carol", carol)
	befriend(t, r, alice, "dave", dave)

	// bob first, then carol: carol's conversation is the most recent
	w := doJSON(t, r, http.MethodPost, "/api/messages", gin.H{"receiverId": bobID, "content": "to bob"}, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/messages", gin.H{"receiverId": carolID, "content": "to carol"}, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/messages", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Conversations []struct {
			Friend      userPayload     `json:"friend"`
			LastMessage *messagePayload `json:"lastMessage"`
		} `json:"conversations"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Conversations, 3)

	assert.Equal(t, "carol", resp.Conversations[0].Friend.Username)
	assert.Equal(t, "to carol", resp.Conversations[0].LastMessage.Content)
	assert.Equal(t, "bob", resp.Conversations[1].Friend.Username)

	// dave has no messages and sorts last
	assert.Equal(t, "dave", resp.Conversations[2].Friend.Username)
	assert.Nil(t, resp.Conversations[2].LastMessage)
}
