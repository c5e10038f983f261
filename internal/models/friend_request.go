package models

import "time"

// FriendRequestStatus is the state of a friend request.
type FriendRequestStatus string

const (
	// RequestPending means the request has been sent but not yet answered.
	RequestPending FriendRequestStatus = "pending"

	// RequestAccepted means the receiver accepted and a friendship was created.
	RequestAccepted FriendRequestStatus = "accepted"

	// RequestRejected means the receiver declined. The row is kept for history
	// until a new request between the same pair supersedes it; only pending
	// rows block a new send.
	RequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest is a proposal from one user to befriend another.
// The unique index on (SenderID, ReceiverID) closes the race where the same
// request is sent twice concurrently; a resolved row between the pair is
// deleted before a new send so it never blocks one.
type FriendRequest struct {
	ID         string              `gorm:"primaryKey;size:36"`
	SenderID   uint                `gorm:"not null;uniqueIndex:idx_friend_request_pair"`
	ReceiverID uint                `gorm:"not null;uniqueIndex:idx_friend_request_pair"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Receiver User `gorm:"foreignKey:ReceiverID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
