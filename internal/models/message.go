package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is a direct message between two users.
// Messages are never deleted; ReadAt is set once the receiver marks the
// conversation read (nil = unread).
type Message struct {
	gorm.Model
	SenderID   uint   `gorm:"not null;index"`
	ReceiverID uint   `gorm:"not null;index"`
	Content    string `gorm:"not null"`
	ReadAt     *time.Time

	Sender   User `gorm:"foreignKey:SenderID"`
	Receiver User `gorm:"foreignKey:ReceiverID"`
}
