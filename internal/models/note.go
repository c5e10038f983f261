package models

import "time"

// Note is a personal freeform note. Notes are owned by exactly one user and
// are only ever read or written by their owner.
type Note struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    uint   `gorm:"not null;index"`
	Title     string `gorm:"size:255;not null"`
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
