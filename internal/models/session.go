package models

import "time"

// Session maps an opaque cookie token to a logged-in user.
// Rows are created at login, deleted at logout, and deleted on sight
// once expired.
type Session struct {
	Token     string `gorm:"primaryKey;size:36"`
	UserID    uint   `gorm:"not null;index"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
