package models

import "gorm.io/gorm"

// UserStatus is the presence state a user advertises to their friends.
type UserStatus string

const (
	StatusOnline  UserStatus = "online"
	StatusBusy    UserStatus = "busy"
	StatusAway    UserStatus = "away"
	StatusOffline UserStatus = "offline"
)

// ValidUserStatus reports whether s is one of the accepted presence states.
func ValidUserStatus(s string) bool {
	switch UserStatus(s) {
	case StatusOnline, StatusBusy, StatusAway, StatusOffline:
		return true
	}
	return false
}

// User represents a user account.
type User struct {
	gorm.Model
	Username     string     `gorm:"size:255;unique;not null"`
	DisplayName  string     `gorm:"size:255"`
	PasswordHash string     `gorm:"size:255;not null"`
	Status       UserStatus `gorm:"size:50;not null;default:'offline'"`
	StatusText   *string    `gorm:"size:100"`
	AvatarURL    *string    `gorm:"size:512"`
}

// Name returns the display name, falling back to the username.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
