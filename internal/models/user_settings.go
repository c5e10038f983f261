package models

import "time"

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ValidTheme reports whether s is one of the accepted themes.
func ValidTheme(s string) bool {
	switch Theme(s) {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// ValidLanguage reports whether code is a supported language code.
func ValidLanguage(code string) bool {
	return code == "no" || code == "en"
}

// UserSettings holds per-user preferences, 1:1 with User.
// The row is created lazily with defaults on the first settings read.
type UserSettings struct {
	UserID        uint   `gorm:"primaryKey"`
	Theme         Theme  `gorm:"size:20;not null;default:'dark'"`
	Language      string `gorm:"size:10;not null;default:'no'"`
	Notifications bool   `gorm:"not null;default:true"`
	UpdatedAt     time.Time

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}

// DefaultSettings returns the settings row created on first read.
func DefaultSettings(userID uint) UserSettings {
	return UserSettings{
		UserID:        userID,
		Theme:         ThemeDark,
		Language:      "no",
		Notifications: true,
	}
}
