// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// PlaceholderDisplayName is the author name shown when a post's user record
// no longer exists.
const PlaceholderDisplayName = "Usuario"

// User represents a consumer account in the PinFood application.
type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	DisplayName       string         `gorm:"not null" json:"display_name"`
	Email             string         `gorm:"uniqueIndex;not null" json:"email"`
	Password          string         `gorm:"not null" json:"-"`
	ProfilePictureURL string         `json:"profile_picture_url,omitempty"`
	Description       string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// PlaceholderUser returns the stand-in author used when a post references a
// user that cannot be resolved. Aggregation must keep going with this value
// instead of failing the whole batch.
func PlaceholderUser(id uint) User {
	return User{
		ID:          id,
		DisplayName: PlaceholderDisplayName,
		Email:       "",
	}
}

// UserStats summarizes a user's activity for the profile screen.
type UserStats struct {
	PostCount     int64 `json:"post_count"`
	LikesReceived int64 `json:"likes_received"`
}
