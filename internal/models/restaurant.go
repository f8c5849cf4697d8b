package models

import (
	"time"

	"gorm.io/gorm"
)

// Restaurant represents a restaurant-facing account. Posts may tag a
// restaurant; the restaurant side of the app browses those posts.
type Restaurant struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"not null;index" json:"name"`
	Email             string         `gorm:"uniqueIndex;not null" json:"email"`
	Password          string         `gorm:"not null" json:"-"`
	Location          string         `json:"location,omitempty"`
	Description       string         `gorm:"type:text" json:"description,omitempty"`
	ProfilePictureURL string         `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
