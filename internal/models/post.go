package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a feed post. ImageURL and RestaurantID are nullable and
// stored as NULL when absent, never as empty strings. Location columns are
// populated only when both coordinates were provided and finite.
type Post struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Content      string         `gorm:"type:text;not null" json:"content"`
	ImageURL     *string        `json:"image_url"`
	RestaurantID *uint          `gorm:"index" json:"restaurant_id"`
	LocationLat  *float64       `json:"location_lat,omitempty"`
	LocationLng  *float64       `json:"location_lng,omitempty"`
	LocationName string         `json:"location_name,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Location bundles the optional geotag of a post for API responses.
type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name,omitempty"`
}

// Location returns the post's geotag, or nil when the post has none.
func (p *Post) Location() *Location {
	if p.LocationLat == nil || p.LocationLng == nil {
		return nil
	}
	return &Location{Lat: *p.LocationLat, Lng: *p.LocationLng, Name: p.LocationName}
}
