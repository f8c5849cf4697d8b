package models

import "time"

// Like represents a user liking a post. The composite unique index is the
// central uniqueness invariant: at most one like per (user, post) pair. A
// duplicate insert must surface as a conflict, not be silently ignored,
// because the conflict is what tells the caller to flip to an unlike.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
