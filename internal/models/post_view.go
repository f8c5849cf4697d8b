package models

import "time"

// PostView is the denormalized, read-only projection of a post: the post
// fields plus its resolved author, optional tagged restaurant, and engagement
// counts. It is rebuilt on every read and never stored.
type PostView struct {
	ID           uint        `json:"id"`
	Content      string      `json:"content"`
	ImageURL     *string     `json:"image_url"`
	Location     *Location   `json:"location,omitempty"`
	Author       User        `json:"user"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"`
	LikeCount    int64       `json:"like_count"`
	CommentCount int64       `json:"comment_count"`
	// Liked and Saved are only meaningful when the view was resolved for an
	// authenticated viewer; they stay false for anonymous reads.
	Liked     bool      `json:"liked"`
	Saved     bool      `json:"saved"`
	CreatedAt time.Time `json:"created_at"`
}
