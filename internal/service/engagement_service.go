package service

import (
	"context"
	"math"
	"strings"

	"pinfood/internal/cache"
	"pinfood/internal/middleware"
	"pinfood/internal/models"
	"pinfood/internal/repository"
)

const maxPostContentLen = 5000
const maxCommentContentLen = 1000

// EngagementService owns the write side of the feed: posts, likes, comments
// and saves.
type EngagementService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	savedRepo   repository.SavedPostRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	savedRepo repository.SavedPostRepository,
) *EngagementService {
	return &EngagementService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		savedRepo:   savedRepo,
	}
}

// CreatePostInput carries everything needed to publish a post. Location is
// only kept when both coordinates are present and finite.
type CreatePostInput struct {
	UserID       uint
	Content      string
	ImageURL     string
	RestaurantID *uint
	LocationLat  *float64
	LocationLng  *float64
	LocationName string
}

func (s *EngagementService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxPostContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	post := models.Post{
		UserID:       in.UserID,
		Content:      content,
		RestaurantID: in.RestaurantID,
	}
	if url := strings.TrimSpace(in.ImageURL); url != "" {
		post.ImageURL = &url
	}
	if in.LocationLat != nil && in.LocationLng != nil &&
		!math.IsNaN(*in.LocationLat) && !math.IsInf(*in.LocationLat, 0) &&
		!math.IsNaN(*in.LocationLng) && !math.IsInf(*in.LocationLng, 0) {
		post.LocationLat = in.LocationLat
		post.LocationLng = in.LocationLng
		post.LocationName = strings.TrimSpace(in.LocationName)
	}

	if err := s.postRepo.Create(ctx, &post); err != nil {
		return nil, err
	}
	middleware.PostsCreated.Inc()
	cache.InvalidateFeed(ctx)
	return &post, nil
}

// DeletePost removes the post and its engagement. Only the author may delete.
func (s *EngagementService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("Only the author can delete this post")
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidateFeed(ctx)
	return nil
}

// ToggleLike likes the post, or unlikes it when the like already exists.
// The insert goes first and the unique index decides: a conflict means the
// like was already there, so it flips to a removal. Returns the resulting
// liked state.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}

	err := s.likeRepo.Create(ctx, userID, postID)
	if err == nil {
		middleware.LikeToggles.WithLabelValues("liked").Inc()
		cache.InvalidatePost(ctx, postID)
		return true, nil
	}
	if !models.IsCode(err, models.CodeConflict) {
		return false, err
	}

	if _, err := s.likeRepo.Delete(ctx, userID, postID); err != nil {
		return false, err
	}
	middleware.LikeToggles.WithLabelValues("unliked").Inc()
	cache.InvalidatePost(ctx, postID)
	return false, nil
}

// Unlike removes a like if present.
func (s *EngagementService) Unlike(ctx context.Context, userID, postID uint) error {
	removed, err := s.likeRepo.Delete(ctx, userID, postID)
	if err != nil {
		return err
	}
	if removed {
		middleware.LikeToggles.WithLabelValues("unliked").Inc()
		cache.InvalidatePost(ctx, postID)
	}
	return nil
}

// AddComment appends a comment to the post.
func (s *EngagementService) AddComment(ctx context.Context, userID, postID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentContentLen {
		return nil, models.NewValidationError("Content too long (max 1000 characters)")
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := models.Comment{PostID: postID, UserID: userID, Content: content}
	if err := s.commentRepo.Create(ctx, &comment); err != nil {
		return nil, err
	}
	middleware.CommentsCreated.Inc()
	cache.InvalidatePost(ctx, postID)
	return &comment, nil
}

// DeleteComment removes a comment. Only the comment's author may delete.
func (s *EngagementService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return models.NewForbiddenError("Only the author can delete this comment")
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

// ToggleSave saves the post, or unsaves it when already saved. Unlike the
// like path this reads first: the existence check decides the direction, and
// the unique index only backstops a race between two concurrent saves.
func (s *EngagementService) ToggleSave(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}

	saved, err := s.savedRepo.Exists(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if saved {
		if _, err := s.savedRepo.Delete(ctx, userID, postID); err != nil {
			return false, err
		}
		middleware.SaveToggles.WithLabelValues("unsaved").Inc()
		return false, nil
	}

	if err := s.savedRepo.Create(ctx, userID, postID); err != nil {
		if models.IsCode(err, models.CodeConflict) {
			// Lost the race to a concurrent save, treat it as already saved.
			middleware.SaveToggles.WithLabelValues("saved").Inc()
			return true, nil
		}
		return false, err
	}
	middleware.SaveToggles.WithLabelValues("saved").Inc()
	return true, nil
}

// Unsave removes a save if present.
func (s *EngagementService) Unsave(ctx context.Context, userID, postID uint) error {
	removed, err := s.savedRepo.Delete(ctx, userID, postID)
	if err != nil {
		return err
	}
	if removed {
		middleware.SaveToggles.WithLabelValues("unsaved").Inc()
	}
	return nil
}

// IsSaved reports whether the user has saved the post.
func (s *EngagementService) IsSaved(ctx context.Context, userID, postID uint) (bool, error) {
	return s.savedRepo.Exists(ctx, userID, postID)
}
