package service

import (
	"context"
	"strings"

	"pinfood/internal/cache"
	"pinfood/internal/models"
	"pinfood/internal/repository"
)

// UserService handles user profiles and stats.
type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
}

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		postRepo: postRepo,
		likeRepo: likeRepo,
	}
}

// GetProfile returns the user's public profile, cache-aside. The password is
// scrubbed before the profile ever reaches the cache.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		loaded, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		loaded.Password = ""
		user = *loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfileInput carries the editable profile fields. Nil pointers leave
// the stored value untouched.
type UpdateProfileInput struct {
	DisplayName       *string
	Description       *string
	ProfilePictureURL *string
}

// UpdateProfile edits the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" {
			return nil, models.NewValidationError("Display name cannot be empty")
		}
		user.DisplayName = name
	}
	if in.Description != nil {
		user.Description = strings.TrimSpace(*in.Description)
	}
	if in.ProfilePictureURL != nil {
		user.ProfilePictureURL = strings.TrimSpace(*in.ProfilePictureURL)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	cache.InvalidateUser(ctx, id)
	user.Password = ""
	return user, nil
}

// GetStats returns the user's post count and total likes received.
func (s *UserService) GetStats(ctx context.Context, id uint) (*models.UserStats, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	posts, err := s.postRepo.CountByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	likes, err := s.likeRepo.CountReceivedByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.UserStats{PostCount: posts, LikesReceived: likes}, nil
}
