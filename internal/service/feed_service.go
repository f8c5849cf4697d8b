package service

import (
	"context"

	"pinfood/internal/cache"
	"pinfood/internal/middleware"
	"pinfood/internal/models"
	"pinfood/internal/repository"
)

// FeedService owns the read side: the global feed, per-author and
// per-restaurant listings, saved posts and comment threads.
type FeedService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	savedRepo   repository.SavedPostRepository
	aggregator  *Aggregator
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	savedRepo repository.SavedPostRepository,
	aggregator *Aggregator,
) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		savedRepo:   savedRepo,
		aggregator:  aggregator,
	}
}

// GetFeed returns the global feed, newest first. viewerID 0 means anonymous.
//
// The anonymous first page is the hottest read in the app and carries no
// per-viewer state, so only that page is served through the cache. Post
// writes invalidate it.
func (s *FeedService) GetFeed(ctx context.Context, viewerID uint, limit, offset int) ([]models.PostView, error) {
	if viewerID == 0 && offset == 0 {
		var views []models.PostView
		err := cache.Aside(ctx, cache.FeedKey, &views, cache.FeedTTL, func() error {
			resolved, err := s.resolveFeedPage(ctx, 0, limit, 0)
			if err != nil {
				return err
			}
			views = resolved
			return nil
		})
		if err != nil {
			return nil, err
		}
		return views, nil
	}
	return s.resolveFeedPage(ctx, viewerID, limit, offset)
}

func (s *FeedService) resolveFeedPage(ctx context.Context, viewerID uint, limit, offset int) ([]models.PostView, error) {
	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	middleware.FeedResolves.Observe(float64(len(posts)))
	return s.aggregator.Resolve(ctx, posts, viewerID)
}

// GetPost returns a single resolved post. The anonymous view carries no
// per-viewer flags, so it is cached; engagement writes invalidate the entry.
func (s *FeedService) GetPost(ctx context.Context, viewerID, postID uint) (*models.PostView, error) {
	if viewerID == 0 {
		var view models.PostView
		err := cache.Aside(ctx, cache.PostKey(postID), &view, cache.PostTTL, func() error {
			resolved, err := s.resolvePost(ctx, postID, 0)
			if err != nil {
				return err
			}
			view = *resolved
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &view, nil
	}
	return s.resolvePost(ctx, postID, viewerID)
}

func (s *FeedService) resolvePost(ctx context.Context, postID, viewerID uint) (*models.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.aggregator.ResolveOne(ctx, *post, viewerID)
}

// GetUserPosts returns a user's posts, newest first.
func (s *FeedService) GetUserPosts(ctx context.Context, viewerID, userID uint, limit, offset int) ([]models.PostView, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.aggregator.Resolve(ctx, posts, viewerID)
}

// GetRestaurantPosts returns posts tagging the restaurant plus the total
// count for the restaurant's dashboard.
func (s *FeedService) GetRestaurantPosts(ctx context.Context, viewerID, restaurantID uint, limit, offset int) ([]models.PostView, int64, error) {
	posts, err := s.postRepo.ListByRestaurant(ctx, restaurantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.postRepo.CountByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.aggregator.Resolve(ctx, posts, viewerID)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// GetSavedPosts returns the user's saved posts ordered by when they were
// saved, most recent first. Saves whose post has since been deleted are
// silently skipped.
func (s *FeedService) GetSavedPosts(ctx context.Context, userID uint, limit, offset int) ([]models.PostView, error) {
	ids, err := s.savedRepo.ListPostIDsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.aggregator.Resolve(ctx, posts, userID)
}

// GetComments returns a post's comment thread, oldest first.
func (s *FeedService) GetComments(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i].User.Password = ""
	}
	return comments, nil
}
