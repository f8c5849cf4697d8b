// Package service contains the business logic between handlers and repositories.
package service

import (
	"context"
	"log/slog"

	"pinfood/internal/models"
	"pinfood/internal/observability"
	"pinfood/internal/repository"

	"golang.org/x/sync/errgroup"
)

// aggregationConcurrency caps the parallel relation lookups per resolve.
const aggregationConcurrency = 4

// Aggregator builds PostViews from raw posts: authors, tagged restaurants,
// engagement counts and the viewer's own liked/saved flags, all fetched in
// batches rather than per post.
type Aggregator struct {
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	likeRepo       repository.LikeRepository
	commentRepo    repository.CommentRepository
	savedRepo      repository.SavedPostRepository
}

// NewAggregator returns a new Aggregator.
func NewAggregator(
	userRepo repository.UserRepository,
	restaurantRepo repository.RestaurantRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	savedRepo repository.SavedPostRepository,
) *Aggregator {
	return &Aggregator{
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		likeRepo:       likeRepo,
		commentRepo:    commentRepo,
		savedRepo:      savedRepo,
	}
}

// Resolve turns posts into PostViews, preserving input order. viewerID 0
// means anonymous: liked and saved stay false and no per-viewer queries run.
//
// Author and restaurant lookups degrade instead of failing the batch: a post
// whose user is gone renders with a placeholder author, a dangling restaurant
// tag renders untagged. Count lookups are load-bearing and do fail the call.
func (a *Aggregator) Resolve(ctx context.Context, posts []models.Post, viewerID uint) (_ []models.PostView, err error) {
	if len(posts) == 0 {
		return []models.PostView{}, nil
	}

	ctx, endSpan := observability.StartAggregationSpan(ctx, len(posts), viewerID == 0)
	defer func() { endSpan(err) }()

	postIDs := make([]uint, 0, len(posts))
	userIDSet := make(map[uint]struct{})
	restaurantIDSet := make(map[uint]struct{})
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		userIDSet[p.UserID] = struct{}{}
		if p.RestaurantID != nil {
			restaurantIDSet[*p.RestaurantID] = struct{}{}
		}
	}
	userIDs := make([]uint, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}
	restaurantIDs := make([]uint, 0, len(restaurantIDSet))
	for id := range restaurantIDSet {
		restaurantIDs = append(restaurantIDs, id)
	}

	var (
		users         map[uint]models.User
		restaurants   map[uint]models.Restaurant
		likeCounts    map[uint]int64
		commentCounts map[uint]int64
		viewerLiked   map[uint]bool
		viewerSaved   map[uint]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(aggregationConcurrency)

	g.Go(func() error {
		loaded, err := a.userRepo.GetByIDs(gctx, userIDs)
		if err != nil {
			observability.AggregationLookupErrors.WithLabelValues("user").Inc()
			slog.WarnContext(gctx, "author lookup failed, rendering placeholders", "error", err)
			loaded = map[uint]models.User{}
		}
		users = loaded
		return nil
	})
	g.Go(func() error {
		if len(restaurantIDs) == 0 {
			restaurants = map[uint]models.Restaurant{}
			return nil
		}
		loaded, err := a.restaurantRepo.GetByIDs(gctx, restaurantIDs)
		if err != nil {
			observability.AggregationLookupErrors.WithLabelValues("restaurant").Inc()
			slog.WarnContext(gctx, "restaurant lookup failed, rendering untagged", "error", err)
			loaded = map[uint]models.Restaurant{}
		}
		restaurants = loaded
		return nil
	})
	g.Go(func() error {
		counts, err := a.likeRepo.CountByPostIDs(gctx, postIDs)
		if err != nil {
			observability.AggregationLookupErrors.WithLabelValues("like_count").Inc()
			return err
		}
		likeCounts = counts
		return nil
	})
	g.Go(func() error {
		counts, err := a.commentRepo.CountByPostIDs(gctx, postIDs)
		if err != nil {
			observability.AggregationLookupErrors.WithLabelValues("comment_count").Inc()
			return err
		}
		commentCounts = counts
		return nil
	})
	if viewerID != 0 {
		g.Go(func() error {
			flags, err := a.likeRepo.ListPostIDsForUser(gctx, viewerID, postIDs)
			if err != nil {
				observability.AggregationLookupErrors.WithLabelValues("viewer_liked").Inc()
				return err
			}
			viewerLiked = flags
			return nil
		})
		g.Go(func() error {
			flags, err := a.savedRepo.ListPostIDsForUser(gctx, viewerID, postIDs)
			if err != nil {
				observability.AggregationLookupErrors.WithLabelValues("viewer_saved").Inc()
				return err
			}
			viewerSaved = flags
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		author, ok := users[p.UserID]
		if !ok {
			author = models.PlaceholderUser(p.UserID)
		}
		author.Password = ""

		var restaurant *models.Restaurant
		if p.RestaurantID != nil {
			if rest, ok := restaurants[*p.RestaurantID]; ok {
				rest.Password = ""
				restaurant = &rest
			}
		}

		views = append(views, models.PostView{
			ID:           p.ID,
			Content:      p.Content,
			ImageURL:     p.ImageURL,
			Location:     p.Location(),
			Author:       author,
			Restaurant:   restaurant,
			LikeCount:    likeCounts[p.ID],
			CommentCount: commentCounts[p.ID],
			Liked:        viewerLiked[p.ID],
			Saved:        viewerSaved[p.ID],
			CreatedAt:    p.CreatedAt,
		})
	}
	return views, nil
}

// ResolveOne is Resolve for a single post.
func (a *Aggregator) ResolveOne(ctx context.Context, post models.Post, viewerID uint) (*models.PostView, error) {
	views, err := a.Resolve(ctx, []models.Post{post}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
