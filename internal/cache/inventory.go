package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	RestaurantKeyPrefix = "restaurant:%d"
	PostKeyPrefix       = "post:%d"
	FeedKey             = "feed:recent"
)

const (
	UserTTL       = 5 * time.Minute
	RestaurantTTL = 10 * time.Minute
	PostTTL       = 30 * time.Minute
	FeedTTL       = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RestaurantKey(restaurantID uint) string {
	return fmt.Sprintf(RestaurantKeyPrefix, restaurantID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateRestaurant(ctx context.Context, restaurantID uint) {
	Invalidate(ctx, RestaurantKey(restaurantID))
}

// InvalidatePost drops both the post entry and the cached feed page, since
// any engagement mutation changes the counts shown on the feed.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, FeedKey)
}

func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, FeedKey)
}
