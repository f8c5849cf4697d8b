package service

import (
	"context"
	"testing"

	"pinfood/internal/cache"
	"pinfood/internal/database"
	"pinfood/internal/models"
	"pinfood/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// cacheEnv wires real repositories over sqlite with the Redis cache live, so
// the read/write interaction between cached views and raw rows is exercised
// instead of short-circuited by a nil client.
type cacheEnv struct {
	db          *gorm.DB
	posts       repository.PostRepository
	users       repository.UserRepository
	restaurants repository.RestaurantRepository
	feed        *FeedService
	engagement  *EngagementService
	userSvc     *UserService
	restSvc     *RestaurantService
}

func newCacheEnv(t *testing.T) *cacheEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	mr := miniredis.RunT(t)
	cache.InitRedis(mr.Addr())
	require.NotNil(t, cache.GetClient(), "miniredis should be reachable")
	t.Cleanup(cache.Close)

	users := repository.NewUserRepository(db)
	restaurants := repository.NewRestaurantRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	likes := repository.NewLikeRepository(db)
	saved := repository.NewSavedPostRepository(db)
	agg := NewAggregator(users, restaurants, likes, comments, saved)

	return &cacheEnv{
		db:          db,
		posts:       posts,
		users:       users,
		restaurants: restaurants,
		feed:        NewFeedService(posts, comments, saved, agg),
		engagement:  NewEngagementService(posts, comments, likes, saved),
		userSvc:     NewUserService(users, posts, likes),
		restSvc:     NewRestaurantService(restaurants),
	}
}

func (e *cacheEnv) createUser(t *testing.T, name, password string) *models.User {
	t.Helper()
	user := models.User{DisplayName: name, Email: name + "@example.com", Password: password}
	require.NoError(t, e.db.Create(&user).Error)
	return &user
}

func TestGetPost_AnonymousReadKeepsOwnership(t *testing.T) {
	env := newCacheEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "nora", "hashed-password")
	post, err := env.engagement.CreatePost(ctx, CreatePostInput{
		UserID:  author.ID,
		Content: "best ramen in town",
	})
	require.NoError(t, err)

	view, err := env.feed.GetPost(ctx, 0, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "nora", view.Author.DisplayName)

	// The cached anonymous view must not shadow the raw row.
	raw, err := env.posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, raw.UserID)

	require.NoError(t, env.engagement.DeletePost(ctx, author.ID, post.ID),
		"author delete must succeed after an anonymous read")

	_, err = env.feed.GetPost(ctx, 0, post.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound),
		"deleted post must not be served from a stale entry")
}

func TestUpdateProfile_AfterCachedReadKeepsPassword(t *testing.T) {
	env := newCacheEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "ivy", "bcrypt-hash-stays-put")

	profile, err := env.userSvc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Password, "profiles leave the service scrubbed")

	updated, err := env.userSvc.UpdateProfile(ctx, user.ID, UpdateProfileInput{
		DisplayName: strPtr("Ivy R."),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ivy R.", updated.DisplayName)

	var stored models.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	assert.Equal(t, "bcrypt-hash-stays-put", stored.Password,
		"profile update must not touch the stored hash")
	assert.Equal(t, "Ivy R.", stored.DisplayName)

	fresh, err := env.userSvc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ivy R.", fresh.DisplayName, "update must invalidate the cached profile")
}

func TestUpdateRestaurant_AfterCachedReadKeepsPassword(t *testing.T) {
	env := newCacheEnv(t)
	ctx := context.Background()

	restaurant := models.Restaurant{
		Name:     "Casa Lupe",
		Email:    "lupe@restaurant.example.com",
		Password: "bcrypt-hash-stays-put",
	}
	require.NoError(t, env.db.Create(&restaurant).Error)

	_, err := env.restSvc.GetProfile(ctx, restaurant.ID)
	require.NoError(t, err)

	_, err = env.restSvc.UpdateProfile(ctx, restaurant.ID, UpdateRestaurantInput{
		Location: strPtr("Calle Mayor 3"),
	})
	require.NoError(t, err)

	var stored models.Restaurant
	require.NoError(t, env.db.First(&stored, restaurant.ID).Error)
	assert.Equal(t, "bcrypt-hash-stays-put", stored.Password)
	assert.Equal(t, "Calle Mayor 3", stored.Location)

	fresh, err := env.restSvc.GetProfile(ctx, restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Calle Mayor 3", fresh.Location)
}
