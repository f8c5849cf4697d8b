package service

import (
	"context"
	"testing"

	"pinfood/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	users := &stubUserRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, DisplayName: "old name", Description: "old bio", Password: "hash"}, nil
		},
	}
	svc := NewUserService(users, &stubPostRepo{}, &stubLikeRepo{})
	ctx := context.Background()

	updated, err := svc.UpdateProfile(ctx, 1, UpdateProfileInput{DisplayName: strPtr("  new name  ")})
	require.NoError(t, err)
	assert.Equal(t, "new name", updated.DisplayName)
	assert.Equal(t, "old bio", updated.Description, "unset fields stay untouched")
	assert.Empty(t, updated.Password)

	_, err = svc.UpdateProfile(ctx, 1, UpdateProfileInput{DisplayName: strPtr("   ")})
	assert.True(t, models.IsCode(err, models.CodeValidation))
}

func TestUserService_GetStats(t *testing.T) {
	t.Parallel()

	users := &stubUserRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, DisplayName: "carla"}, nil
		},
	}
	likes := &stubLikeRepo{
		countReceivedByUserFn: func(_ context.Context, _ uint) (int64, error) { return 12, nil },
	}
	svc := NewUserService(users, &stubPostRepo{}, likes)

	stats, err := svc.GetStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.LikesReceived)
	assert.Zero(t, stats.PostCount)
}

func TestUserService_GetStats_MissingUser(t *testing.T) {
	t.Parallel()

	svc := NewUserService(&stubUserRepo{}, &stubPostRepo{}, &stubLikeRepo{})
	_, err := svc.GetStats(context.Background(), 99)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
