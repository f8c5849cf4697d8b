package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantRepository_Search(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRestaurantRepository(db)
	ctx := context.Background()

	createTestRestaurant(t, db, "Taco Town")
	createTestRestaurant(t, db, "Sushi Corner")
	createTestRestaurant(t, db, "Taqueria Sol")

	results, err := repo.Search(ctx, "ta")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Taco Town", results[0].Name, "results ordered by name")
	assert.Equal(t, "Taqueria Sol", results[1].Name)

	results, err = repo.Search(ctx, "SUSHI")
	require.NoError(t, err)
	require.Len(t, results, 1, "match is case-insensitive")
	assert.Equal(t, "Sushi Corner", results[0].Name)

	results, err = repo.Search(ctx, "pizza")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRestaurantRepository_GetByEmail_MissingIsNilNil(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRestaurantRepository(db)
	ctx := context.Background()

	restaurant, err := repo.GetByEmail(ctx, "nowhere@restaurant.example.com")
	require.NoError(t, err)
	assert.Nil(t, restaurant)

	created := createTestRestaurant(t, db, "bistro")
	restaurant, err = repo.GetByEmail(ctx, created.Email)
	require.NoError(t, err)
	require.NotNil(t, restaurant)
	assert.Equal(t, created.ID, restaurant.ID)
}
