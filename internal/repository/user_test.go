package repository

import (
	"context"
	"testing"

	"pinfood/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByEmail_MissingIsNilNil(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user, "absent email is not an error, login decides what to do")

	created := createTestUser(t, db, "sofia")
	user, err = repo.GetByEmail(ctx, created.Email)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "tom")
	err := repo.Create(ctx, &models.User{
		DisplayName: "tom again",
		Email:       created.Email,
		Password:    "hashed-password",
	})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeConflict))
}

func TestUserRepository_GetByIDs_SkipsMissing(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "uma")
	b := createTestUser(t, db, "victor")

	users, err := repo.GetByIDs(ctx, []uint{a.ID, b.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, a.DisplayName, users[a.ID].DisplayName)
	_, ok := users[9999]
	assert.False(t, ok, "missing users are absent, the aggregator substitutes placeholders")
}
