package repository

import (
	"context"
	"testing"

	"pinfood/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByPost_OldestFirstWithAuthor(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	author := createTestUser(t, db, "oscar")
	commenter := createTestUser(t, db, "paula")
	post := createTestPost(t, db, author.ID, "discuss")
	repo := NewCommentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Comment{PostID: post.ID, UserID: commenter.ID, Content: "first"}))
	require.NoError(t, repo.Create(ctx, &models.Comment{PostID: post.ID, UserID: author.ID, Content: "second"}))

	comments, err := repo.ListByPost(ctx, post.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
	assert.Equal(t, commenter.DisplayName, comments[0].User.DisplayName, "author preloaded for rendering")
}

func TestCommentRepository_CountByPostIDs(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "quinn")
	busy := createTestPost(t, db, user.ID, "busy thread")
	empty := createTestPost(t, db, user.ID, "no comments")
	repo := NewCommentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Comment{PostID: busy.ID, UserID: user.ID, Content: "a"}))
	require.NoError(t, repo.Create(ctx, &models.Comment{PostID: busy.ID, UserID: user.ID, Content: "b"}))

	counts, err := repo.CountByPostIDs(ctx, []uint{busy.ID, empty.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[busy.ID])
	assert.Zero(t, counts[empty.ID])
}

func TestCommentRepository_Delete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "rosa")
	post := createTestPost(t, db, user.ID, "thread")
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := models.Comment{PostID: post.ID, UserID: user.ID, Content: "regret"}
	require.NoError(t, repo.Create(ctx, &comment))
	require.NoError(t, repo.Delete(ctx, comment.ID))

	_, err := repo.GetByID(ctx, comment.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
