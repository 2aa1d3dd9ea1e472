package repository

import (
	"context"
	"testing"

	"agriconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByPost_AscendingWithAggregates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "fallou")
	viewer := seedUser(t, db, "mariama")
	post := &models.Post{Content: "Fertilizer subsidy question", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)

	first := &models.Comment{Content: "Check the DRDR office", UserID: viewer.ID, PostID: post.ID}
	require.NoError(t, repo.Create(ctx, first))
	reply := &models.Comment{Content: "They moved last year", UserID: author.ID, PostID: post.ID, ParentCommentID: &first.ID}
	require.NoError(t, repo.Create(ctx, reply))
	second := &models.Comment{Content: "Ask at the cooperative", UserID: author.ID, PostID: post.ID}
	require.NoError(t, repo.Create(ctx, second))

	require.NoError(t, repo.Like(ctx, author.ID, first.ID))

	comments, err := repo.ListByPost(ctx, post.ID, author.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)

	// Ascending by creation time, replies interleaved.
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, reply.ID, comments[1].ID)
	assert.Equal(t, second.ID, comments[2].ID)
	assert.Equal(t, "mariama", comments[0].User.Username)

	assert.Equal(t, 1, comments[0].LikesCount)
	assert.True(t, comments[0].Liked)
	assert.Zero(t, comments[1].LikesCount)
	assert.False(t, comments[1].Liked)

	// Anonymous viewers never see liked=true.
	comments, err = repo.ListByPost(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.False(t, comments[0].Liked)
	assert.Equal(t, 1, comments[0].LikesCount)
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	_, err := repo.GetByID(context.Background(), 404, 0)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentRepository_LikeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "oumar")
	post := &models.Post{Content: "p", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)
	comment := &models.Comment{Content: "c", UserID: author.ID, PostID: post.ID}
	require.NoError(t, repo.Create(ctx, comment))

	require.NoError(t, repo.Like(ctx, author.ID, comment.ID))
	require.NoError(t, repo.Like(ctx, author.ID, comment.ID))

	var count int64
	require.NoError(t, db.Model(&models.CommentLike{}).Where("comment_id = ?", comment.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.Unlike(ctx, author.ID, comment.ID))
	liked, err := repo.IsLiked(ctx, author.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}
