package repository

import (
	"context"
	"testing"

	"agriconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "moussa")
	post := &models.Post{Content: "Millet prices are up in Kaolack", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, post))
	require.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Millet prices are up in Kaolack", got.Content)
	assert.Equal(t, "moussa", got.User.Username)
	assert.Zero(t, got.LikesCount)
	assert.Zero(t, got.CommentsCount)
	assert.False(t, got.Liked)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 404, 1)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_List_GlobalFeedExcludesForumPosts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "fatou")
	forum := &models.Forum{Name: "Rice Growers", Slug: "rice-growers", CreatedByUserID: author.ID}
	require.NoError(t, db.Create(forum).Error)

	require.NoError(t, repo.Create(ctx, &models.Post{Content: "global one", UserID: author.ID}))
	require.NoError(t, repo.Create(ctx, &models.Post{Content: "global two", UserID: author.ID}))
	require.NoError(t, repo.Create(ctx, &models.Post{Content: "forum only", UserID: author.ID, ForumID: &forum.ID}))

	posts, err := repo.List(ctx, 20, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Nil(t, p.ForumID)
	}

	forumPosts, err := repo.GetByForumID(ctx, forum.ID, 20, 0, 0)
	require.NoError(t, err)
	require.Len(t, forumPosts, 1)
	assert.Equal(t, "forum only", forumPosts[0].Content)
}

func TestPostRepository_AggregatesAndLikedFlag(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "aissatou")
	viewer := seedUser(t, db, "cheikh")
	post := &models.Post{Content: "Anyone tried drip irrigation?", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, db.Create(&models.Comment{Content: "Yes, works well", UserID: viewer.ID, PostID: post.ID}).Error)
	require.NoError(t, repo.Like(ctx, viewer.ID, post.ID))

	got, err := repo.GetByID(ctx, post.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)
	assert.Equal(t, 1, got.CommentsCount)
	assert.True(t, got.Liked)

	// The author has not liked it.
	got, err = repo.GetByID(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)
	assert.False(t, got.Liked)
}

func TestPostRepository_LikeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "ndeye")
	post := &models.Post{Content: "Harvest photos", ImageURL: "/media/harvest.jpg", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, post))

	// A double insert must not error and must leave exactly one row.
	require.NoError(t, repo.Like(ctx, author.ID, post.ID))
	require.NoError(t, repo.Like(ctx, author.ID, post.ID))

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	liked, err := repo.IsLiked(ctx, author.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, repo.Unlike(ctx, author.ID, post.ID))
	liked, err = repo.IsLiked(ctx, author.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	// Unliking twice is a no-op, not an error.
	require.NoError(t, repo.Unlike(ctx, author.ID, post.ID))
}

func TestPostRepository_GetLikedPostIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "ibrahima")
	first := &models.Post{Content: "first", UserID: author.ID}
	second := &models.Post{Content: "second", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Like(ctx, author.ID, second.ID))

	ids, err := repo.GetLikedPostIDs(ctx, author.ID, []uint{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{second.ID}, ids)

	ids, err = repo.GetLikedPostIDs(ctx, author.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
