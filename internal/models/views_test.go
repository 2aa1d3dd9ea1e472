package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestNewAuthorView_FallbackName(t *testing.T) {
	view := NewAuthorView(User{ID: 7})
	assert.Equal(t, FallbackDisplayName, view.Name)
	assert.Equal(t, uint(7), view.ID)

	named := NewAuthorView(User{ID: 8, Username: "aminata", Avatar: "/a.png"})
	assert.Equal(t, "aminata", named.Name)
	assert.Equal(t, "/a.png", named.AvatarURL)
}

func TestNewPostView_CarriesAggregates(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	post := &Post{
		ID:            3,
		Content:       "millet prices up in Kaolack",
		UserID:        2,
		User:          User{ID: 2, Username: "moussa"},
		ForumID:       uintPtr(5),
		LikesCount:    4,
		CommentsCount: 2,
		Liked:         true,
		CreatedAt:     created,
	}

	view := NewPostView(post)
	assert.Equal(t, uint(3), view.ID)
	assert.Equal(t, "moussa", view.Author.Name)
	assert.Equal(t, 4, view.LikesCount)
	assert.Equal(t, 2, view.CommentsCount)
	assert.True(t, view.Liked)
	assert.Equal(t, uint(5), *view.ForumID)
	assert.Equal(t, created, view.CreatedAt)
}

func TestBuildCommentTree_OneLevel(t *testing.T) {
	comments := []*Comment{
		{ID: 1, PostID: 9, Content: "top A", User: User{Username: "awa"}},
		{ID: 2, PostID: 9, Content: "top B", User: User{Username: "ndeye"}, LikesCount: 3, Liked: true},
		{ID: 3, PostID: 9, ParentCommentID: uintPtr(1), Content: "reply to A"},
		{ID: 4, PostID: 9, ParentCommentID: uintPtr(2), Content: "reply to B"},
		{ID: 5, PostID: 9, ParentCommentID: uintPtr(1), Content: "second reply to A"},
	}

	tree := BuildCommentTree(comments)

	assert.Len(t, tree, 2)
	assert.Equal(t, "top A", tree[0].Content)
	assert.Len(t, tree[0].Replies, 2)
	assert.Equal(t, uint(1), tree[0].Replies[0].ParentID)
	assert.Equal(t, "second reply to A", tree[0].Replies[1].Content)

	assert.Equal(t, 3, tree[1].LikesCount)
	assert.True(t, tree[1].Liked)
	assert.Len(t, tree[1].Replies, 1)
}

func TestBuildCommentTree_OrphanReplyDropped(t *testing.T) {
	comments := []*Comment{
		{ID: 1, PostID: 9, Content: "top"},
		{ID: 2, PostID: 9, ParentCommentID: uintPtr(42), Content: "orphan"},
	}

	tree := BuildCommentTree(comments)
	assert.Len(t, tree, 1)
	assert.Empty(t, tree[0].Replies)
}

func TestBuildCommentTree_EmptyInput(t *testing.T) {
	assert.Empty(t, BuildCommentTree(nil))
}
