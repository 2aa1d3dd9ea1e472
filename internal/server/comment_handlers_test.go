package server

import (
	"fmt"
	"net/http"
	"testing"

	"agriconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentsPath(postID uint) string {
	return fmt.Sprintf("/api/posts/%d/comments", postID)
}

func TestCommentTreeFlow(t *testing.T) {
	t.Parallel()
	_, app := newHandlerTestServer(t)

	token, _ := signupUser(t, app, "commenter")
	postID := createPost(t, app, token, "post with a discussion", nil)

	var first models.Comment
	status := doJSON(t, app, http.MethodPost, commentsPath(postID), token, map[string]interface{}{
		"content": "first comment",
	}, &first)
	require.Equal(t, http.StatusCreated, status)

	var second models.Comment
	status = doJSON(t, app, http.MethodPost, commentsPath(postID), token, map[string]interface{}{
		"content": "second comment",
	}, &second)
	require.Equal(t, http.StatusCreated, status)

	var reply models.Comment
	status = doJSON(t, app, http.MethodPost, commentsPath(postID), token, map[string]interface{}{
		"content":           "a reply to the first",
		"parent_comment_id": first.ID,
	}, &reply)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, reply.ParentCommentID)
	assert.Equal(t, first.ID, *reply.ParentCommentID)

	// Replying to a reply is rejected; the tree stays one level deep.
	status = doJSON(t, app, http.MethodPost, commentsPath(postID), token, map[string]interface{}{
		"content":           "too deep",
		"parent_comment_id": reply.ID,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// The tree nests the reply under its parent in posting order.
	var tree []models.CommentView
	status = doJSON(t, app, http.MethodGet, commentsPath(postID), "", nil, &tree)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, tree, 2)
	assert.Equal(t, first.ID, tree[0].ID)
	assert.Equal(t, second.ID, tree[1].ID)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, reply.ID, tree[0].Replies[0].ID)
	assert.Empty(t, tree[1].Replies)

	// The post's comment counter includes replies.
	var post models.Post
	status = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), "", nil, &post)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, post.CommentsCount)
}

func TestCreateCommentValidation(t *testing.T) {
	t.Parallel()
	_, app := newHandlerTestServer(t)

	token, _ := signupUser(t, app, "strictcommenter")
	postID := createPost(t, app, token, "a post", nil)
	otherPostID := createPost(t, app, token, "another post", nil)

	var onOther models.Comment
	status := doJSON(t, app, http.MethodPost, commentsPath(otherPostID), token, map[string]interface{}{
		"content": "comment on the other post",
	}, &onOther)
	require.Equal(t, http.StatusCreated, status)

	tests := []struct {
		name           string
		path           string
		body           map[string]interface{}
		expectedStatus int
	}{
		{
			name:           "empty content",
			path:           commentsPath(postID),
			body:           map[string]interface{}{"content": "  "},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown post",
			path:           commentsPath(99999),
			body:           map[string]interface{}{"content": "hello"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "parent on a different post",
			path: commentsPath(postID),
			body: map[string]interface{}{
				"content":           "crossed wires",
				"parent_comment_id": onOther.ID,
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := doJSON(t, app, http.MethodPost, tt.path, token, tt.body, nil)
			assert.Equal(t, tt.expectedStatus, status)
		})
	}
}

func TestCommentingInForumRequiresMembership(t *testing.T) {
	t.Parallel()
	_, app := newHandlerTestServer(t)

	ownerToken, _ := signupUser(t, app, "gardenowner")
	outsiderToken, _ := signupUser(t, app, "outsider")

	forumID, _ := createForum(t, app, ownerToken, "Greenhouse Tips")
	postID := createPost(t, app, ownerToken, "forum discussion", &forumID)

	// Reading is open to everyone, member or not.
	var tree []models.CommentView
	status := doJSON(t, app, http.MethodGet, commentsPath(postID), outsiderToken, nil, &tree)
	assert.Equal(t, http.StatusOK, status)

	// Writing is gated on membership.
	status = doJSON(t, app, http.MethodPost, commentsPath(postID), outsiderToken, map[string]interface{}{
		"content": "let me in",
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/forums/%d/follow", forumID), outsiderToken, nil, nil)
	require.Equal(t, http.StatusOK, status)

	status = doJSON(t, app, http.MethodPost, commentsPath(postID), outsiderToken, map[string]interface{}{
		"content": "thanks for having me",
	}, nil)
	assert.Equal(t, http.StatusCreated, status)
}

func TestToggleCommentLike(t *testing.T) {
	t.Parallel()
	_, app := newHandlerTestServer(t)

	token, _ := signupUser(t, app, "commentliker")
	postID := createPost(t, app, token, "likeable discussion", nil)

	var comment models.Comment
	status := doJSON(t, app, http.MethodPost, commentsPath(postID), token, map[string]interface{}{
		"content": "like me",
	}, &comment)
	require.Equal(t, http.StatusCreated, status)

	path := fmt.Sprintf("/api/comments/%d/like", comment.ID)

	var toggleResp struct {
		Liked   bool           `json:"liked"`
		Comment models.Comment `json:"comment"`
	}
	status = doJSON(t, app, http.MethodPost, path, token, nil, &toggleResp)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, toggleResp.Liked)
	assert.Equal(t, 1, toggleResp.Comment.LikesCount)

	status = doJSON(t, app, http.MethodPost, path, token, nil, &toggleResp)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, toggleResp.Liked)
	assert.Equal(t, 0, toggleResp.Comment.LikesCount)

	status = doJSON(t, app, http.MethodPost, "/api/comments/424242/like", token, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
