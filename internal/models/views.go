package models

import "time"

// FallbackDisplayName is used when an author row is missing or has an empty
// username (e.g. a viewer-less projection of seeded data).
const FallbackDisplayName = "Unknown farmer"

// AuthorView carries the display fields of a post or comment author.
type AuthorView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// PostView joins a stored post with its derived aggregates and author display
// fields. It is the read model returned by list and detail endpoints.
type PostView struct {
	ID            uint       `json:"id"`
	Author        AuthorView `json:"author"`
	Content       string     `json:"content"`
	ImageURL      string     `json:"image_url,omitempty"`
	ForumID       *uint      `json:"forum_id,omitempty"`
	LikesCount    int        `json:"likes_count"`
	CommentsCount int        `json:"comments_count"`
	Liked         bool       `json:"liked"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CommentView is a top-level comment with its one level of replies.
type CommentView struct {
	ID         uint        `json:"id"`
	PostID     uint        `json:"post_id"`
	Author     AuthorView  `json:"author"`
	Content    string      `json:"content"`
	LikesCount int         `json:"likes_count"`
	Liked      bool        `json:"liked"`
	CreatedAt  time.Time   `json:"created_at"`
	Replies    []ReplyView `json:"replies"`
}

// ReplyView is a one-level reply. ParentID is always set; replies carry no
// nested replies, which keeps the rendered tree depth-bounded by type.
type ReplyView struct {
	ID         uint       `json:"id"`
	PostID     uint       `json:"post_id"`
	ParentID   uint       `json:"parent_id"`
	Author     AuthorView `json:"author"`
	Content    string     `json:"content"`
	LikesCount int        `json:"likes_count"`
	Liked      bool       `json:"liked"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewAuthorView projects a user's display fields, substituting
// FallbackDisplayName when the username is empty.
func NewAuthorView(u User) AuthorView {
	name := u.Username
	if name == "" {
		name = FallbackDisplayName
	}
	return AuthorView{
		ID:        u.ID,
		Name:      name,
		AvatarURL: u.Avatar,
	}
}

// NewPostView projects a post (with computed aggregates populated by the
// repository) into its read model.
func NewPostView(p *Post) PostView {
	return PostView{
		ID:            p.ID,
		Author:        NewAuthorView(p.User),
		Content:       p.Content,
		ImageURL:      p.ImageURL,
		ForumID:       p.ForumID,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		Liked:         p.Liked,
		CreatedAt:     p.CreatedAt,
	}
}

// NewCommentView projects a top-level comment. Replies are attached by the
// caller via NewReplyView; a reply passed here would lose its parent link, so
// callers must split the flat comment list by ParentCommentID first.
func NewCommentView(c *Comment) CommentView {
	return CommentView{
		ID:         c.ID,
		PostID:     c.PostID,
		Author:     NewAuthorView(c.User),
		Content:    c.Content,
		LikesCount: c.LikesCount,
		Liked:      c.Liked,
		CreatedAt:  c.CreatedAt,
		Replies:    []ReplyView{},
	}
}

// NewReplyView projects a one-level reply.
func NewReplyView(c *Comment) ReplyView {
	var parentID uint
	if c.ParentCommentID != nil {
		parentID = *c.ParentCommentID
	}
	return ReplyView{
		ID:         c.ID,
		PostID:     c.PostID,
		ParentID:   parentID,
		Author:     NewAuthorView(c.User),
		Content:    c.Content,
		LikesCount: c.LikesCount,
		Liked:      c.Liked,
		CreatedAt:  c.CreatedAt,
	}
}

// BuildCommentTree splits a flat, created-at-ascending comment list into
// top-level CommentViews with their ReplyViews attached. Replies whose parent
// is missing from the slice are dropped rather than promoted, preserving the
// one-level invariant.
func BuildCommentTree(comments []*Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	index := make(map[uint]int, len(comments))

	for _, c := range comments {
		if c.IsReply() {
			continue
		}
		index[c.ID] = len(views)
		views = append(views, NewCommentView(c))
	}
	for _, c := range comments {
		if !c.IsReply() {
			continue
		}
		i, ok := index[*c.ParentCommentID]
		if !ok {
			continue
		}
		views[i].Replies = append(views[i].Replies, NewReplyView(c))
	}
	return views
}
