// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a comment on a post. ParentCommentID, when set, must reference a
// top-level comment on the same post; replies to replies are rejected at
// creation, so the stored tree is never deeper than one level.
type Comment struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Content         string `gorm:"type:text;not null" json:"content"`
	UserID          uint   `gorm:"not null;index" json:"user_id"`
	PostID          uint   `gorm:"not null;index" json:"post_id"`
	ParentCommentID *uint  `gorm:"index" json:"parent_comment_id,omitempty"`
	User            User   `gorm:"foreignKey:UserID" json:"user"`
	Post            Post   `gorm:"foreignKey:PostID" json:"post,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this comment (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsReply reports whether the comment is a one-level reply.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}
