package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	PostKeyPrefix      = "post:%d"
	ForumKeyPrefix     = "forum:%s"
	FeedListKey        = "feed:recent"
	ForumFeedKeyPrefix = "feed:forum:%d"
)

const (
	UserTTL  = 5 * time.Minute
	ForumTTL = 10 * time.Minute
	PostTTL  = 30 * time.Minute
	ListTTL  = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func ForumKey(slug string) string {
	return fmt.Sprintf(ForumKeyPrefix, slug)
}

func ForumFeedKey(forumID uint) string {
	return fmt.Sprintf(ForumFeedKeyPrefix, forumID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateForum(ctx context.Context, slug string) {
	Invalidate(ctx, ForumKey(slug))
}

// InvalidateFeed drops the cached recent-posts list. forumID nil means the
// global feed.
func InvalidateFeed(ctx context.Context, forumID *uint) {
	if forumID != nil {
		Invalidate(ctx, ForumFeedKey(*forumID))
		return
	}
	Invalidate(ctx, FeedListKey)
}
