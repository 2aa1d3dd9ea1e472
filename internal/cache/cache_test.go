package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPost struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

func setupMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissFetchesAndStores(t *testing.T) {
	mr := setupMiniRedis(t)
	ctx := context.Background()

	fetches := 0
	var got cachedPost
	err := Aside(ctx, PostKey(1), &got, PostTTL, func() error {
		fetches++
		got = cachedPost{ID: 1, Content: "groundnut harvest tips"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "groundnut harvest tips", got.Content)
	assert.True(t, mr.Exists(PostKey(1)))

	// Second read hits the cache.
	var again cachedPost
	err = Aside(ctx, PostKey(1), &again, PostTTL, func() error {
		fetches++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, got, again)
}

func TestAside_ExpiredEntryRefetches(t *testing.T) {
	mr := setupMiniRedis(t)
	ctx := context.Background()

	var v cachedPost
	require.NoError(t, Aside(ctx, FeedListKey, &v, time.Second, func() error {
		v = cachedPost{ID: 2}
		return nil
	}))

	mr.FastForward(2 * time.Second)

	fetched := false
	require.NoError(t, Aside(ctx, FeedListKey, &v, time.Second, func() error {
		fetched = true
		return nil
	}))
	assert.True(t, fetched)
}

func TestInvalidateFeed(t *testing.T) {
	mr := setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, FeedListKey, cachedPost{ID: 1}, ListTTL))
	forumID := uint(3)
	require.NoError(t, SetJSON(ctx, ForumFeedKey(forumID), cachedPost{ID: 2}, ListTTL))

	InvalidateFeed(ctx, nil)
	assert.False(t, mr.Exists(FeedListKey))
	assert.True(t, mr.Exists(ForumFeedKey(forumID)))

	InvalidateFeed(ctx, &forumID)
	assert.False(t, mr.Exists(ForumFeedKey(forumID)))
}

func TestHelpersNoopWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	found, err := GetJSON(ctx, "anything", &cachedPost{})
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetJSON(ctx, "anything", cachedPost{}, time.Minute))

	// Aside degrades to a plain fetch.
	var v cachedPost
	require.NoError(t, Aside(ctx, "anything", &v, time.Minute, func() error {
		v = cachedPost{ID: 9}
		return nil
	}))
	assert.Equal(t, uint(9), v.ID)
}
