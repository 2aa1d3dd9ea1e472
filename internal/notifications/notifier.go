// Package notifications delivers real-time feed events to connected clients.
package notifications

import (
	"context"
	"log"
	"runtime/debug"

	"github.com/redis/go-redis/v9"
)

// FeedChannel is the Redis pub/sub channel carrying feed events. All
// aggregate changes (reactions, new comments) fan out through it, so every
// API instance sees events published by its peers.
const FeedChannel = "feed:events"

// Notifier publishes feed events into Redis.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client degrades every publish to a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishFeedEvent sends a serialized event to all subscribed instances.
func (n *Notifier) PublishFeedEvent(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, FeedChannel, payload).Err()
}

// StartFeedSubscriber subscribes to the feed channel and calls onMessage for
// each incoming event until ctx is cancelled.
func (n *Notifier) StartFeedSubscriber(
	ctx context.Context, onMessage func(payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, FeedChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in FeedSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
