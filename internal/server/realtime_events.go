package server

import (
	"context"
	"encoding/json"
	"log"
)

// Event type constants prevent typos in event names.
const (
	EventPostCreated           = "post_created"
	EventPostReactionUpdated   = "post_reaction_updated"
	EventCommentCreated        = "comment_created"
	EventCommentLikeUpdated    = "comment_reaction_updated"
	EventForumMembershipChange = "forum_membership_changed"
)

// publishFeedEvent fans an event out to clients on this instance and, through
// Redis, to clients connected to other API instances.
func (s *Server) publishFeedEvent(eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishFeedEvent(context.Background(), message); err != nil {
			log.Printf("failed to publish %s event: %v", eventType, err)
		}
	}
}
