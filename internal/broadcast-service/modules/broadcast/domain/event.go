package domain

import "time"

// NotificationTopic kafka topic for broadcast lifecycle events
const NotificationTopic = "notifications"

// notification event types
const (
	// EventBroadcastCreated published after a broadcast is persisted
	EventBroadcastCreated = "BROADCAST_CREATED"
	// EventUserJoined published after a participant is added
	EventUserJoined = "USER_JOINED"
	// EventBroadcastExpired reserved type, the sweeper does not publish it
	EventBroadcastExpired = "BROADCAST_EXPIRED"
)

// NotificationEvent model
type NotificationEvent struct {
	EventID     string                 `json:"eventId"`
	Type        string                 `json:"type"`
	UserID      string                 `json:"userId"`
	BroadcastID string                 `json:"broadcastId"`
	Timestamp   time.Time              `json:"timestamp"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
