package models

import (
	"time"
)

// NotificationTypeInvite marks a notification produced by an invite insert.
// The coordinator's fallback ingestion keys off this type.
const NotificationTypeInvite = "invite"

// Notification is a per-user notification row. Invite notifications double
// as a secondary delivery channel for invite refreshes when the primary
// realtime feed drops a message.
type Notification struct {
	// ID is the unique identifier for the notification
	ID string `json:"id"`

	// UserID is the user the notification is addressed to
	UserID string `json:"user_id"`

	// Type discriminates the notification, e.g. "invite"
	Type string `json:"type"`

	// SenderName is the display name of the originating user
	SenderName string `json:"sender_name,omitempty"`

	// Text is the human-readable notification body
	Text string `json:"text,omitempty"`

	// Read indicates the notification has been acknowledged
	Read bool `json:"read"`

	// CreatedAt is when the notification was created
	CreatedAt time.Time `json:"created_at"`
}
