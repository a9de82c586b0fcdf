package models

import (
	"time"
)

// PresenceStatus represents a participant's liveness state within a session
type PresenceStatus string

const (
	// PresenceStatusOnline indicates the participant is actively present
	PresenceStatusOnline PresenceStatus = "online"

	// PresenceStatusAway indicates the participant stepped away
	PresenceStatusAway PresenceStatus = "away"

	// PresenceStatusOffline indicates the participant reported itself gone
	PresenceStatusOffline PresenceStatus = "offline"
)

// PresenceRecord is per (session, user) liveness state, refreshed by a
// periodic heartbeat while the participant keeps the session open. Staleness
// interpretation is left to the reader; the record is stored as written.
type PresenceRecord struct {
	// SessionID is the session the record belongs to
	SessionID string `json:"session_id"`

	// UserID is the participant the record belongs to
	UserID string `json:"user_id"`

	// Status is online, away or offline
	Status PresenceStatus `json:"status"`

	// UpdatedAt is when the record was last heartbeat-written
	UpdatedAt time.Time `json:"updated_at"`
}
