package coordinator

import (
	"encoding/json"
	"time"

	"github.com/fitforge/teamsync/internal/models"
)

// SessionState is the coordinator's local view of its current team session
type SessionState struct {
	// ID of the team session
	ID string `json:"id"`

	// IsHost is true when the local user created the session
	IsHost bool `json:"is_host"`

	// HostName is the display name of the session host
	HostName string `json:"host_name"`

	// Participants is the last roster observed
	Participants []models.Participant `json:"participants"`
}

// JoinResult is the structured outcome of a join-by-code attempt. Join
// failures are expected steady states, so they surface here rather than
// as errors.
type JoinResult struct {
	OK        bool   `json:"ok"`
	SessionID string `json:"session_id,omitempty"`

	// Workout is the session's embedded workout payload, set on success
	Workout json.RawMessage `json:"workout,omitempty"`

	// Error is a human-readable reason, set on failure
	Error string `json:"error,omitempty"`
}

// CreateCodeResult is the structured outcome of creating a join code
type CreateCodeResult struct {
	OK        bool      `json:"ok"`
	SessionID string    `json:"session_id,omitempty"`
	Code      string    `json:"code,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`

	// URL is a shareable link embedding the code
	URL string `json:"url,omitempty"`

	// Error is a human-readable reason, set on failure
	Error string `json:"error,omitempty"`
}

// Notifier surfaces a user-facing notification. Failures are ignored.
type Notifier func(title, body string)

// SoundPlayer plays a named cue. Failures are ignored.
type SoundPlayer func(name string)

// StartSessionFunc receives a workout payload when a join admits the user
// into a session that should start immediately
type StartSessionFunc func(workout json.RawMessage)
