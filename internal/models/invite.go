package models

import (
	"encoding/json"
	"time"
)

// InviteStatus represents the current state of an invite
type InviteStatus string

const (
	// InviteStatusPending indicates the recipient has not responded yet
	InviteStatusPending InviteStatus = "pending"

	// InviteStatusAccepted indicates the recipient accepted and joined the session
	InviteStatusAccepted InviteStatus = "accepted"

	// InviteStatusRejected indicates the recipient declined the invite
	InviteStatusRejected InviteStatus = "rejected"
)

// Invite represents a request from one user to another to join a shared
// workout session. Invites are never deleted; a resolved invite keeps its
// terminal status.
type Invite struct {
	// ID is the unique identifier for the invite
	ID string `json:"id"`

	// FromUID is the user who sent the invite
	FromUID string `json:"from_uid"`

	// ToUID is the user the invite is addressed to
	ToUID string `json:"to_uid"`

	// WorkoutData is the workout payload carried by the invite. The
	// coordinator passes it through without inspecting its shape.
	WorkoutData json.RawMessage `json:"workout_data,omitempty"`

	// TeamSessionID is the session the invite admits the recipient into
	TeamSessionID string `json:"team_session_id,omitempty"`

	// Status is pending, accepted or rejected. Status only moves away
	// from pending, never back.
	Status InviteStatus `json:"status"`

	// CreatedAt is when the invite was created
	CreatedAt time.Time `json:"created_at"`
}
