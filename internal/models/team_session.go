package models

import (
	"encoding/json"
	"time"
)

// SessionStatus represents the current state of a team session
type SessionStatus string

const (
	// SessionStatusActive indicates the session is live and joinable
	SessionStatusActive SessionStatus = "active"

	// SessionStatusFinished indicates every participant has left
	SessionStatusFinished SessionStatus = "finished"

	// SessionStatusEnded indicates the host ended the session
	SessionStatusEnded SessionStatus = "ended"
)

// Participant is a roster entry in a team session
type Participant struct {
	// UID is the participant's user identifier
	UID string `json:"uid"`

	// Name is the participant's display name
	Name string `json:"name"`

	// Photo is the participant's photo URL, empty when unset
	Photo string `json:"photo,omitempty"`

	// Status is free-form roster state supplied by the application shell
	Status string `json:"status,omitempty"`
}

// WorkoutState is the embedded mutable state blob on a session. It carries
// the shared workout payload and, when present, the current join code. A
// session holds at most one code; regenerating replaces the previous one.
type WorkoutState struct {
	// WorkoutData is the opaque workout payload shared with joiners
	WorkoutData json.RawMessage `json:"workout_data,omitempty"`

	// JoinCode is the currently valid admission code, empty when none
	JoinCode string `json:"join_code,omitempty"`

	// JoinExpiresAt is when the join code stops admitting
	JoinExpiresAt time.Time `json:"join_expires_at,omitzero"`
}

// TeamSession is a shared live workout instance. A session has exactly one
// host for its lifetime; once the status leaves active the session is inert.
type TeamSession struct {
	// ID is the unique identifier for the session
	ID string `json:"id"`

	// HostUID is the user who created the session
	HostUID string `json:"host_uid"`

	// Status is active, finished or ended
	Status SessionStatus `json:"status"`

	// Participants is the ordered roster, host first
	Participants []Participant `json:"participants"`

	// WorkoutState is the embedded workout/join-code blob, nil when unset
	WorkoutState *WorkoutState `json:"workout_state,omitempty"`

	// CreatedAt is when the session was created
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the session was last written
	UpdatedAt time.Time `json:"updated_at"`
}

// HasParticipant reports whether uid is on the roster.
func (s *TeamSession) HasParticipant(uid string) bool {
	for _, p := range s.Participants {
		if p.UID == uid {
			return true
		}
	}
	return false
}
