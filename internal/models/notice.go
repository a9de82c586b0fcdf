package models

// AcceptedNotice is an ephemeral, client-local signal shown once to a host
// when a recipient accepts a sent invite. It is never shown twice for the
// same invite within a coordinator lifetime.
type AcceptedNotice struct {
	// InviteID is the accepted invite
	InviteID string `json:"invite_id"`

	// FromName is the acceptor's display name, or a generic fallback when
	// the profile lookup fails
	FromName string `json:"from_name"`

	// FromPhoto is the acceptor's photo URL, empty when unknown
	FromPhoto string `json:"from_photo,omitempty"`

	// FromUID is the acceptor's user identifier
	FromUID string `json:"from_uid,omitempty"`

	// TeamSessionID is the session the acceptance resolved into
	TeamSessionID string `json:"team_session_id,omitempty"`
}
