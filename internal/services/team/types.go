package team

import (
	"encoding/json"
	"time"

	"github.com/fitforge/teamsync/internal/models"
)

// IncomingInvite is a pending invite enriched with the sender's profile
type IncomingInvite struct {
	Invite    *models.Invite
	FromName  string
	FromPhoto string
}

type SendInviteInput struct {
	// From is the sending user's identity, used for the host roster
	// entry when a session is created
	From models.UserIdentity

	// ToUID is the recipient
	ToUID string

	// WorkoutData is the opaque workout payload carried by the invite
	WorkoutData json.RawMessage

	// TeamSessionID reuses an existing session; empty creates one
	TeamSessionID string

	// SeedPresence writes the host's initial presence record when a
	// session is created (teamwork-v2 tier)
	SeedPresence bool
}

type SendInviteOutput struct {
	SessionID string

	// Session is set when SendInvite created a new session
	Session *models.TeamSession

	Invite *models.Invite
}

type AcceptInviteInput struct {
	InviteID string
	User     models.UserIdentity
}

type AcceptInviteOutput struct {
	SessionID    string
	HostUID      string
	Participants []models.Participant
	WorkoutData  json.RawMessage
}

type RejectInviteInput struct {
	InviteID string
	UserID   string
}

type ListPendingInvitesInput struct {
	UserID string
}

type ListPendingInvitesOutput struct {
	Invites []*IncomingInvite
}

type ListAcceptedInvitesInput struct {
	FromUID   string
	SessionID string
}

type ListAcceptedInvitesOutput struct {
	Invites []*models.Invite
}

type CreateJoinCodeInput struct {
	Host models.UserIdentity

	// SessionID reuses an existing session; empty creates one
	SessionID string

	WorkoutData json.RawMessage

	// TTLMinutes defaults to 90 and is floored at 10
	TTLMinutes int
}

type CreateJoinCodeOutput struct {
	SessionID string
	Code      string
	ExpiresAt time.Time

	// Session is set when CreateJoinCode created a new session
	Session *models.TeamSession
}

type JoinByCodeInput struct {
	Code string
	User models.UserIdentity
}

type JoinByCodeOutput struct {
	SessionID    string
	HostUID      string
	Participants []models.Participant
	WorkoutData  json.RawMessage
}

type LeaveSessionInput struct {
	SessionID string
	UserID    string
}

type EndSessionInput struct {
	SessionID string
	HostUID   string
}

type GetSessionInput struct {
	SessionID string
}

type UpsertPresenceInput struct {
	SessionID string
	UserID    string
	Status    models.PresenceStatus
}

type ListPresenceInput struct {
	SessionID string
}

type ListPresenceOutput struct {
	Records []*models.PresenceRecord
}

type GetProfileInput struct {
	UserID string
}

type ListNotificationsInput struct {
	UserID string
}

type ListNotificationsOutput struct {
	Notifications []*models.Notification
}

type MarkInviteNotificationsReadInput struct {
	UserID string
}
