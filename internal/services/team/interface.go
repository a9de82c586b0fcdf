package team

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/fitforge/teamsync/internal/services/team Service

import (
	"context"

	"github.com/fitforge/teamsync/internal/models"
)

// Service defines the team session coordination operations. These are the
// backend procedures the per-user coordinator calls; the coordinator owns
// all client-local state, the service owns none.
type Service interface {
	// SendInvite creates a pending invite, creating a session with the
	// sender as host when none is supplied
	SendInvite(ctx context.Context, input *SendInviteInput) (*SendInviteOutput, error)

	// AcceptInvite atomically validates a pending invite, adds the
	// acceptor to the roster and resolves the workout payload
	AcceptInvite(ctx context.Context, input *AcceptInviteInput) (*AcceptInviteOutput, error)

	// RejectInvite resolves a pending invite to rejected
	RejectInvite(ctx context.Context, input *RejectInviteInput) error

	// ListPendingInvites lists pending invites addressed to a user,
	// newest first, enriched with sender profiles
	ListPendingInvites(ctx context.Context, input *ListPendingInvitesInput) (*ListPendingInvitesOutput, error)

	// ListAcceptedInvites lists accepted invites a sender issued for
	// one session
	ListAcceptedInvites(ctx context.Context, input *ListAcceptedInvitesInput) (*ListAcceptedInvitesOutput, error)

	// CreateJoinCode attaches a fresh admission code to a session,
	// creating the session when the caller has none. Any previous code
	// stops admitting.
	CreateJoinCode(ctx context.Context, input *CreateJoinCodeInput) (*CreateJoinCodeOutput, error)

	// JoinByCode admits a user into the session a code resolves to
	JoinByCode(ctx context.Context, input *JoinByCodeInput) (*JoinByCodeOutput, error)

	// LeaveSession removes a participant from the roster. The session
	// ends when the host leaves and finishes when the roster empties.
	LeaveSession(ctx context.Context, input *LeaveSessionInput) error

	// EndSession flips a session to ended. Host only.
	EndSession(ctx context.Context, input *EndSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.TeamSession, error)

	// UpsertPresence writes a participant's heartbeat record
	UpsertPresence(ctx context.Context, input *UpsertPresenceInput) error

	// ListPresence retrieves the presence table for a session
	ListPresence(ctx context.Context, input *ListPresenceInput) (*ListPresenceOutput, error)

	// GetProfile retrieves a user's public profile
	GetProfile(ctx context.Context, input *GetProfileInput) (*models.Profile, error)

	// ListNotifications lists a user's notifications, newest first
	ListNotifications(ctx context.Context, input *ListNotificationsInput) (*ListNotificationsOutput, error)

	// MarkInviteNotificationsRead marks a user's invite notifications read
	MarkInviteNotificationsRead(ctx context.Context, input *MarkInviteNotificationsReadInput) error
}
