package invite

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/fitforge/teamsync/internal/repositories/invite Repository

import (
	"context"

	"github.com/fitforge/teamsync/internal/models"
)

// Repository defines the interface for invite persistence
type Repository interface {
	// CreateInvite persists a new invite and announces it on the
	// recipient's invite feed
	CreateInvite(ctx context.Context, input *CreateInviteInput) error

	// GetInvite retrieves an invite by ID
	GetInvite(ctx context.Context, input *GetInviteInput) (*models.Invite, error)

	// UpdateInviteStatus resolves a pending invite to accepted or
	// rejected. Status is monotonic; resolving an already-resolved
	// invite fails with ErrInviteResolved.
	UpdateInviteStatus(ctx context.Context, input *UpdateInviteStatusInput) (*models.Invite, error)

	// ListPendingByRecipient retrieves pending invites addressed to a
	// user, newest first
	ListPendingByRecipient(ctx context.Context, input *ListPendingByRecipientInput) (*ListPendingByRecipientOutput, error)

	// ListAcceptedBySession retrieves accepted invites a sender issued
	// for one session, newest first
	ListAcceptedBySession(ctx context.Context, input *ListAcceptedBySessionInput) (*ListAcceptedBySessionOutput, error)
}
