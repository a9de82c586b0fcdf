package notification

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/fitforge/teamsync/internal/repositories/notification Repository

import (
	"context"
)

// Repository defines the interface for notification persistence. Invite
// notifications are the coordinator's secondary invite-delivery channel.
type Repository interface {
	// CreateNotification persists a notification and announces it on
	// the recipient's notification feed
	CreateNotification(ctx context.Context, input *CreateNotificationInput) error

	// ListByUser retrieves a user's notifications, newest first
	ListByUser(ctx context.Context, input *ListByUserInput) (*ListByUserOutput, error)

	// MarkInviteRead marks all of a user's invite notifications read
	MarkInviteRead(ctx context.Context, input *MarkInviteReadInput) error
}
