package notification

import "github.com/fitforge/teamsync/internal/models"

type CreateNotificationInput struct {
	Notification *models.Notification
}

type ListByUserInput struct {
	UserID string
}

type ListByUserOutput struct {
	Notifications []*models.Notification
}

type MarkInviteReadInput struct {
	UserID string
}
