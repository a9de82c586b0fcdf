package invite

import "github.com/fitforge/teamsync/internal/models"

type CreateInviteInput struct {
	Invite *models.Invite
}

type GetInviteInput struct {
	InviteID string
}

type UpdateInviteStatusInput struct {
	InviteID string
	Status   models.InviteStatus
}

type ListPendingByRecipientInput struct {
	UserID string
}

type ListPendingByRecipientOutput struct {
	Invites []*models.Invite
}

type ListAcceptedBySessionInput struct {
	FromUID   string
	SessionID string
}

type ListAcceptedBySessionOutput struct {
	Invites []*models.Invite
}
