package presence

import "github.com/fitforge/teamsync/internal/models"

type UpsertPresenceInput struct {
	Record *models.PresenceRecord
}

type ListPresenceInput struct {
	SessionID string
}

type ListPresenceOutput struct {
	Records []*models.PresenceRecord
}

type DeletePresenceInput struct {
	SessionID string
	UserID    string
}

type DeleteSessionPresenceInput struct {
	SessionID string
}
