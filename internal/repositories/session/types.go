package session

import (
	"encoding/json"
	"time"

	"github.com/fitforge/teamsync/internal/models"
)

type CreateSessionInput struct {
	Session *models.TeamSession
}

type SaveSessionInput struct {
	Session *models.TeamSession
}

type GetSessionInput struct {
	SessionID string
}

type SetJoinCodeInput struct {
	SessionID   string
	Code        string
	ExpiresAt   time.Time
	TTL         time.Duration
	WorkoutData json.RawMessage
}

type GetSessionByCodeInput struct {
	Code string
}
