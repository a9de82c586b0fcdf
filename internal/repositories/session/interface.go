package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/fitforge/teamsync/internal/repositories/session Repository

import (
	"context"

	"github.com/fitforge/teamsync/internal/models"
)

// Repository defines the interface for team session persistence
type Repository interface {
	// CreateSession persists a new session
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// SaveSession overwrites an existing session and announces the
	// change on the session's feed
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.TeamSession, error)

	// SetJoinCode merges a join code, its expiry and the workout payload
	// into the session's workout state. Any previous code for the
	// session stops resolving.
	SetJoinCode(ctx context.Context, input *SetJoinCodeInput) (*models.TeamSession, error)

	// GetSessionByCode resolves a join code to its owning session. The
	// code index expires with the code, so a stale or superseded code
	// fails with ErrCodeNotFound.
	GetSessionByCode(ctx context.Context, input *GetSessionByCodeInput) (*models.TeamSession, error)
}
