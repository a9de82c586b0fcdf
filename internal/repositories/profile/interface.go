package profile

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/fitforge/teamsync/internal/repositories/profile Repository

import (
	"context"

	"github.com/fitforge/teamsync/internal/models"
)

// Repository defines the interface for profile lookups used to enrich
// invites and acceptance notices
type Repository interface {
	// SaveProfile persists a user's public profile
	SaveProfile(ctx context.Context, input *SaveProfileInput) error

	// GetProfile retrieves a profile by user ID
	GetProfile(ctx context.Context, input *GetProfileInput) (*models.Profile, error)
}
