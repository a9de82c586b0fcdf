package profile

import "github.com/fitforge/teamsync/internal/models"

type SaveProfileInput struct {
	Profile *models.Profile
}

type GetProfileInput struct {
	UserID string
}
