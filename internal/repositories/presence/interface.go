package presence

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/fitforge/teamsync/internal/repositories/presence Repository

import (
	"context"
)

// Repository defines the interface for presence persistence. Records are
// keyed by (session, user); concurrent heartbeats resolve last-write-wins.
type Repository interface {
	// UpsertPresence writes a participant's liveness record
	UpsertPresence(ctx context.Context, input *UpsertPresenceInput) error

	// ListPresence retrieves every presence record for a session
	ListPresence(ctx context.Context, input *ListPresenceInput) (*ListPresenceOutput, error)

	// DeletePresence removes one participant's record
	DeletePresence(ctx context.Context, input *DeletePresenceInput) error

	// DeleteSessionPresence removes every record for a session
	DeleteSessionPresence(ctx context.Context, input *DeleteSessionPresenceInput) error
}
