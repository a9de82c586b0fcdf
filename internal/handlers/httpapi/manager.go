package httpapi

import (
	"context"
	"errors"
	"sync"

	"github.com/fitforge/teamsync/internal/coordinator"
	"github.com/fitforge/teamsync/internal/models"
	"github.com/fitforge/teamsync/internal/realtime"
	"github.com/fitforge/teamsync/internal/services/team"
)

// ManagerConfig holds the configuration for the coordinator manager
type ManagerConfig struct {
	// Team service
	Service team.Service

	// Event feed
	Feed realtime.Feed

	// Settings applied to every coordinator. Nil uses DefaultSettings.
	Settings *models.Settings

	// ShareBaseURL is the base of generated join links
	ShareBaseURL string

	// Optional hooks passed through to coordinators
	Notify    coordinator.Notifier
	PlaySound coordinator.SoundPlayer
}

// Manager owns one coordinator per authenticated user, created lazily on
// first request and run until the manager's context ends
type Manager struct {
	service      team.Service
	feed         realtime.Feed
	settings     *models.Settings
	shareBaseURL string
	notify       coordinator.Notifier
	playSound    coordinator.SoundPlayer

	mu     sync.Mutex
	coords map[string]*coordinator.Coordinator
	ctx    context.Context
}

// NewManager creates a coordinator manager
func NewManager(cfg *ManagerConfig) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Service == nil {
		return nil, errors.New("team service cannot be nil")
	}

	if cfg.Feed == nil {
		return nil, errors.New("event feed cannot be nil")
	}

	return &Manager{
		service:      cfg.Service,
		feed:         cfg.Feed,
		settings:     cfg.Settings,
		shareBaseURL: cfg.ShareBaseURL,
		notify:       cfg.Notify,
		playSound:    cfg.PlaySound,
		coords:       make(map[string]*coordinator.Coordinator),
		ctx:          context.Background(),
	}, nil
}

// Start binds the lifetime of all coordinators to ctx. Coordinators created
// before Start run against the background context.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	m.ctx = ctx
	m.mu.Unlock()
}

// Coordinator returns the user's coordinator, creating and running it on
// first use
func (m *Manager) Coordinator(user models.UserIdentity) (*coordinator.Coordinator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.coords[user.UID]; ok {
		return c, nil
	}

	c, err := coordinator.New(&coordinator.Config{
		User:         user,
		Service:      m.service,
		Feed:         m.feed,
		Settings:     m.settings,
		ShareBaseURL: m.shareBaseURL,
		Notify:       m.notify,
		PlaySound:    m.playSound,
	})
	if err != nil {
		return nil, err
	}

	m.coords[user.UID] = c
	go func() {
		_ = c.Run(m.ctx)
	}()

	return c, nil
}
