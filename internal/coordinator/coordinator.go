package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fitforge/teamsync/internal/models"
	"github.com/fitforge/teamsync/internal/realtime"
	"github.com/fitforge/teamsync/internal/services/team"
)

const (
	// DefaultPollInterval is how often pending and accepted invites are
	// refetched as a fallback to the event feed
	DefaultPollInterval = 20 * time.Second

	// DefaultHeartbeatInterval is how often the local user's presence
	// record is rewritten while in a session
	DefaultHeartbeatInterval = 15 * time.Second

	// DefaultShareBaseURL is the link join codes are embedded into when
	// no base URL is configured
	DefaultShareBaseURL = "https://app.fitforge.dev/train"

	// joinParam is the query parameter carrying a join code in deep links
	joinParam = "join"

	// fallbackName is shown when a profile lookup fails
	fallbackName = "Unknown"

	// disabledReason is the structured failure reason when the teamwork
	// capability is off. A soft gate, not an error.
	disabledReason = "disabled"
)

// Config holds configuration for a per-user coordinator
type Config struct {
	// User is the local user's identity
	User models.UserIdentity

	// Service performs the remote team operations
	Service team.Service

	// Feed delivers row-change events
	Feed realtime.Feed

	// Settings gate invite surfacing, presence and join codes. Nil uses
	// DefaultSettings.
	Settings *models.Settings

	// ShareBaseURL is the base of generated join links
	ShareBaseURL string

	// PollInterval overrides DefaultPollInterval
	PollInterval time.Duration

	// HeartbeatInterval overrides DefaultHeartbeatInterval
	HeartbeatInterval time.Duration

	// Notify surfaces user-facing notifications. Optional.
	Notify Notifier

	// PlaySound plays feedback cues. Optional.
	PlaySound SoundPlayer

	// OnStartSession receives the workout payload when a deep-link join
	// succeeds. Optional.
	OnStartSession StartSessionFunc
}

// Coordinator owns one user's client-local team state: the pending invite
// list, the current session view, the presence table and the accepted-invite
// notice. Remote writes go through the team service; remote changes arrive
// through the event feed with periodic refetches backstopping lost events.
type Coordinator struct {
	user              models.UserIdentity
	service           team.Service
	feed              realtime.Feed
	settings          models.Settings
	shareBaseURL      string
	pollInterval      time.Duration
	heartbeatInterval time.Duration
	notify            Notifier
	playSound         SoundPlayer
	onStartSession    StartSessionFunc

	mu             sync.Mutex
	invites        []*team.IncomingInvite
	session        *SessionState
	presence       map[string]*models.PresenceRecord
	notice         *models.AcceptedNotice
	presenceStatus models.PresenceStatus

	// seenAccepted holds invite ids whose acceptance notice has been
	// shown. Never cleared within a coordinator lifetime.
	seenAccepted map[string]struct{}

	// joinHandled holds uid:code pairs whose deep link has been
	// consumed, successfully or not
	joinHandled map[string]struct{}

	runCtx        context.Context
	sessionCancel context.CancelFunc
}

// New creates a coordinator for one user
func New(cfg *Config) (*Coordinator, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.User.UID == "" {
		return nil, ErrNoUser
	}
	if cfg.Service == nil {
		return nil, ErrNilService
	}
	if cfg.Feed == nil {
		return nil, ErrNilFeed
	}

	settings := models.DefaultSettings()
	if cfg.Settings != nil {
		settings = *cfg.Settings
	}

	baseURL := cfg.ShareBaseURL
	if baseURL == "" {
		baseURL = DefaultShareBaseURL
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	heartbeatInterval := cfg.HeartbeatInterval
	if heartbeatInterval <= 0 {
		heartbeatInterval = DefaultHeartbeatInterval
	}

	return &Coordinator{
		user:              cfg.User,
		service:           cfg.Service,
		feed:              cfg.Feed,
		settings:          settings,
		shareBaseURL:      baseURL,
		pollInterval:      pollInterval,
		heartbeatInterval: heartbeatInterval,
		notify:            cfg.Notify,
		playSound:         cfg.PlaySound,
		onStartSession:    cfg.OnStartSession,
		presence:          make(map[string]*models.PresenceRecord),
		presenceStatus:    models.PresenceStatusOnline,
		seenAccepted:      make(map[string]struct{}),
		joinHandled:       make(map[string]struct{}),
		runCtx:            context.Background(),
	}, nil
}

// Run ingests the user's invite and notification feeds and drives the
// fallback poll until ctx is canceled. Session-scoped feeds are managed
// separately as sessions are adopted and cleared.
func (c *Coordinator) Run(ctx context.Context) error {
	c.mu.Lock()
	c.runCtx = ctx
	c.mu.Unlock()

	events, err := c.feed.Subscribe(ctx,
		realtime.InviteInboxChannel(c.user.UID),
		realtime.NotificationChannel(c.user.UID),
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe to user feeds: %w", err)
	}

	c.RefetchInvites(ctx)

	poll := time.NewTicker(c.pollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			c.handleUserEvent(ctx, ev)
		case <-poll.C:
			c.RefetchInvites(ctx)
			c.PollAccepted(ctx)
		}
	}
}

// SendInvite sends a workout invite, creating a session with the local user
// as host when none is active. Returns the session id the invite targets.
func (c *Coordinator) SendInvite(ctx context.Context, toUID string, workout json.RawMessage) (string, error) {
	c.mu.Lock()
	sessionID := ""
	if c.session != nil {
		sessionID = c.session.ID
	}
	c.mu.Unlock()

	out, err := c.service.SendInvite(ctx, &team.SendInviteInput{
		From:          c.user,
		ToUID:         toUID,
		WorkoutData:   workout,
		TeamSessionID: sessionID,
		SeedPresence:  c.settings.TeamworkV2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send invite: %w", err)
	}

	if out.Session != nil {
		c.adoptSession(out.Session.ID, true, c.user.DisplayName, out.Session.Participants)
	}

	return out.SessionID, nil
}

// AcceptInvite accepts a pending invite, adopts the resulting session as
// non-host local state and hands the workout payload to onAccepted
func (c *Coordinator) AcceptInvite(ctx context.Context, inv *team.IncomingInvite, onAccepted StartSessionFunc) error {
	if inv == nil || inv.Invite == nil {
		return team.ErrInvalidInvite
	}

	out, err := c.service.AcceptInvite(ctx, &team.AcceptInviteInput{
		InviteID: inv.Invite.ID,
		User:     c.user,
	})
	if err != nil {
		return fmt.Errorf("failed to accept invite: %w", err)
	}

	c.removeInvite(inv.Invite.ID)
	c.adoptSession(out.SessionID, false, hostNameFromRoster(out.HostUID, out.Participants), out.Participants)

	// Clearing the notification badge is best-effort; the row stays
	// consistent either way.
	_ = c.service.MarkInviteNotificationsRead(ctx, &team.MarkInviteNotificationsReadInput{
		UserID: c.user.UID,
	})

	if onAccepted != nil {
		onAccepted(out.WorkoutData)
	}

	return nil
}

// RejectInvite declines a pending invite. The invite leaves the local list
// only after the remote rejection succeeds.
func (c *Coordinator) RejectInvite(ctx context.Context, inviteID string) error {
	if err := c.service.RejectInvite(ctx, &team.RejectInviteInput{
		InviteID: inviteID,
		UserID:   c.user.UID,
	}); err != nil {
		return fmt.Errorf("failed to reject invite: %w", err)
	}

	c.removeInvite(inviteID)
	return nil
}

// RefetchInvites replaces the local pending-invite list wholesale. Failures
// leave the current list untouched; the next tick tries again.
func (c *Coordinator) RefetchInvites(ctx context.Context) {
	if !c.settings.AllowTeamInvites {
		c.mu.Lock()
		c.invites = nil
		c.mu.Unlock()
		return
	}

	out, err := c.service.ListPendingInvites(ctx, &team.ListPendingInvitesInput{UserID: c.user.UID})
	if err != nil {
		return
	}

	c.mu.Lock()
	c.invites = out.Invites
	c.mu.Unlock()
}

// WakeRefresh re-syncs invite, session and acceptance state after the
// client was backgrounded or disconnected
func (c *Coordinator) WakeRefresh(ctx context.Context) {
	c.RefetchInvites(ctx)
	c.refreshSession(ctx)
	c.PollAccepted(ctx)
}

// refreshSession re-reads the current session, healing roster drift and
// catching a finish/end observed while offline
func (c *Coordinator) refreshSession(ctx context.Context) {
	c.mu.Lock()
	sessionID := ""
	if c.session != nil {
		sessionID = c.session.ID
	}
	c.mu.Unlock()

	if sessionID == "" {
		return
	}

	sess, err := c.service.GetSession(ctx, &team.GetSessionInput{SessionID: sessionID})
	if err != nil {
		if errors.Is(err, team.ErrSessionNotFound) {
			c.clearSession()
		}
		return
	}

	if sess.Status != models.SessionStatusActive {
		c.clearSession()
		return
	}

	c.mu.Lock()
	if c.session != nil && c.session.ID == sessionID {
		c.session.Participants = sess.Participants
		if name := hostNameFromRoster(sess.HostUID, sess.Participants); name != "" {
			c.session.HostName = name
		}
	}
	c.mu.Unlock()
}

// CreateJoinCode attaches a shareable admission code to the current session,
// creating one when needed. Returns a structured result; a disabled teamwork
// capability is a result, not an error.
func (c *Coordinator) CreateJoinCode(ctx context.Context, workout json.RawMessage, ttlMinutes int) CreateCodeResult {
	if !c.settings.TeamworkV2 {
		return CreateCodeResult{Error: disabledReason}
	}

	c.mu.Lock()
	sessionID := ""
	if c.session != nil {
		sessionID = c.session.ID
	}
	c.mu.Unlock()

	out, err := c.service.CreateJoinCode(ctx, &team.CreateJoinCodeInput{
		Host:        c.user,
		SessionID:   sessionID,
		WorkoutData: workout,
		TTLMinutes:  ttlMinutes,
	})
	if err != nil {
		return CreateCodeResult{Error: err.Error()}
	}

	if out.Session != nil {
		c.adoptSession(out.Session.ID, true, c.user.DisplayName, out.Session.Participants)
	}

	return CreateCodeResult{
		OK:        true,
		SessionID: out.SessionID,
		Code:      out.Code,
		ExpiresAt: out.ExpiresAt,
		URL:       fmt.Sprintf("%s?%s=%s", c.shareBaseURL, joinParam, out.Code),
	}
}

// JoinByCode asks the remote admission procedure to admit the local user.
// User-level failures come back as a structured result, never an error,
// since joins are triggered from ambient contexts like deep links.
func (c *Coordinator) JoinByCode(ctx context.Context, code string) JoinResult {
	if !c.settings.TeamworkV2 {
		return JoinResult{Error: disabledReason}
	}

	out, err := c.service.JoinByCode(ctx, &team.JoinByCodeInput{
		Code: code,
		User: c.user,
	})
	if err != nil {
		return JoinResult{Error: err.Error()}
	}

	c.adoptSession(out.SessionID, false, hostNameFromRoster(out.HostUID, out.Participants), out.Participants)

	return JoinResult{
		OK:        true,
		SessionID: out.SessionID,
		Workout:   out.WorkoutData,
	}
}

// ConsumeJoinLink processes a join code carried in a deep link at most once
// per (user, code) pair for this coordinator's lifetime. The join parameter
// is stripped from the returned URL regardless of outcome. The result is
// nil when the URL carried no code or the code was already handled.
func (c *Coordinator) ConsumeJoinLink(ctx context.Context, rawURL string) (string, *JoinResult) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, nil
	}

	q := u.Query()
	code := q.Get(joinParam)
	if code == "" {
		return rawURL, nil
	}

	q.Del(joinParam)
	u.RawQuery = q.Encode()
	cleaned := u.String()

	key := c.user.UID + ":" + strings.ToLower(code)
	c.mu.Lock()
	if _, handled := c.joinHandled[key]; handled {
		c.mu.Unlock()
		return cleaned, nil
	}
	// Marked before attempting so a failed join is not retried on the
	// next mount cycle.
	c.joinHandled[key] = struct{}{}
	c.mu.Unlock()

	res := c.JoinByCode(ctx, code)
	if res.OK && c.onStartSession != nil {
		c.onStartSession(res.Workout)
	}

	return cleaned, &res
}

// LeaveSession removes the local user from the current session. Local state
// clears even when the remote removal fails; the user is out either way.
func (c *Coordinator) LeaveSession(ctx context.Context) error {
	c.mu.Lock()
	sessionID := ""
	if c.session != nil {
		sessionID = c.session.ID
	}
	c.mu.Unlock()

	if sessionID == "" {
		return nil
	}

	err := c.service.LeaveSession(ctx, &team.LeaveSessionInput{
		SessionID: sessionID,
		UserID:    c.user.UID,
	})

	c.clearSession()

	if err != nil {
		return fmt.Errorf("failed to leave session: %w", err)
	}
	return nil
}

// SetPresenceStatus changes the status carried by subsequent heartbeats and
// writes one immediately
func (c *Coordinator) SetPresenceStatus(ctx context.Context, status models.PresenceStatus) {
	if status == "" {
		status = models.PresenceStatusOnline
	}

	c.mu.Lock()
	c.presenceStatus = status
	c.mu.Unlock()

	c.HeartbeatOnce(ctx)
}

// HeartbeatOnce writes the local user's presence record for the current
// session. A no-op outside a session or with presence tracking off.
func (c *Coordinator) HeartbeatOnce(ctx context.Context) {
	if !c.settings.TeamworkV2 {
		return
	}

	c.mu.Lock()
	sessionID := ""
	if c.session != nil {
		sessionID = c.session.ID
	}
	status := c.presenceStatus
	c.mu.Unlock()

	if sessionID == "" {
		return
	}

	_ = c.service.UpsertPresence(ctx, &team.UpsertPresenceInput{
		SessionID: sessionID,
		UserID:    c.user.UID,
		Status:    status,
	})
}

// RefreshPresence re-hydrates the presence table from the remote state,
// healing any dropped events. A no-op outside a session.
func (c *Coordinator) RefreshPresence(ctx context.Context) {
	c.mu.Lock()
	sessionID := ""
	if c.session != nil {
		sessionID = c.session.ID
	}
	c.mu.Unlock()

	if sessionID == "" || !c.settings.TeamworkV2 {
		return
	}

	c.hydratePresence(ctx, sessionID)
}

// PollAccepted fetches accepted invites for the hosted session and surfaces
// any not yet shown. A no-op when not hosting.
func (c *Coordinator) PollAccepted(ctx context.Context) {
	c.mu.Lock()
	hosting := c.session != nil && c.session.IsHost
	sessionID := ""
	if c.session != nil {
		sessionID = c.session.ID
	}
	c.mu.Unlock()

	if !hosting {
		return
	}

	out, err := c.service.ListAcceptedInvites(ctx, &team.ListAcceptedInvitesInput{
		FromUID:   c.user.UID,
		SessionID: sessionID,
	})
	if err != nil {
		return
	}

	for _, inv := range out.Invites {
		c.showAcceptedNotice(ctx, inv)
	}
}

// Notifications lists the user's notification inbox, newest first
func (c *Coordinator) Notifications(ctx context.Context) ([]*models.Notification, error) {
	out, err := c.service.ListNotifications(ctx, &team.ListNotificationsInput{UserID: c.user.UID})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return out.Notifications, nil
}

// MarkInvitesRead marks the user's invite notifications read
func (c *Coordinator) MarkInvitesRead(ctx context.Context) error {
	if err := c.service.MarkInviteNotificationsRead(ctx, &team.MarkInviteNotificationsReadInput{
		UserID: c.user.UID,
	}); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// DismissAcceptedInvite clears the displayed acceptance notice. The
// underlying seen-set is untouched, so the notice cannot reappear.
func (c *Coordinator) DismissAcceptedInvite() {
	c.mu.Lock()
	c.notice = nil
	c.mu.Unlock()
}

// Invites returns a snapshot of the pending invite list, newest first
func (c *Coordinator) Invites() []*team.IncomingInvite {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*team.IncomingInvite, len(c.invites))
	copy(out, c.invites)
	return out
}

// Session returns a snapshot of the current session state, or nil
func (c *Coordinator) Session() *SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	snap := *c.session
	snap.Participants = append([]models.Participant(nil), c.session.Participants...)
	return &snap
}

// Presence returns a snapshot of the session presence table keyed by user id
func (c *Coordinator) Presence() map[string]*models.PresenceRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]*models.PresenceRecord, len(c.presence))
	for uid, rec := range c.presence {
		out[uid] = rec
	}
	return out
}

// AcceptedNotice returns the currently displayed acceptance notice, or nil
func (c *Coordinator) AcceptedNotice() *models.AcceptedNotice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}
