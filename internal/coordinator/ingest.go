package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fitforge/teamsync/internal/models"
	"github.com/fitforge/teamsync/internal/realtime"
	"github.com/fitforge/teamsync/internal/services/team"
)

// handleUserEvent ingests events from the user-scoped feeds: the invite
// inbox and the notification stream.
func (c *Coordinator) handleUserEvent(ctx context.Context, ev realtime.Event) {
	switch ev.Table {
	case "notifications":
		// A notification insert is the fallback delivery signal for a
		// new invite; both channels land on the same refetch.
		if ev.Type == realtime.EventInsert {
			c.RefetchInvites(ctx)
		}
	case "invites":
		var inv models.Invite
		if err := json.Unmarshal(ev.Row, &inv); err != nil {
			return
		}
		switch {
		case ev.Type == realtime.EventInsert && inv.Status == models.InviteStatusPending:
			c.addIncomingInvite(ctx, &inv)
		case ev.Type == realtime.EventUpdate && inv.Status != models.InviteStatusPending:
			c.removeInvite(inv.ID)
		}
	}
}

// addIncomingInvite enriches a freshly delivered invite with the sender's
// profile and prepends it to the local list, de-duplicated by id
func (c *Coordinator) addIncomingInvite(ctx context.Context, inv *models.Invite) {
	if !c.settings.AllowTeamInvites {
		return
	}

	entry := &team.IncomingInvite{Invite: inv, FromName: fallbackName}
	if p, err := c.service.GetProfile(ctx, &team.GetProfileInput{UserID: inv.FromUID}); err == nil {
		if p.DisplayName != "" {
			entry.FromName = p.DisplayName
		}
		entry.FromPhoto = p.PhotoURL
	}

	c.mu.Lock()
	for _, existing := range c.invites {
		if existing.Invite.ID == inv.ID {
			c.mu.Unlock()
			return
		}
	}
	c.invites = append([]*team.IncomingInvite{entry}, c.invites...)
	c.mu.Unlock()

	c.notifyUser("Workout invite", fmt.Sprintf("%s invited you to train together.", entry.FromName))
	c.playCue("invite")
}

// removeInvite drops an invite from the local list by id
func (c *Coordinator) removeInvite(inviteID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, inv := range c.invites {
		if inv.Invite.ID == inviteID {
			c.invites = append(c.invites[:i], c.invites[i+1:]...)
			return
		}
	}
}

// adoptSession replaces the local session state and restarts the
// session-scoped feed watcher. Any previous session's watcher is canceled
// first.
func (c *Coordinator) adoptSession(sessionID string, isHost bool, hostName string, participants []models.Participant) {
	c.mu.Lock()
	if c.sessionCancel != nil {
		c.sessionCancel()
	}

	c.session = &SessionState{
		ID:           sessionID,
		IsHost:       isHost,
		HostName:     hostName,
		Participants: participants,
	}
	c.presence = make(map[string]*models.PresenceRecord)

	sessCtx, cancel := context.WithCancel(c.runCtx)
	c.sessionCancel = cancel
	c.mu.Unlock()

	go c.watchSession(sessCtx, sessionID, isHost)
}

// clearSession tears down the session watcher and drops all session-local
// state, the acceptance notice included
func (c *Coordinator) clearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionCancel != nil {
		c.sessionCancel()
		c.sessionCancel = nil
	}
	c.session = nil
	c.presence = make(map[string]*models.PresenceRecord)
	c.notice = nil
}

// watchSession ingests the session-scoped feeds and drives the presence
// heartbeat until the session context is canceled. Hosts additionally watch
// their invite outbox for acceptances.
func (c *Coordinator) watchSession(ctx context.Context, sessionID string, isHost bool) {
	channels := []string{realtime.SessionChannel(sessionID)}
	if c.settings.TeamworkV2 {
		channels = append(channels, realtime.PresenceChannel(sessionID))
	}
	if isHost {
		channels = append(channels, realtime.InviteOutboxChannel(c.user.UID))
	}

	events, err := c.feed.Subscribe(ctx, channels...)
	if err != nil {
		// Degrade to poll-only; a nil channel never fires in the select.
		events = nil
	}

	if c.settings.TeamworkV2 {
		c.hydratePresence(ctx, sessionID)
		c.HeartbeatOnce(ctx)
	}

	heartbeat := time.NewTicker(c.heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.handleSessionEvent(ctx, sessionID, ev)
		case <-heartbeat.C:
			c.HeartbeatOnce(ctx)
		}
	}
}

// handleSessionEvent ingests events from the session-scoped feeds
func (c *Coordinator) handleSessionEvent(ctx context.Context, sessionID string, ev realtime.Event) {
	switch ev.Table {
	case "team_sessions":
		var sess models.TeamSession
		if err := json.Unmarshal(ev.Row, &sess); err != nil || sess.ID != sessionID {
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

	case "team_session_presence":
		if !c.settings.TeamworkV2 {
			return
		}
		var rec models.PresenceRecord
		if err := json.Unmarshal(ev.Row, &rec); err != nil || rec.SessionID != sessionID {
			return
		}
		c.mu.Lock()
		if c.session != nil && c.session.ID == sessionID {
			if ev.Type == realtime.EventDelete {
				delete(c.presence, rec.UserID)
			} else {
				c.presence[rec.UserID] = &rec
			}
		}
		c.mu.Unlock()

	case "invites":
		var inv models.Invite
		if err := json.Unmarshal(ev.Row, &inv); err != nil {
			return
		}
		if ev.Type != realtime.EventUpdate || inv.Status != models.InviteStatusAccepted {
			return
		}
		if inv.FromUID != c.user.UID || inv.TeamSessionID != sessionID {
			return
		}
		c.showAcceptedNotice(ctx, &inv)
	}
}

// hydratePresence replaces the presence table with the remote state
func (c *Coordinator) hydratePresence(ctx context.Context, sessionID string) {
	out, err := c.service.ListPresence(ctx, &team.ListPresenceInput{SessionID: sessionID})
	if err != nil {
		return
	}

	fresh := make(map[string]*models.PresenceRecord, len(out.Records))
	for _, rec := range out.Records {
		fresh[rec.UserID] = rec
	}

	c.mu.Lock()
	if c.session != nil && c.session.ID == sessionID {
		c.presence = fresh
	}
	c.mu.Unlock()
}

// showAcceptedNotice surfaces an acceptance exactly once per invite id. The
// realtime path and the poll path both land here; whichever arrives first
// marks the invite seen and the other becomes a no-op.
func (c *Coordinator) showAcceptedNotice(ctx context.Context, inv *models.Invite) {
	c.mu.Lock()
	if _, seen := c.seenAccepted[inv.ID]; seen {
		c.mu.Unlock()
		return
	}
	c.seenAccepted[inv.ID] = struct{}{}
	c.mu.Unlock()

	notice := &models.AcceptedNotice{
		InviteID:      inv.ID,
		FromName:      fallbackName,
		FromUID:       inv.ToUID,
		TeamSessionID: inv.TeamSessionID,
	}
	if p, err := c.service.GetProfile(ctx, &team.GetProfileInput{UserID: inv.ToUID}); err == nil {
		if p.DisplayName != "" {
			notice.FromName = p.DisplayName
		}
		notice.FromPhoto = p.PhotoURL
	}

	c.mu.Lock()
	c.notice = notice
	c.mu.Unlock()

	c.notifyUser("Invite accepted", fmt.Sprintf("%s joined your workout.", notice.FromName))
	c.playCue("accepted")
}

// notifyUser invokes the notification hook when configured
func (c *Coordinator) notifyUser(title, body string) {
	if c.notify != nil {
		c.notify(title, body)
	}
}

// playCue invokes the sound hook when configured and enabled
func (c *Coordinator) playCue(name string) {
	if c.playSound != nil && c.settings.EnableSounds {
		c.playSound(name)
	}
}

// hostNameFromRoster resolves the host's display name from a roster
func hostNameFromRoster(hostUID string, roster []models.Participant) string {
	for _, p := range roster {
		if p.UID == hostUID {
			return p.Name
		}
	}
	return ""
}
