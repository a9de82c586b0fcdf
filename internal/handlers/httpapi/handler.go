package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/fitforge/teamsync/internal/coordinator"
	"github.com/fitforge/teamsync/internal/models"
	"github.com/fitforge/teamsync/internal/realtime"
	"github.com/fitforge/teamsync/internal/services/team"
)

// Identity headers supplied by the application shell. This subsystem does
// not authenticate; it trusts the shell's reverse proxy.
const (
	headerUserID    = "X-User-ID"
	headerUserName  = "X-User-Name"
	headerUserPhoto = "X-User-Photo"
)

// Config holds the configuration for the HTTP handler
type Config struct {
	// Coordinator manager
	Manager *Manager

	// Event feed backing the websocket stream
	Feed realtime.Feed
}

// Handler exposes the team coordination operations over HTTP
type Handler struct {
	manager  *Manager
	feed     realtime.Feed
	upgrader websocket.Upgrader
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Manager == nil {
		return nil, errors.New("manager cannot be nil")
	}

	if cfg.Feed == nil {
		return nil, errors.New("event feed cannot be nil")
	}

	return &Handler{
		manager: cfg.Manager,
		feed:    cfg.Feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The shell fronts this service; origin policy lives there.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}, nil
}

// Routes builds the chi router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/invites", func(r chi.Router) {
		r.Post("/", h.sendInvite)
		r.Get("/", h.listInvites)
		r.Post("/{inviteID}/accept", h.acceptInvite)
		r.Post("/{inviteID}/reject", h.rejectInvite)
	})

	r.Route("/session", func(r chi.Router) {
		r.Get("/", h.getSession)
		r.Post("/code", h.createJoinCode)
		r.Post("/join", h.joinByCode)
		r.Post("/leave", h.leaveSession)
		r.Get("/presence", h.listPresence)
		r.Put("/presence", h.setPresence)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.listNotifications)
		r.Post("/read", h.markNotificationsRead)
	})

	r.Get("/events", h.streamEvents)

	return r
}

// coordinatorFor resolves the request identity to its coordinator. A
// missing user id writes the error response itself and returns nil.
func (h *Handler) coordinatorFor(w http.ResponseWriter, r *http.Request) *coordinator.Coordinator {
	user := models.UserIdentity{
		UID:         r.Header.Get(headerUserID),
		DisplayName: r.Header.Get(headerUserName),
		PhotoURL:    r.Header.Get(headerUserPhoto),
	}
	if user.UID == "" {
		respondError(w, http.StatusUnauthorized, "missing "+headerUserID+" header")
		return nil
	}

	c, err := h.manager.Coordinator(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return nil
	}
	return c
}

type sendInviteRequest struct {
	ToUID   string          `json:"to_uid"`
	Workout json.RawMessage `json:"workout,omitempty"`
}

type sendInviteResponse struct {
	SessionID string `json:"session_id"`
}

func (h *Handler) sendInvite(w http.ResponseWriter, r *http.Request) {
	c := h.coordinatorFor(w, r)
	if c == nil {
		return
	}

	var req sendInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID, err := c.SendInvite(r.Context(), req.ToUID, req.Workout)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, sendInviteResponse{SessionID: sessionID})
}

type inviteView struct {
	ID        string          `json:"id"`
	FromUID   string          `json:"from_uid"`
	FromName  string          `json:"from_name"`
	FromPhoto string          `json:"from_photo,omitempty"`
	SessionID string          `json:"session_id"`
	Workout   json.RawMessage `json:"workout,omitempty"`
}

type listInvitesResponse struct {
	Invites []inviteView `json:"invites"`
}

func (h *Handler) listInvites(w http.ResponseWriter, r *http.Request) {
	c := h.coordinatorFor(w, r)
	if c == nil {
		return
	}

	// A GET is the wake/refresh path; re-sync before answering.
	c.RefetchInvites(r.Context())

	invites := c.Invites()
	views := make([]inviteView, 0, len(invites))
	for _, inv := range invites {
		views = append(views, inviteView{
			ID:        inv.Invite.ID,
			FromUID:   inv.Invite.FromUID,
			FromName:  inv.FromName,
			FromPhoto: inv.FromPhoto,
			SessionID: inv.Invite.TeamSessionID,
			Workout:   inv.Invite.WorkoutData,
		})
	}

	respondJSON(w, http.StatusOK, listInvitesResponse{Invites: views})
}

type acceptInviteResponse struct {
	SessionID string          `json:"session_id"`
	Workout   json.RawMessage `json:"workout,omitempty"`
}

func (h *Handler) acceptInvite(w http.ResponseWriter, r *http.Request) {
	c := h.coordinatorFor(w, r)
	if c == nil {
		return
	}

	inviteID := chi.URLParam(r, "inviteID")

	var target *team.IncomingInvite
	for _, inv := range c.Invites() {
		if inv.Invite.ID == inviteID {
			target = inv
			break
		}
	}
	if target == nil {
		respondError(w, http.StatusNotFound, "invite not held")
		return
	}

	var workout json.RawMessage
	err := c.AcceptInvite(r.Context(), target, func(payload json.RawMessage) {
		workout = payload
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	sessionID := ""
	if state := c.Session(); state != nil {
		sessionID = state.ID
	}

	respondJSON(w, http.StatusOK, acceptInviteResponse{SessionID: sessionID, Workout: workout})
}

func (h *Handler) rejectInvite(w http.ResponseWriter, r *http.Request) {
	c := h.coordinatorFor(w, r)
	if c == nil {
		return
	}

	if err := c.RejectInvite(r.Context(), chi.URLParam(r, "inviteID")); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	c := h.coordinatorFor(w, r)
	if c == nil {
		return
	}

	state := c.Session()
	if state == nil {
		respondError(w, http.StatusNotFound, "no active team session")
		return
	}

	respondJSON(w, http.StatusOK, state)
}

type createJoinCodeRequest struct {
	Workout    json.RawMessage `json:"workout,omitempty"`
	TTLMinutes int             `json:"ttl_minutes,omitempty"`
}

func (h *Handler) createJoinCode(w http.ResponseWriter, r *http.Request) {
	c := h.coordinatorFor(w, r)
	if c == nil {
		return
	}

	var req createJoinCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Failure is carried inside the result; the request itself succeeded.
	respondJSON(w, http.StatusOK, c.CreateJoinCode(r.Context(), req.Workout, req.TTLMinutes))
}

type joinByCodeRequest struct {
	Code string `json:"code"`
}

func (h *Handler) joinByCode(w http.ResponseWriter, r *http.Request) {
	c := h.coordinatorFor(w, r)
	if c == nil {
		return
	}

	var req joinByCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	respondJSON(w, http.StatusOK, c.JoinByCode(r.Context(), req.Code))
}

func (h *Handler) leaveSession(w http.ResponseWriter, r *http.Request) {
	c := h.coordinatorFor(w, r)
	if c == nil {
		return
	}

	if err := c.LeaveSession(r.Context()); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listPresence(w http.ResponseWriter, r *http.Request) {
	c := h.coordinatorFor(w, r)
	if c == nil {
		return
	}

	// Re-sync so a dropped event never shows a stale table.
	c.RefreshPresence(r.Context())

	respondJSON(w, http.StatusOK, c.Presence())
}

type setPresenceRequest struct {
	Status models.PresenceStatus `json:"status"`
}

func (h *Handler) setPresence(w http.ResponseWriter, r *http.Request) {
	c := h.coordinatorFor(w, r)
	if c == nil {
		return
	}

	var req setPresenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c.SetPresenceStatus(r.Context(), req.Status)
	w.WriteHeader(http.StatusNoContent)
}

type listNotificationsResponse struct {
	Notifications []*models.Notification `json:"notifications"`
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	c := h.coordinatorFor(w, r)
	if c == nil {
		return
	}

	notifications, err := c.Notifications(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listNotificationsResponse{Notifications: notifications})
}

func (h *Handler) markNotificationsRead(w http.ResponseWriter, r *http.Request) {
	c := h.coordinatorFor(w, r)
	if c == nil {
		return
	}

	if err := c.MarkInvitesRead(r.Context()); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// streamEvents upgrades to a websocket and forwards the user's row-change
// events until either side disconnects
func (h *Handler) streamEvents(w http.ResponseWriter, r *http.Request) {
	uid := r.Header.Get(headerUserID)
	if uid == "" {
		respondError(w, http.StatusUnauthorized, "missing "+headerUserID+" header")
		return
	}

	ctx := r.Context()
	events, err := h.feed.Subscribe(ctx,
		realtime.InviteInboxChannel(uid),
		realtime.InviteOutboxChannel(uid),
		realtime.NotificationChannel(uid),
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to subscribe")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Drain reads so close frames and pings are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondServiceError maps service errors to HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, team.ErrInviteNotFound), errors.Is(err, team.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, team.ErrInviteResolved), errors.Is(err, team.ErrSessionClosed):
		status = http.StatusConflict
	case errors.Is(err, team.ErrInvalidUser), errors.Is(err, team.ErrInvalidInvite), errors.Is(err, team.ErrInvalidCode):
		status = http.StatusBadRequest
	case errors.Is(err, team.ErrNotHost):
		status = http.StatusForbidden
	}
	respondError(w, status, err.Error())
}
