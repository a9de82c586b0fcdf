package team

// TeamError is a custom error type for team coordination errors
type TeamError string

// Error implements the error interface
func (e TeamError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidUser       TeamError = "invalid user"
	ErrInvalidInvite     TeamError = "invalid invite"
	ErrInvalidCode       TeamError = "invalid join code"
	ErrInviteNotFound    TeamError = "invite not found"
	ErrInviteResolved    TeamError = "invite already resolved"
	ErrSessionNotFound   TeamError = "session not found"
	ErrSessionClosed     TeamError = "session is no longer active"
	ErrCodeExpired       TeamError = "join code expired"
	ErrNotHost           TeamError = "only the host can end a session"
	ErrNilConfig         TeamError = "config cannot be nil"
	ErrNilInviteRepo     TeamError = "invite repository cannot be nil"
	ErrNilSessionRepo    TeamError = "session repository cannot be nil"
	ErrNilPresenceRepo   TeamError = "presence repository cannot be nil"
	ErrNilProfileRepo    TeamError = "profile repository cannot be nil"
	ErrNilNotifRepo      TeamError = "notification repository cannot be nil"
	ErrNilClock          TeamError = "clock cannot be nil"
	ErrNilIDGenerator    TeamError = "ID generator cannot be nil"
)
