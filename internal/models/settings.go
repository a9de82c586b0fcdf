package models

// Settings are the externally supplied per-user preferences that gate
// coordinator behavior. The application shell owns these; the coordinator
// only reads them.
type Settings struct {
	// AllowTeamInvites controls whether incoming invites are surfaced.
	// Turning it off empties the pending list; it never gates accepting
	// an invite already held.
	AllowTeamInvites bool `json:"allow_team_invites"`

	// TeamworkV2 gates join-code creation/consumption and presence
	// tracking. The legacy invite-accept path is never gated by it.
	TeamworkV2 bool `json:"teamwork_v2"`

	// EnableSounds controls the feedback-sound hook
	EnableSounds bool `json:"enable_sounds"`
}

// DefaultSettings returns the settings applied when the shell supplies none.
func DefaultSettings() Settings {
	return Settings{
		AllowTeamInvites: true,
		TeamworkV2:       false,
		EnableSounds:     true,
	}
}
