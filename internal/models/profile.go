package models

// Profile is the public subset of a user's account used to enrich invites
// and acceptance notices.
type Profile struct {
	// ID is the user identifier
	ID string `json:"id"`

	// DisplayName is the user's display name
	DisplayName string `json:"display_name"`

	// PhotoURL is the user's photo, empty when unset
	PhotoURL string `json:"photo_url,omitempty"`
}

// UserIdentity is the client-held identity supplied by the application
// shell. The coordinator neither authenticates it nor manages its lifecycle.
type UserIdentity struct {
	// UID is the current user's identifier
	UID string `json:"uid"`

	// DisplayName is the current user's display name
	DisplayName string `json:"display_name"`

	// PhotoURL is the current user's photo, empty when unset
	PhotoURL string `json:"photo_url,omitempty"`
}
