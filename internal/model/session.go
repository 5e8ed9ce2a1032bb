package model

import "time"

// Session carries the caller's current workspace explicitly; there is no
// per-user mutable pointer.
type Session struct {
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `json:"expires_at"`
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	WorkOSSessionID *string   `json:"workos_session_id,omitempty"`
	WorkspaceID     *int64    `json:"workspace_id,omitempty"`
}
