package model

import "time"

// Workspace is the tenant boundary. OwnerID is the only source of the owner
// role.
type Workspace struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkspaceMember is a non-owner membership row. Role is admin or member.
type WorkspaceMember struct {
	WorkspaceID   int64     `json:"workspace_id"`
	UserID        int64     `json:"user_id"`
	Role          Role      `json:"role"`
	UserName      string    `json:"user_name,omitempty"`
	UserEmail     string    `json:"user_email,omitempty"`
	UserAvatarURL *string   `json:"user_avatar_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
