package dto

import (
	"time"

	"funil.app/crm/internal/model"
)

type AuthURLResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
}

type ExchangeRequest struct {
	Code        string  `json:"code" binding:"required"`
	InviteToken *string `json:"invite_token,omitempty"`
}

type ExchangeResponse struct {
	User        *model.User `json:"user"`
	SessionID   string      `json:"session_id"`
	ExpiresAt   time.Time   `json:"expires_at"`
	WorkspaceID *int64      `json:"workspace_id,omitempty"`
}

type SessionResponse struct {
	User        *model.User `json:"user"`
	WorkspaceID *int64      `json:"workspace_id,omitempty"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

type SelectWorkspaceRequest struct {
	WorkspaceID int64 `json:"workspace_id" binding:"required"`
}
