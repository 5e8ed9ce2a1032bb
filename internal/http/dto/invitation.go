package dto

import (
	"time"

	"funil.app/crm/internal/model"
)

type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required,max=255"`
	Role  string `json:"role" binding:"required"`
}

type InvitationResponse struct {
	Invitation *model.Invitation `json:"invitation"`
	AcceptURL  string            `json:"accept_url,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// InvitationPreviewResponse is what an unauthenticated visitor of an invite
// link sees.
type InvitationPreviewResponse struct {
	Email         string     `json:"email"`
	Role          model.Role `json:"role"`
	ExpiresAt     time.Time  `json:"expires_at"`
	WorkspaceID   int64      `json:"workspace_id"`
	WorkspaceName string     `json:"workspace_name"`
	WorkspaceLogo *string    `json:"workspace_logo_url,omitempty"`
}

func ToInvitationPreview(inv *model.Invitation, ws *model.Workspace) InvitationPreviewResponse {
	return InvitationPreviewResponse{
		Email:         inv.Email,
		Role:          inv.Role,
		ExpiresAt:     inv.ExpiresAt,
		WorkspaceID:   ws.ID,
		WorkspaceName: ws.Name,
		WorkspaceLogo: ws.LogoURL,
	}
}

type AcceptInvitationResponse struct {
	Invitation  *model.Invitation `json:"invitation"`
	WorkspaceID int64             `json:"workspace_id"`
	Role        model.Role        `json:"role"`
}
