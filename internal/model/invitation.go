package model

import "time"

type InvitationStatus string

const (
	InvitationStatusPending   InvitationStatus = "pending"
	InvitationStatusAccepted  InvitationStatus = "accepted"
	InvitationStatusExpired   InvitationStatus = "expired"
	InvitationStatusCancelled InvitationStatus = "cancelled"
)

type Invitation struct {
	ID          int64            `json:"id"`
	WorkspaceID int64            `json:"workspace_id"`
	Email       string           `json:"email"`
	Role        Role             `json:"role"`
	InvitedBy   int64            `json:"invited_by"`
	Token       string           `json:"-"`
	Status      InvitationStatus `json:"status"`
	ExpiresAt   time.Time        `json:"expires_at"`
	CreatedAt   time.Time        `json:"created_at"`
	AcceptedAt  *time.Time       `json:"accepted_at,omitempty"`
	AcceptedBy  *int64           `json:"accepted_by,omitempty"`
}

// IsExpiredAt is computed from ExpiresAt alone; the stored status may still
// read pending.
func (i *Invitation) IsExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

func (i *Invitation) IsValidAt(now time.Time) bool {
	return i.Status == InvitationStatusPending && !i.IsExpiredAt(now)
}
