package model

import (
	"encoding/json"
	"time"
)

type WorkspaceEventType string

const (
	WorkspaceEventTypeCreated              WorkspaceEventType = "workspace_created"
	WorkspaceEventTypeUpdated              WorkspaceEventType = "workspace_updated"
	WorkspaceEventTypeMemberInvited        WorkspaceEventType = "member_invited"
	WorkspaceEventTypeInviteAccepted       WorkspaceEventType = "invite_accepted"
	WorkspaceEventTypeInviteRejected       WorkspaceEventType = "invite_rejected"
	WorkspaceEventTypeInviteCancelled      WorkspaceEventType = "invite_cancelled"
	WorkspaceEventTypeMemberRoleChanged    WorkspaceEventType = "member_role_changed"
	WorkspaceEventTypeMemberRemoved        WorkspaceEventType = "member_removed"
	WorkspaceEventTypeMemberLeft           WorkspaceEventType = "member_left"
	WorkspaceEventTypeOwnershipTransferred WorkspaceEventType = "ownership_transferred"
	WorkspaceEventTypePipelineUpdated      WorkspaceEventType = "pipeline_updated"
	WorkspaceEventTypeLeadStageChanged     WorkspaceEventType = "lead_stage_changed"
	WorkspaceEventTypeLeadsPromoted        WorkspaceEventType = "leads_promoted"
)

type WorkspaceEventLog struct {
	CreatedAt   time.Time          `json:"created_at"`
	Metadata    json.RawMessage    `json:"metadata,omitempty"`
	EventType   WorkspaceEventType `json:"event_type"`
	ID          int64              `json:"id"`
	WorkspaceID int64              `json:"workspace_id"`
	ActorID     *int64             `json:"actor_id,omitempty"`
}
