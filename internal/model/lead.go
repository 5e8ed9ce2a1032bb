package model

import "time"

type Lead struct {
	ID             int64          `json:"id"`
	WorkspaceID    int64          `json:"workspace_id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Position       string         `json:"position"`
	Company        string         `json:"company"`
	Segment        *string        `json:"segment,omitempty"`
	Revenue        *string        `json:"revenue,omitempty"`
	LinkedIn       *string        `json:"linkedin,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
	Stage          StageSlug      `json:"stage"`
	CampaignID     *int64         `json:"campaign_id,omitempty"`
	ResponsibleIDs []int64        `json:"responsible_ids"`
	CustomValues   map[string]any `json:"custom_values"` // keyed by custom field id
	ArchivedAt     *time.Time     `json:"archived_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (l *Lead) IsArchived() bool {
	return l.ArchivedAt != nil
}
