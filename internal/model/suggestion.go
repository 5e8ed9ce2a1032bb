package model

import "time"

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

func (c Channel) Valid() bool {
	return c == ChannelWhatsApp || c == ChannelEmail
}

type Suggestion struct {
	ID      string  `json:"id"`
	Type    Channel `json:"type"`
	Message string  `json:"message"`
}

// SuggestionBatch holds at most one generation per (lead, campaign).
type SuggestionBatch struct {
	LeadID      int64        `json:"lead_id"`
	CampaignID  int64        `json:"campaign_id"`
	WorkspaceID int64        `json:"workspace_id"`
	Suggestions []Suggestion `json:"suggestions"`
	GeneratedAt time.Time    `json:"generated_at"`
	ViewedAt    *time.Time   `json:"viewed_at,omitempty"`
}
