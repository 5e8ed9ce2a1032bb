package model

import "time"

type VoiceTone string

const (
	VoiceToneFormal   VoiceTone = "formal"
	VoiceToneInformal VoiceTone = "informal"
	VoiceToneNeutral  VoiceTone = "neutral"
)

func (t VoiceTone) Valid() bool {
	return t == VoiceToneFormal || t == VoiceToneInformal || t == VoiceToneNeutral
}

type CampaignStatus string

const (
	CampaignStatusActive   CampaignStatus = "active"
	CampaignStatusPaused   CampaignStatus = "paused"
	CampaignStatusFinished CampaignStatus = "finished"
)

func (s CampaignStatus) Valid() bool {
	return s == CampaignStatusActive || s == CampaignStatusPaused || s == CampaignStatusFinished
}

type Campaign struct {
	ID             int64          `json:"id"`
	WorkspaceID    int64          `json:"workspace_id"`
	Name           string         `json:"name"`
	Context        string         `json:"context"`
	VoiceTone      VoiceTone      `json:"voice_tone"`
	AIInstructions string         `json:"ai_instructions"`
	Status         CampaignStatus `json:"status"`
	TriggerStage   *StageSlug     `json:"trigger_stage,omitempty"`
	CreatedBy      int64          `json:"created_by"`
	LeadCount      int64          `json:"lead_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Triggers reports whether a lead entering stage should get messages
// generated automatically for this campaign.
func (c *Campaign) Triggers(stage StageSlug) bool {
	return c.Status == CampaignStatusActive && c.TriggerStage != nil && *c.TriggerStage == stage
}
