package dto

import "funil.app/crm/internal/model"

type CampaignRequest struct {
	Name           *string               `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Context        *string               `json:"context,omitempty"`
	VoiceTone      *model.VoiceTone      `json:"voice_tone,omitempty"`
	AIInstructions *string               `json:"ai_instructions,omitempty"`
	Status         *model.CampaignStatus `json:"status,omitempty"`
	TriggerStage   *model.StageSlug      `json:"trigger_stage,omitempty"`
}
