package dto

import "funil.app/crm/internal/model"

type GenerateSuggestionsRequest struct {
	CampaignID int64           `json:"campaign_id" binding:"required"`
	Channels   []model.Channel `json:"channels,omitempty"`
	Variations int             `json:"variations,omitempty" binding:"omitempty,min=1,max=5"`
}
