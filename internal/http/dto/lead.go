package dto

import "funil.app/crm/internal/model"

// LeadRequest serves both create and partial update. Absent fields are left
// untouched; a null custom value clears it.
type LeadRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Position *string `json:"position,omitempty"`
	Company  *string `json:"company,omitempty"`
	Segment  *string `json:"segment,omitempty"`
	Revenue  *string `json:"revenue,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Notes    *string `json:"notes,omitempty"`

	Stage          *model.StageSlug `json:"stage,omitempty"`
	CampaignID     *int64           `json:"campaign_id,omitempty"`
	ClearCampaign  bool             `json:"clear_campaign,omitempty"`
	ResponsibleIDs []int64          `json:"responsible_ids,omitempty"`
	CustomValues   map[string]any   `json:"custom_values,omitempty"`
}

type ChangeStageRequest struct {
	Stage model.StageSlug `json:"stage" binding:"required"`
}

type LeadListResponse struct {
	Leads []model.Lead `json:"leads"`
}
