package dto

import "funil.app/crm/internal/model"

type StageConfigRequest struct {
	Stage          model.StageSlug `json:"stage" binding:"required"`
	RequiredFields []string        `json:"required_fields"`
}

type ReplacePipelineRequest struct {
	Stages []StageConfigRequest `json:"stages"`
}

func (r ReplacePipelineRequest) ToStageConfigs() []model.StageConfig {
	out := make([]model.StageConfig, 0, len(r.Stages))
	for _, s := range r.Stages {
		out = append(out, model.StageConfig{Stage: s.Stage, RequiredFields: s.RequiredFields})
	}
	return out
}

type CustomFieldRequest struct {
	Name     *string          `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Type     *model.FieldType `json:"type,omitempty"`
	Required *bool            `json:"required,omitempty"`
	Options  []string         `json:"options,omitempty"`
	Position *int32           `json:"position,omitempty"`
}
