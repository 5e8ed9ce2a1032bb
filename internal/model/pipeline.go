package model

import "time"

type StageSlug string

const (
	StageBase             StageSlug = "base"
	StageLeadMapeado      StageSlug = "lead_mapeado"
	StageTentativaContato StageSlug = "tentativa_contato"
	StageConexaoIniciada  StageSlug = "conexao_iniciada"
	StageQualificado      StageSlug = "qualificado"
	StageReuniaoAgendada  StageSlug = "reuniao_agendada"
	StageDesqualificado   StageSlug = "desqualificado"
)

// StageConfig lists the field ids a lead needs before entering Stage.
type StageConfig struct {
	WorkspaceID    int64     `json:"workspace_id"`
	Stage          StageSlug `json:"stage"`
	RequiredFields []string  `json:"required_fields"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PipelineConfig struct {
	WorkspaceID int64         `json:"workspace_id"`
	Stages      []StageConfig `json:"stages"`
}

// RequiredFor returns the required field ids for stage, nil when unconfigured.
func (c *PipelineConfig) RequiredFor(stage StageSlug) []string {
	if c == nil {
		return nil
	}
	for _, s := range c.Stages {
		if s.Stage == stage {
			return s.RequiredFields
		}
	}
	return nil
}
