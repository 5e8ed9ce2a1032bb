// Package pipeline holds the sales pipeline rules: the stage catalog, the
// required-field validator for stage transitions and the bulk promotion
// heuristic. Everything here is pure and storage-free.
package pipeline

import "funil.app/crm/internal/model"

type Stage struct {
	Slug         model.StageSlug `json:"slug"`
	Name         string          `json:"name"`
	Order        int             `json:"order"`
	Hidden       bool            `json:"hidden"`
	Configurable bool            `json:"configurable"`
}

// Stages is ordered left to right as shown on the board. Order is a
// suggestion only; any stage may be set from any other.
var Stages = []Stage{
	{Slug: model.StageBase, Name: "Base", Order: 0, Hidden: true},
	{Slug: model.StageLeadMapeado, Name: "Lead Mapeado", Order: 1, Configurable: true},
	{Slug: model.StageTentativaContato, Name: "Tentativa de Contato", Order: 2, Configurable: true},
	{Slug: model.StageConexaoIniciada, Name: "Conexão Iniciada", Order: 3, Configurable: true},
	{Slug: model.StageQualificado, Name: "Qualificado", Order: 4, Configurable: true},
	{Slug: model.StageReuniaoAgendada, Name: "Reunião Agendada", Order: 5, Configurable: true},
	{Slug: model.StageDesqualificado, Name: "Desqualificado", Order: 6},
}

// PromotionTarget is where bulk promotion moves eligible base leads.
const PromotionTarget = model.StageLeadMapeado

func Lookup(slug model.StageSlug) (Stage, bool) {
	for _, s := range Stages {
		if s.Slug == slug {
			return s, true
		}
	}
	return Stage{}, false
}

func IsKnown(slug model.StageSlug) bool {
	_, ok := Lookup(slug)
	return ok
}

// IsConfigurable is false for the intake and terminal stages; they never
// carry required fields.
func IsConfigurable(slug model.StageSlug) bool {
	s, ok := Lookup(slug)
	return ok && s.Configurable
}

func ConfigurableStages() []Stage {
	out := make([]Stage, 0, len(Stages))
	for _, s := range Stages {
		if s.Configurable {
			out = append(out, s)
		}
	}
	return out
}

// Normalize returns one StageConfig per configurable stage in board order,
// filling stages without a stored row with an empty requirement list.
func Normalize(workspaceID int64, stored []model.StageConfig) model.PipelineConfig {
	byStage := make(map[model.StageSlug]model.StageConfig, len(stored))
	for _, sc := range stored {
		byStage[sc.Stage] = sc
	}

	cfg := model.PipelineConfig{WorkspaceID: workspaceID}
	for _, s := range ConfigurableStages() {
		sc, ok := byStage[s.Slug]
		if !ok {
			sc = model.StageConfig{WorkspaceID: workspaceID, Stage: s.Slug}
		}
		if sc.RequiredFields == nil {
			sc.RequiredFields = []string{}
		}
		cfg.Stages = append(cfg.Stages, sc)
	}
	return cfg
}
