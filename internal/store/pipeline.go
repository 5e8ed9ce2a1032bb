package store

import (
	"context"

	"funil.app/crm/core/db/sqlc"
	"funil.app/crm/internal/model"
)

type pipelineStore struct {
	queries *sqlc.Queries
}

func newPipelineStore(queries *sqlc.Queries) PipelineStore {
	return &pipelineStore{queries: queries}
}

func (s *pipelineStore) Ensure(ctx context.Context, workspaceID int64) error {
	return s.queries.EnsurePipelineConfig(ctx, workspaceID)
}

func (s *pipelineStore) ListStages(ctx context.Context, workspaceID int64) ([]model.StageConfig, error) {
	rows, err := s.queries.ListStageConfigs(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	result := make([]model.StageConfig, len(rows))
	for i, row := range rows {
		result[i] = *toStageConfigModel(row)
	}
	return result, nil
}

func (s *pipelineStore) UpsertStage(ctx context.Context, workspaceID int64, stage model.StageSlug, requiredFields []string) (*model.StageConfig, error) {
	if requiredFields == nil {
		requiredFields = []string{}
	}
	row, err := s.queries.UpsertStageConfig(ctx, sqlc.UpsertStageConfigParams{
		WorkspaceID:    workspaceID,
		Stage:          string(stage),
		RequiredFields: requiredFields,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toStageConfigModel(row), nil
}

func (s *pipelineStore) DeleteStagesExcept(ctx context.Context, workspaceID int64, keep []model.StageSlug) error {
	slugs := make([]string, len(keep))
	for i, k := range keep {
		slugs[i] = string(k)
	}
	return s.queries.DeleteStageConfigsExcept(ctx, sqlc.DeleteStageConfigsExceptParams{
		WorkspaceID: workspaceID,
		Keep:        slugs,
	})
}

func (s *pipelineStore) Touch(ctx context.Context, workspaceID int64) error {
	return s.queries.TouchPipelineConfig(ctx, workspaceID)
}

func toStageConfigModel(row sqlc.StageConfig) *model.StageConfig {
	return &model.StageConfig{
		WorkspaceID:    row.WorkspaceID,
		Stage:          model.StageSlug(row.Stage),
		RequiredFields: row.RequiredFields,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
