package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"funil.app/crm/internal/model"
	"funil.app/crm/internal/pipeline"
	"funil.app/crm/internal/store"
)

type PipelineService interface {
	// GetConfig lazily creates the workspace's pipeline row and returns one
	// entry per configurable stage.
	GetConfig(ctx context.Context, workspaceID, userID int64) (*model.PipelineConfig, error)
	// ReplaceConfig makes stages the complete configuration: supplied stages
	// are upserted, configured stages not supplied are deleted.
	ReplaceConfig(ctx context.Context, workspaceID, actorID int64, stages []model.StageConfig) (*model.PipelineConfig, error)
	// Fields lists the field ids a stage may require.
	Fields(ctx context.Context, workspaceID, userID int64) ([]pipeline.Field, error)
}

type pipelineService struct {
	authz        Authorizer
	pipelines    store.PipelineStore
	customFields store.CustomFieldStore
	txRunner     TxRunner
}

func NewPipelineService(authz Authorizer, pipelines store.PipelineStore, customFields store.CustomFieldStore, txRunner TxRunner) PipelineService {
	return &pipelineService{
		authz:        authz,
		pipelines:    pipelines,
		customFields: customFields,
		txRunner:     txRunner,
	}
}

// loadPipelineConfig is the get-or-create read shared by every caller that
// validates stage changes. Ensure is an ON CONFLICT DO NOTHING insert, so
// concurrent first reads neither fail nor duplicate.
func loadPipelineConfig(ctx context.Context, pipelines store.PipelineStore, workspaceID int64) (*model.PipelineConfig, error) {
	if err := pipelines.Ensure(ctx, workspaceID); err != nil {
		return nil, storeErr("ensuring pipeline config", err)
	}
	stored, err := pipelines.ListStages(ctx, workspaceID)
	if err != nil {
		return nil, storeErr("listing stage configs", err)
	}
	cfg := pipeline.Normalize(workspaceID, stored)
	return &cfg, nil
}

func (s *pipelineService) GetConfig(ctx context.Context, workspaceID, userID int64) (*model.PipelineConfig, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	return loadPipelineConfig(ctx, s.pipelines, workspaceID)
}

func (s *pipelineService) Fields(ctx context.Context, workspaceID, userID int64) ([]pipeline.Field, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	custom, err := s.customFields.List(ctx, workspaceID)
	if err != nil {
		return nil, storeErr("listing custom fields", err)
	}
	return pipeline.AvailableFields(custom), nil
}

func (s *pipelineService) ReplaceConfig(ctx context.Context, workspaceID, actorID int64, stages []model.StageConfig) (*model.PipelineConfig, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, actorID, model.Role.CanEditWorkspace); err != nil {
		return nil, err
	}

	seen := make(map[model.StageSlug]bool, len(stages))
	var fieldIDs []string
	for i := range stages {
		st := &stages[i]
		if !pipeline.IsConfigurable(st.Stage) {
			return nil, fmt.Errorf("%w: %q is not configurable", ErrInvalidStage, st.Stage)
		}
		if seen[st.Stage] {
			return nil, fmt.Errorf("%w: %q listed twice", ErrInvalidStage, st.Stage)
		}
		seen[st.Stage] = true
		st.RequiredFields = dedupe(st.RequiredFields)
		fieldIDs = append(fieldIDs, st.RequiredFields...)
	}

	custom, err := s.customFields.List(ctx, workspaceID)
	if err != nil {
		return nil, storeErr("listing custom fields", err)
	}
	if unknown := pipeline.UnknownFields(fieldIDs, custom); len(unknown) > 0 {
		verr := &ValidationError{}
		for _, id := range unknown {
			verr.Fields = append(verr.Fields, pipeline.FieldError{Field: id, Message: "campo desconhecido"})
		}
		return nil, verr
	}

	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		pipelines := sp.Pipelines()
		if err := pipelines.Ensure(ctx, workspaceID); err != nil {
			return storeErr("ensuring pipeline config", err)
		}
		keep := make([]model.StageSlug, 0, len(stages))
		for _, st := range stages {
			if _, err := pipelines.UpsertStage(ctx, workspaceID, st.Stage, st.RequiredFields); err != nil {
				return storeErr("upserting stage config", err)
			}
			keep = append(keep, st.Stage)
		}
		if err := pipelines.DeleteStagesExcept(ctx, workspaceID, keep); err != nil {
			return storeErr("deleting stage configs", err)
		}
		if err := pipelines.Touch(ctx, workspaceID); err != nil {
			return storeErr("touching pipeline config", err)
		}
		return sp.WorkspaceEventLogs().Create(ctx, newEvent(workspaceID, actorID, model.WorkspaceEventTypePipelineUpdated, map[string]any{
			"stages": keep,
		}))
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "pipeline config replaced",
		"workspace_id", workspaceID,
		"stages", len(stages))

	return loadPipelineConfig(ctx, s.pipelines, workspaceID)
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
