package store

import (
	"context"
	"encoding/json"
	"fmt"

	"funil.app/crm/core/db/sqlc"
	"funil.app/crm/internal/model"
)

type leadStore struct {
	queries *sqlc.Queries
}

func newLeadStore(queries *sqlc.Queries) LeadStore {
	return &leadStore{queries: queries}
}

func (s *leadStore) Create(ctx context.Context, lead *model.Lead) error {
	customValues, err := encodeCustomValues(lead.CustomValues)
	if err != nil {
		return err
	}
	row, err := s.queries.CreateLead(ctx, sqlc.CreateLeadParams{
		ID:             lead.ID,
		WorkspaceID:    lead.WorkspaceID,
		Name:           lead.Name,
		Email:          lead.Email,
		Phone:          lead.Phone,
		Position:       lead.Position,
		Company:        lead.Company,
		Segment:        lead.Segment,
		Revenue:        lead.Revenue,
		Linkedin:       lead.LinkedIn,
		Notes:          lead.Notes,
		Stage:          string(lead.Stage),
		CampaignID:     lead.CampaignID,
		ResponsibleIds: nonNilIDs(lead.ResponsibleIDs),
		CustomValues:   customValues,
	})
	if err != nil {
		return mapErr(err)
	}
	created, err := toLeadModel(row)
	if err != nil {
		return err
	}
	*lead = *created
	return nil
}

func (s *leadStore) GetByID(ctx context.Context, id int64) (*model.Lead, error) {
	row, err := s.queries.GetLead(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toLeadModel(row)
}

func (s *leadStore) ListActive(ctx context.Context, workspaceID int64) ([]model.Lead, error) {
	rows, err := s.queries.ListActiveLeads(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return toLeadModels(rows)
}

func (s *leadStore) ListArchived(ctx context.Context, workspaceID int64) ([]model.Lead, error) {
	rows, err := s.queries.ListArchivedLeads(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return toLeadModels(rows)
}

func (s *leadStore) ListActiveByStage(ctx context.Context, workspaceID int64, stage model.StageSlug) ([]model.Lead, error) {
	rows, err := s.queries.ListActiveLeadsByStage(ctx, sqlc.ListActiveLeadsByStageParams{
		WorkspaceID: workspaceID,
		Stage:       string(stage),
	})
	if err != nil {
		return nil, err
	}
	return toLeadModels(rows)
}

func (s *leadStore) Update(ctx context.Context, lead *model.Lead) error {
	customValues, err := encodeCustomValues(lead.CustomValues)
	if err != nil {
		return err
	}
	row, err := s.queries.UpdateLead(ctx, sqlc.UpdateLeadParams{
		ID:             lead.ID,
		Name:           lead.Name,
		Email:          lead.Email,
		Phone:          lead.Phone,
		Position:       lead.Position,
		Company:        lead.Company,
		Segment:        lead.Segment,
		Revenue:        lead.Revenue,
		Linkedin:       lead.LinkedIn,
		Notes:          lead.Notes,
		Stage:          string(lead.Stage),
		CampaignID:     lead.CampaignID,
		ResponsibleIds: nonNilIDs(lead.ResponsibleIDs),
		CustomValues:   customValues,
	})
	if err != nil {
		return mapErr(err)
	}
	updated, err := toLeadModel(row)
	if err != nil {
		return err
	}
	*lead = *updated
	return nil
}

func (s *leadStore) UpdateStage(ctx context.Context, id int64, stage model.StageSlug) (*model.Lead, error) {
	row, err := s.queries.UpdateLeadStage(ctx, sqlc.UpdateLeadStageParams{
		ID:    id,
		Stage: string(stage),
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toLeadModel(row)
}

func (s *leadStore) Promote(ctx context.Context, workspaceID int64, ids []int64, from, to model.StageSlug) ([]model.Lead, error) {
	if len(ids) == 0 {
		return []model.Lead{}, nil
	}
	rows, err := s.queries.PromoteLeads(ctx, sqlc.PromoteLeadsParams{
		ToStage:     string(to),
		WorkspaceID: workspaceID,
		Ids:         ids,
		FromStage:   string(from),
	})
	if err != nil {
		return nil, err
	}
	return toLeadModels(rows)
}

func (s *leadStore) Archive(ctx context.Context, id int64) (*model.Lead, error) {
	row, err := s.queries.ArchiveLead(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toLeadModel(row)
}

func (s *leadStore) Restore(ctx context.Context, id int64) (*model.Lead, error) {
	row, err := s.queries.RestoreLead(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toLeadModel(row)
}

func toLeadModel(row sqlc.Lead) (*model.Lead, error) {
	customValues := map[string]any{}
	if len(row.CustomValues) > 0 {
		if err := json.Unmarshal(row.CustomValues, &customValues); err != nil {
			return nil, fmt.Errorf("lead %d custom values: %w", row.ID, err)
		}
	}
	return &model.Lead{
		ID:             row.ID,
		WorkspaceID:    row.WorkspaceID,
		Name:           row.Name,
		Email:          row.Email,
		Phone:          row.Phone,
		Position:       row.Position,
		Company:        row.Company,
		Segment:        row.Segment,
		Revenue:        row.Revenue,
		LinkedIn:       row.Linkedin,
		Notes:          row.Notes,
		Stage:          model.StageSlug(row.Stage),
		CampaignID:     row.CampaignID,
		ResponsibleIDs: row.ResponsibleIds,
		CustomValues:   customValues,
		ArchivedAt:     toTimePointer(row.ArchivedAt),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}, nil
}

func toLeadModels(rows []sqlc.Lead) ([]model.Lead, error) {
	result := make([]model.Lead, len(rows))
	for i, row := range rows {
		lead, err := toLeadModel(row)
		if err != nil {
			return nil, err
		}
		result[i] = *lead
	}
	return result, nil
}

func encodeCustomValues(values map[string]any) ([]byte, error) {
	if values == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encoding custom values: %w", err)
	}
	return b, nil
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
