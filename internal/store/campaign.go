package store

import (
	"context"

	"funil.app/crm/core/db/sqlc"
	"funil.app/crm/internal/model"
)

type campaignStore struct {
	queries *sqlc.Queries
}

func newCampaignStore(queries *sqlc.Queries) CampaignStore {
	return &campaignStore{queries: queries}
}

func (s *campaignStore) Create(ctx context.Context, c *model.Campaign) error {
	row, err := s.queries.CreateCampaign(ctx, sqlc.CreateCampaignParams{
		ID:             c.ID,
		WorkspaceID:    c.WorkspaceID,
		Name:           c.Name,
		Context:        c.Context,
		VoiceTone:      string(c.VoiceTone),
		AiInstructions: c.AIInstructions,
		Status:         string(c.Status),
		TriggerStage:   stagePtrToString(c.TriggerStage),
		CreatedBy:      c.CreatedBy,
	})
	if err != nil {
		return mapErr(err)
	}
	*c = *toCampaignModel(row)
	return nil
}

// GetByID includes the derived count of active leads on the campaign.
func (s *campaignStore) GetByID(ctx context.Context, id int64) (*model.Campaign, error) {
	row, err := s.queries.GetCampaign(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	c := toCampaignModel(row)
	count, err := s.queries.CountCampaignLeads(ctx, &row.ID)
	if err != nil {
		return nil, err
	}
	c.LeadCount = count
	return c, nil
}

func (s *campaignStore) List(ctx context.Context, workspaceID int64) ([]model.Campaign, error) {
	rows, err := s.queries.ListCampaigns(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Campaign, len(rows))
	for i, row := range rows {
		c := toCampaignModel(sqlc.Campaign{
			ID:             row.ID,
			WorkspaceID:    row.WorkspaceID,
			Name:           row.Name,
			Context:        row.Context,
			VoiceTone:      row.VoiceTone,
			AiInstructions: row.AiInstructions,
			Status:         row.Status,
			TriggerStage:   row.TriggerStage,
			CreatedBy:      row.CreatedBy,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
		})
		c.LeadCount = row.LeadCount
		result[i] = *c
	}
	return result, nil
}

func (s *campaignStore) Update(ctx context.Context, c *model.Campaign) error {
	row, err := s.queries.UpdateCampaign(ctx, sqlc.UpdateCampaignParams{
		ID:             c.ID,
		Name:           c.Name,
		Context:        c.Context,
		VoiceTone:      string(c.VoiceTone),
		AiInstructions: c.AIInstructions,
		Status:         string(c.Status),
		TriggerStage:   stagePtrToString(c.TriggerStage),
	})
	if err != nil {
		return mapErr(err)
	}
	leadCount := c.LeadCount
	*c = *toCampaignModel(row)
	c.LeadCount = leadCount
	return nil
}

func (s *campaignStore) ListActiveByTrigger(ctx context.Context, workspaceID int64, stage model.StageSlug) ([]model.Campaign, error) {
	slug := string(stage)
	rows, err := s.queries.ListActiveCampaignsByTrigger(ctx, sqlc.ListActiveCampaignsByTriggerParams{
		WorkspaceID:  workspaceID,
		TriggerStage: &slug,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Campaign, len(rows))
	for i, row := range rows {
		result[i] = *toCampaignModel(row)
	}
	return result, nil
}

func toCampaignModel(row sqlc.Campaign) *model.Campaign {
	c := &model.Campaign{
		ID:             row.ID,
		WorkspaceID:    row.WorkspaceID,
		Name:           row.Name,
		Context:        row.Context,
		VoiceTone:      model.VoiceTone(row.VoiceTone),
		AIInstructions: row.AiInstructions,
		Status:         model.CampaignStatus(row.Status),
		CreatedBy:      row.CreatedBy,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
	if row.TriggerStage != nil {
		stage := model.StageSlug(*row.TriggerStage)
		c.TriggerStage = &stage
	}
	return c
}

func stagePtrToString(stage *model.StageSlug) *string {
	if stage == nil {
		return nil
	}
	s := string(*stage)
	return &s
}
