package store

import (
	"context"
	"encoding/json"
	"fmt"

	"funil.app/crm/core/db/sqlc"
	"funil.app/crm/internal/model"
)

type suggestionStore struct {
	queries *sqlc.Queries
}

func newSuggestionStore(queries *sqlc.Queries) SuggestionStore {
	return &suggestionStore{queries: queries}
}

// Upsert replaces any previous batch for the same (lead, campaign) and
// clears its viewed marker.
func (s *suggestionStore) Upsert(ctx context.Context, batch *model.SuggestionBatch) error {
	payload, err := json.Marshal(batch.Suggestions)
	if err != nil {
		return fmt.Errorf("encoding suggestions: %w", err)
	}
	row, err := s.queries.UpsertSuggestionBatch(ctx, sqlc.UpsertSuggestionBatchParams{
		LeadID:      batch.LeadID,
		CampaignID:  batch.CampaignID,
		WorkspaceID: batch.WorkspaceID,
		Suggestions: payload,
	})
	if err != nil {
		return mapErr(err)
	}
	stored, err := toSuggestionBatchModel(row)
	if err != nil {
		return err
	}
	*batch = *stored
	return nil
}

func (s *suggestionStore) Get(ctx context.Context, leadID, campaignID int64) (*model.SuggestionBatch, error) {
	row, err := s.queries.GetSuggestionBatch(ctx, sqlc.GetSuggestionBatchParams{
		LeadID:     leadID,
		CampaignID: campaignID,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toSuggestionBatchModel(row)
}

func (s *suggestionStore) ListForLead(ctx context.Context, leadID int64) ([]model.SuggestionBatch, error) {
	rows, err := s.queries.ListSuggestionBatchesForLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	result := make([]model.SuggestionBatch, len(rows))
	for i, row := range rows {
		batch, err := toSuggestionBatchModel(row)
		if err != nil {
			return nil, err
		}
		result[i] = *batch
	}
	return result, nil
}

// MarkViewed is a no-op for batches that were already viewed; ErrNotFound
// only when no batch exists.
func (s *suggestionStore) MarkViewed(ctx context.Context, leadID, campaignID int64) error {
	n, err := s.queries.MarkSuggestionBatchViewed(ctx, sqlc.MarkSuggestionBatchViewedParams{
		LeadID:     leadID,
		CampaignID: campaignID,
	})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := s.Get(ctx, leadID, campaignID); err != nil {
		return err
	}
	return nil
}

func toSuggestionBatchModel(row sqlc.AiSuggestion) (*model.SuggestionBatch, error) {
	var suggestions []model.Suggestion
	if err := json.Unmarshal(row.Suggestions, &suggestions); err != nil {
		return nil, fmt.Errorf("decoding suggestions for lead %d: %w", row.LeadID, err)
	}
	return &model.SuggestionBatch{
		LeadID:      row.LeadID,
		CampaignID:  row.CampaignID,
		WorkspaceID: row.WorkspaceID,
		Suggestions: suggestions,
		GeneratedAt: row.GeneratedAt.Time,
		ViewedAt:    toTimePointer(row.ViewedAt),
	}, nil
}
