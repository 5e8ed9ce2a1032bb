package store

import (
	"context"

	"funil.app/crm/core/db/sqlc"
	"funil.app/crm/internal/model"
)

type workspaceEventLogStore struct {
	queries *sqlc.Queries
}

func newWorkspaceEventLogStore(queries *sqlc.Queries) WorkspaceEventLogStore {
	return &workspaceEventLogStore{queries: queries}
}

func (s *workspaceEventLogStore) Create(ctx context.Context, log *model.WorkspaceEventLog) error {
	metadata := []byte(log.Metadata)
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}
	row, err := s.queries.CreateWorkspaceEventLog(ctx, sqlc.CreateWorkspaceEventLogParams{
		ID:          log.ID,
		WorkspaceID: log.WorkspaceID,
		ActorID:     log.ActorID,
		EventType:   string(log.EventType),
		Metadata:    metadata,
	})
	if err != nil {
		return mapErr(err)
	}
	*log = *toWorkspaceEventLogModel(row)
	return nil
}

func (s *workspaceEventLogStore) ListByWorkspace(ctx context.Context, workspaceID int64, limit int32) ([]model.WorkspaceEventLog, error) {
	rows, err := s.queries.ListWorkspaceEventLogs(ctx, sqlc.ListWorkspaceEventLogsParams{
		WorkspaceID: workspaceID,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.WorkspaceEventLog, 0, len(rows))
	for _, row := range rows {
		result = append(result, *toWorkspaceEventLogModel(row))
	}
	return result, nil
}

func toWorkspaceEventLogModel(row sqlc.WorkspaceEventLog) *model.WorkspaceEventLog {
	return &model.WorkspaceEventLog{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		ActorID:     row.ActorID,
		EventType:   model.WorkspaceEventType(row.EventType),
		Metadata:    row.Metadata,
		CreatedAt:   row.CreatedAt.Time,
	}
}
