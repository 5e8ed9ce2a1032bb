package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"funil.app/crm/common/id"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/store"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

type HistoryService interface {
	List(ctx context.Context, workspaceID, userID int64, limit int32) ([]model.WorkspaceEventLog, error)
}

type historyService struct {
	authz Authorizer
	logs  store.WorkspaceEventLogStore
}

func NewHistoryService(authz Authorizer, logs store.WorkspaceEventLogStore) HistoryService {
	return &historyService{authz: authz, logs: logs}
}

func (s *historyService) List(ctx context.Context, workspaceID, userID int64, limit int32) ([]model.WorkspaceEventLog, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.CanViewHistory); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	logs, err := s.logs.ListByWorkspace(ctx, workspaceID, limit)
	if err != nil {
		return nil, storeErr("listing history", err)
	}
	return logs, nil
}

func newEvent(workspaceID, actorID int64, eventType model.WorkspaceEventType, metadata map[string]any) *model.WorkspaceEventLog {
	var raw json.RawMessage
	if len(metadata) > 0 {
		// map[string]any of ids and strings always marshals
		raw, _ = json.Marshal(metadata)
	}
	return &model.WorkspaceEventLog{
		ID:          id.New(),
		WorkspaceID: workspaceID,
		ActorID:     &actorID,
		EventType:   eventType,
		Metadata:    raw,
	}
}

// recordEvent writes a history entry outside any transaction. A failed write
// is logged and never fails the caller.
func recordEvent(ctx context.Context, logs store.WorkspaceEventLogStore, ev *model.WorkspaceEventLog) {
	if err := logs.Create(ctx, ev); err != nil {
		slog.WarnContext(ctx, "failed to record workspace event",
			"error", err,
			"workspace_id", ev.WorkspaceID,
			"event_type", ev.EventType)
	}
}
