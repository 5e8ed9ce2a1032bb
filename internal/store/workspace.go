package store

import (
	"context"

	"funil.app/crm/core/db/sqlc"
	"funil.app/crm/internal/model"
)

type workspaceStore struct {
	queries *sqlc.Queries
}

func newWorkspaceStore(queries *sqlc.Queries) WorkspaceStore {
	return &workspaceStore{queries: queries}
}

func (s *workspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	row, err := s.queries.GetWorkspace(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toWorkspaceModel(row), nil
}

func (s *workspaceStore) GetBySlug(ctx context.Context, slug string) (*model.Workspace, error) {
	row, err := s.queries.GetWorkspaceBySlug(ctx, slug)
	if err != nil {
		return nil, mapErr(err)
	}
	return toWorkspaceModel(row), nil
}

func (s *workspaceStore) Create(ctx context.Context, ws *model.Workspace) error {
	row, err := s.queries.CreateWorkspace(ctx, sqlc.CreateWorkspaceParams{
		ID:      ws.ID,
		OwnerID: ws.OwnerID,
		Name:    ws.Name,
		Slug:    ws.Slug,
		LogoUrl: ws.LogoURL,
	})
	if err != nil {
		return mapErr(err)
	}
	*ws = *toWorkspaceModel(row)
	return nil
}

func (s *workspaceStore) Update(ctx context.Context, ws *model.Workspace) error {
	row, err := s.queries.UpdateWorkspace(ctx, sqlc.UpdateWorkspaceParams{
		ID:      ws.ID,
		Name:    ws.Name,
		LogoUrl: ws.LogoURL,
	})
	if err != nil {
		return mapErr(err)
	}
	*ws = *toWorkspaceModel(row)
	return nil
}

// SetOwner moves ownership only while expectedOwnerID still owns the
// workspace. A lost race surfaces as ErrNotFound.
func (s *workspaceStore) SetOwner(ctx context.Context, id, expectedOwnerID, ownerID int64) (*model.Workspace, error) {
	row, err := s.queries.SetWorkspaceOwner(ctx, sqlc.SetWorkspaceOwnerParams{
		OwnerID:         ownerID,
		ID:              id,
		ExpectedOwnerID: expectedOwnerID,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toWorkspaceModel(row), nil
}

// ListForUser returns owned and member workspaces, oldest first.
func (s *workspaceStore) ListForUser(ctx context.Context, userID int64) ([]model.Workspace, error) {
	rows, err := s.queries.ListWorkspacesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Workspace, len(rows))
	for i, row := range rows {
		result[i] = *toWorkspaceModel(row)
	}
	return result, nil
}

func toWorkspaceModel(row sqlc.Workspace) *model.Workspace {
	return &model.Workspace{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Slug:      row.Slug,
		LogoURL:   row.LogoUrl,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
