package store

import (
	"context"
	"fmt"

	"funil.app/crm/core/db/sqlc"
	"funil.app/crm/internal/model"
)

type memberStore struct {
	queries *sqlc.Queries
}

func newMemberStore(queries *sqlc.Queries) MemberStore {
	return &memberStore{queries: queries}
}

func (s *memberStore) Get(ctx context.Context, workspaceID, userID int64) (*model.WorkspaceMember, error) {
	row, err := s.queries.GetWorkspaceMember(ctx, sqlc.GetWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toMemberModel(row)
}

func (s *memberStore) Upsert(ctx context.Context, workspaceID, userID int64, role model.Role) (*model.WorkspaceMember, error) {
	if role != model.RoleAdmin && role != model.RoleMember {
		return nil, fmt.Errorf("membership role must be admin or member, got %q", role)
	}
	row, err := s.queries.UpsertWorkspaceMember(ctx, sqlc.UpsertWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        string(role),
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toMemberModel(row)
}

func (s *memberStore) Delete(ctx context.Context, workspaceID, userID int64) error {
	n, err := s.queries.DeleteWorkspaceMember(ctx, sqlc.DeleteWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *memberStore) List(ctx context.Context, workspaceID int64) ([]model.WorkspaceMember, error) {
	rows, err := s.queries.ListWorkspaceMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	result := make([]model.WorkspaceMember, 0, len(rows))
	for _, row := range rows {
		role, err := model.ParseRole(row.Role)
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", row.UserID, err)
		}
		result = append(result, model.WorkspaceMember{
			WorkspaceID:   row.WorkspaceID,
			UserID:        row.UserID,
			Role:          role,
			UserName:      row.UserName,
			UserEmail:     row.UserEmail,
			UserAvatarURL: row.UserAvatarUrl,
			CreatedAt:     row.CreatedAt.Time,
			UpdatedAt:     row.UpdatedAt.Time,
		})
	}
	return result, nil
}

// toMemberModel parses the stored role into the closed enum. A row carrying
// an unknown role is a data error, never a silent downgrade.
func toMemberModel(row sqlc.WorkspaceMember) (*model.WorkspaceMember, error) {
	role, err := model.ParseRole(row.Role)
	if err != nil {
		return nil, fmt.Errorf("member %d: %w", row.UserID, err)
	}
	return &model.WorkspaceMember{
		WorkspaceID: row.WorkspaceID,
		UserID:      row.UserID,
		Role:        role,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}, nil
}
