package store

import (
	"context"
	"time"

	"funil.app/crm/core/db/sqlc"
	"funil.app/crm/internal/model"
	"github.com/jackc/pgx/v5/pgtype"
)

type invitationStore struct {
	queries *sqlc.Queries
}

func newInvitationStore(queries *sqlc.Queries) InvitationStore {
	return &invitationStore{queries: queries}
}

func (s *invitationStore) Create(ctx context.Context, inv *model.Invitation) error {
	row, err := s.queries.CreateInvite(ctx, sqlc.CreateInviteParams{
		ID:          inv.ID,
		WorkspaceID: inv.WorkspaceID,
		Email:       inv.Email,
		Role:        string(inv.Role),
		InvitedBy:   inv.InvitedBy,
		Token:       inv.Token,
		Status:      string(inv.Status),
		ExpiresAt:   pgtype.Timestamptz{Time: inv.ExpiresAt, Valid: true},
	})
	if err != nil {
		return mapErr(err)
	}
	created, err := toInvitationModel(row)
	if err != nil {
		return err
	}
	*inv = *created
	return nil
}

func (s *invitationStore) GetByID(ctx context.Context, id int64) (*model.Invitation, error) {
	row, err := s.queries.GetInvite(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toInvitationModel(row)
}

func (s *invitationStore) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	row, err := s.queries.GetInviteByToken(ctx, token)
	if err != nil {
		return nil, mapErr(err)
	}
	return toInvitationModel(row)
}

func (s *invitationStore) GetPendingByWorkspaceAndEmail(ctx context.Context, workspaceID int64, email string) (*model.Invitation, error) {
	row, err := s.queries.GetPendingInviteByWorkspaceAndEmail(ctx, sqlc.GetPendingInviteByWorkspaceAndEmailParams{
		WorkspaceID: workspaceID,
		Email:       email,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toInvitationModel(row)
}

func (s *invitationStore) Transition(ctx context.Context, id int64, status model.InvitationStatus, acceptedAt *time.Time, acceptedBy *int64) (*model.Invitation, error) {
	row, err := s.queries.TransitionInvite(ctx, sqlc.TransitionInviteParams{
		Status:     string(status),
		AcceptedAt: toNullableTimestamp(acceptedAt),
		AcceptedBy: acceptedBy,
		ID:         id,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toInvitationModel(row)
}

func (s *invitationStore) ListPendingByWorkspace(ctx context.Context, workspaceID int64) ([]model.Invitation, error) {
	rows, err := s.queries.ListPendingInvitesByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return toInvitationModels(rows)
}

func (s *invitationStore) ListPendingByEmail(ctx context.Context, email string) ([]model.Invitation, error) {
	rows, err := s.queries.ListPendingInvitesByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toInvitationModels(rows)
}

func toInvitationModel(row sqlc.WorkspaceInvite) (*model.Invitation, error) {
	role, err := model.ParseRole(row.Role)
	if err != nil {
		return nil, err
	}
	return &model.Invitation{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		Email:       row.Email,
		Role:        role,
		InvitedBy:   row.InvitedBy,
		Token:       row.Token,
		Status:      model.InvitationStatus(row.Status),
		ExpiresAt:   row.ExpiresAt.Time,
		CreatedAt:   row.CreatedAt.Time,
		AcceptedAt:  toTimePointer(row.AcceptedAt),
		AcceptedBy:  row.AcceptedBy,
	}, nil
}

func toInvitationModels(rows []sqlc.WorkspaceInvite) ([]model.Invitation, error) {
	result := make([]model.Invitation, len(rows))
	for i, row := range rows {
		inv, err := toInvitationModel(row)
		if err != nil {
			return nil, err
		}
		result[i] = *inv
	}
	return result, nil
}
