package store

import (
	"context"

	"funil.app/crm/core/db/sqlc"
	"funil.app/crm/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

// UpsertByWorkOSID mirrors the identity provider's profile locally. The
// stored id wins when the user already exists.
func (s *userStore) UpsertByWorkOSID(ctx context.Context, user *model.User) error {
	row, err := s.queries.UpsertUserByWorkOSID(ctx, sqlc.UpsertUserByWorkOSIDParams{
		ID:        user.ID,
		WorkosID:  user.WorkOSID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarUrl: user.AvatarURL,
	})
	if err != nil {
		return mapErr(err)
	}
	*user = *toUserModel(row)
	return nil
}

func (s *userStore) UpdateProfile(ctx context.Context, id int64, name string, position, phone *string) (*model.User, error) {
	row, err := s.queries.UpdateUserProfile(ctx, sqlc.UpdateUserProfileParams{
		ID:       id,
		Name:     name,
		Position: position,
		Phone:    phone,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) SetAvatar(ctx context.Context, id int64, avatarURL *string) (*model.User, error) {
	row, err := s.queries.SetUserAvatar(ctx, sqlc.SetUserAvatarParams{
		ID:        id,
		AvatarUrl: avatarURL,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:        row.ID,
		WorkOSID:  row.WorkosID,
		Name:      row.Name,
		Email:     row.Email,
		Position:  row.Position,
		Phone:     row.Phone,
		AvatarURL: row.AvatarUrl,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
