package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"funil.app/crm/internal/model"
	"funil.app/crm/internal/store"
)

type ProfileUpdate struct {
	Name     *string
	Position *string
	Phone    *string
	Avatar   *Upload
}

type UserService interface {
	Get(ctx context.Context, userID int64) (*model.User, error)
	// UpdateProfile saves the profile fields even when the avatar upload
	// fails; the failure comes back as a warning.
	UpdateProfile(ctx context.Context, userID int64, in ProfileUpdate) (*model.User, []string, error)
}

type userService struct {
	users        store.UserStore
	uploader     AssetUploader
	avatarBucket string
}

func NewUserService(users store.UserStore, uploader AssetUploader, avatarBucket string) UserService {
	return &userService{
		users:        users,
		uploader:     uploader,
		avatarBucket: avatarBucket,
	}
}

func (s *userService) Get(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr("getting user", err)
	}
	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, in ProfileUpdate) (*model.User, []string, error) {
	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, storeErr("getting user", err)
	}

	name := current.Name
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, nil, invalidInput("name is required")
		}
	}
	position := optionalField(current.Position, in.Position)
	phone := optionalField(current.Phone, in.Phone)

	updated, err := s.users.UpdateProfile(ctx, userID, name, position, phone)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update profile",
			"error", err,
			"user_id", userID)
		return nil, nil, storeErr("updating profile", err)
	}

	var warnings []string
	if in.Avatar != nil {
		withAvatar, err := s.setAvatar(ctx, userID, in.Avatar)
		if err != nil {
			slog.WarnContext(ctx, "avatar upload failed",
				"error", err,
				"user_id", userID)
			warnings = append(warnings, "avatar upload failed; the other changes were saved")
		} else {
			updated = withAvatar
		}
	}

	return updated, warnings, nil
}

func (s *userService) setAvatar(ctx context.Context, userID int64, avatar *Upload) (*model.User, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("storage disabled: %w", ErrExternalService)
	}
	objectPath := fmt.Sprintf("%d/avatar%s", userID, path.Ext(avatar.Filename))
	url, err := s.uploader.Upload(ctx, s.avatarBucket, objectPath, avatar.Data, avatar.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExternalService, err)
	}
	u, err := s.users.SetAvatar(ctx, userID, &url)
	if err != nil {
		return nil, storeErr("saving avatar", err)
	}
	return u, nil
}

// optionalField applies a partial update to a nullable column; a blank value
// clears it.
func optionalField(current, next *string) *string {
	if next == nil {
		return current
	}
	v := strings.TrimSpace(*next)
	if v == "" {
		return nil
	}
	return &v
}
