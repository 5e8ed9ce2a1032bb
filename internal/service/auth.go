package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"funil.app/crm/common/id"
	"funil.app/crm/core/config"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/store"
	"github.com/workos/workos-go/v6/pkg/usermanagement"
)

const sessionTTL = 7 * 24 * time.Hour

var (
	ErrInvalidCode    = errors.New("invalid authorization code")
	ErrSessionExpired = errors.New("session expired")
)

type AuthService interface {
	GetAuthorizationURL(state string) (string, error)
	// HandleCallback exchanges the identity provider code, mirrors the user
	// locally and opens a session pointing at the user's oldest workspace.
	HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error)
	ValidateSession(ctx context.Context, sessionID int64) (*model.User, *model.Session, error)
	// SelectWorkspace records the session's current workspace. The user must
	// have access to it.
	SelectWorkspace(ctx context.Context, sessionID, userID, workspaceID int64) (*model.Session, error)
	Logout(ctx context.Context, sessionID int64) error
}

type authService struct {
	userStore      store.UserStore
	sessionStore   store.SessionStore
	workspaceStore store.WorkspaceStore
	authz          Authorizer
	cfg            config.WorkOSConfig
}

func NewAuthService(
	userStore store.UserStore,
	sessionStore store.SessionStore,
	workspaceStore store.WorkspaceStore,
	authz Authorizer,
	cfg config.WorkOSConfig,
) AuthService {
	usermanagement.SetAPIKey(cfg.APIKey)
	return &authService{
		userStore:      userStore,
		sessionStore:   sessionStore,
		workspaceStore: workspaceStore,
		authz:          authz,
		cfg:            cfg,
	}
}

func (s *authService) GetAuthorizationURL(state string) (string, error) {
	url, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    s.cfg.ClientID,
		RedirectURI: s.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url.String(), nil
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error) {
	authResponse, err := usermanagement.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: s.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to authenticate with code", "error", err)
		return nil, nil, ErrInvalidCode
	}

	workosUser := authResponse.User

	var avatarURL *string
	if workosUser.ProfilePictureURL != "" {
		avatarURL = &workosUser.ProfilePictureURL
	}

	user := &model.User{
		ID:        id.New(),
		Name:      buildUserName(workosUser),
		Email:     workosUser.Email,
		AvatarURL: avatarURL,
		WorkOSID:  &workosUser.ID,
	}

	if err := s.userStore.UpsertByWorkOSID(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to upsert user",
			"error", err,
			"email", user.Email,
			"workos_id", workosUser.ID,
		)
		return nil, nil, fmt.Errorf("upserting user: %w", err)
	}

	session := &model.Session{
		ID:        id.New(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if list, err := s.workspaceStore.ListForUser(ctx, user.ID); err == nil && len(list) > 0 {
		first := oldestWorkspace(list)
		session.WorkspaceID = &first.ID
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session",
			"error", err,
			"user_id", user.ID,
		)
		return nil, nil, fmt.Errorf("creating session: %w", err)
	}

	slog.InfoContext(ctx, "user authenticated",
		"user_id", user.ID,
		"email", user.Email,
		"session_id", session.ID,
	)

	return user, session, nil
}

func (s *authService) ValidateSession(ctx context.Context, sessionID int64) (*model.User, *model.Session, error) {
	session, err := s.sessionStore.GetValid(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrSessionExpired
		}
		return nil, nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("getting user: %w", err)
	}

	return user, session, nil
}

func (s *authService) SelectWorkspace(ctx context.Context, sessionID, userID, workspaceID int64) (*model.Session, error) {
	if _, err := authorize(ctx, s.authz, workspaceID, userID, model.Role.HasAccess); err != nil {
		return nil, err
	}
	if err := s.sessionStore.SetWorkspace(ctx, sessionID, &workspaceID); err != nil {
		return nil, storeErr("setting session workspace", err)
	}
	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, storeErr("getting session", err)
	}
	return session, nil
}

func (s *authService) Logout(ctx context.Context, sessionID int64) error {
	if err := s.sessionStore.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func buildUserName(user usermanagement.User) string {
	if user.FirstName != "" && user.LastName != "" {
		return user.FirstName + " " + user.LastName
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	if user.LastName != "" {
		return user.LastName
	}
	return user.Email
}
