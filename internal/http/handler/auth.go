package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"funil.app/crm/internal/http/dto"
	"funil.app/crm/internal/http/middleware"
	"funil.app/crm/internal/service"
	"github.com/gin-gonic/gin"
)

const sessionMaxAge = 7 * 24 * 60 * 60

type AuthHandler struct {
	authService       service.AuthService
	invitationService service.InvitationService
	isProduction      bool
}

func NewAuthHandler(
	authService service.AuthService,
	invitationService service.InvitationService,
	isProduction bool,
) *AuthHandler {
	return &AuthHandler{
		authService:       authService,
		invitationService: invitationService,
		isProduction:      isProduction,
	}
}

func (h *AuthHandler) GetAuthURL(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	authURL, err := h.authService.GetAuthorizationURL(state)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to get authorization URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get authorization URL"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthURLResponse{AuthorizationURL: authURL, State: state})
}

// Exchange trades the identity provider code for a session. When an invite
// token rides along, the invite is accepted with the fresh identity and its
// workspace becomes the session's current one.
func (h *AuthHandler) Exchange(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "code is required")
		return
	}

	user, session, err := h.authService.HandleCallback(ctx, req.Code)
	if err != nil {
		slog.WarnContext(ctx, "code exchange failed", "error", err)
		respondError(c, err)
		return
	}

	if req.InviteToken != nil && *req.InviteToken != "" {
		accepted, err := h.invitationService.Accept(ctx, *req.InviteToken, user)
		if err != nil {
			slog.WarnContext(ctx, "failed to accept invitation during exchange",
				"error", err,
				"user_id", user.ID,
			)
			if errors.Is(err, service.ErrEmailMismatch) {
				// The session stays so the client can sign out of the wrong identity.
				h.setSessionCookie(c, session.ID)
				c.JSON(http.StatusForbidden, gin.H{
					"error":      "the email you signed in with does not match the invitation",
					"code":       "email_mismatch",
					"session_id": strconv.FormatInt(session.ID, 10),
				})
				return
			}
			if delErr := h.authService.Logout(ctx, session.ID); delErr != nil {
				slog.WarnContext(ctx, "failed to delete session after invite failure",
					"error", delErr,
					"session_id", session.ID,
				)
			}
			respondError(c, err)
			return
		}

		updated, err := h.authService.SelectWorkspace(ctx, session.ID, user.ID, accepted.WorkspaceID)
		if err != nil {
			slog.WarnContext(ctx, "failed to select accepted workspace", "error", err, "workspace_id", accepted.WorkspaceID)
		} else {
			session = updated
		}
		slog.InfoContext(ctx, "invitation accepted during auth exchange",
			"user_id", user.ID,
			"workspace_id", accepted.WorkspaceID,
		)
	}

	h.setSessionCookie(c, session.ID)
	slog.InfoContext(ctx, "user authenticated", "user_id", user.ID)

	c.JSON(http.StatusOK, dto.ExchangeResponse{
		User:        user,
		SessionID:   strconv.FormatInt(session.ID, 10),
		ExpiresAt:   session.ExpiresAt,
		WorkspaceID: session.WorkspaceID,
	})
}

func (h *AuthHandler) Session(c *gin.Context) {
	session := middleware.GetSession(c.Request.Context())
	c.JSON(http.StatusOK, dto.SessionResponse{
		User:        currentUser(c),
		WorkspaceID: session.WorkspaceID,
		ExpiresAt:   session.ExpiresAt,
	})
}

func (h *AuthHandler) SelectWorkspace(c *gin.Context) {
	var req dto.SelectWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "workspace_id is required")
		return
	}

	user := currentUser(c)
	session := middleware.GetSession(c.Request.Context())
	updated, err := h.authService.SelectWorkspace(c.Request.Context(), session.ID, user.ID, req.WorkspaceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		User:        user,
		WorkspaceID: updated.WorkspaceID,
		ExpiresAt:   updated.ExpiresAt,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if sessionID, ok := middleware.SessionID(c); ok {
		if err := h.authService.Logout(ctx, sessionID); err != nil {
			slog.WarnContext(ctx, "failed to delete session", "error", err, "session_id", sessionID)
		}
	}
	h.clearSessionCookie(c)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID int64) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookieName,
		strconv.FormatInt(sessionID, 10),
		sessionMaxAge,
		"/",
		"",
		h.isProduction,
		true,
	)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.isProduction, true)
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
