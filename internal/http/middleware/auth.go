package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"funil.app/crm/common/logger"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
	"github.com/gin-gonic/gin"
)

type contextKey string

const (
	SessionCookieName = "funil_session"
	SessionIDHeader   = "X-Session-ID"

	userContextKey    contextKey = "user"
	sessionContextKey contextKey = "session"
)

// SessionValidator is the part of service.AuthService the middleware needs.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID int64) (*model.User, *model.Session, error)
}

// RequireAuth resolves the session from the X-Session-ID header, falling back
// to the session cookie, and aborts with 401 when it is missing or expired.
func RequireAuth(auth SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		sessionID, ok := SessionID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated", "code": "unauthenticated"})
			return
		}

		user, session, err := auth.ValidateSession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired", "code": "session_expired"})
				return
			}
			slog.ErrorContext(ctx, "failed to validate session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
			return
		}

		ctx = context.WithValue(ctx, userContextKey, user)
		ctx = context.WithValue(ctx, sessionContextKey, session)
		ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// SessionID reads the raw session id without validating it.
func SessionID(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(SessionIDHeader)
	if raw == "" {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil {
			return 0, false
		}
		raw = cookie
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

func GetSession(ctx context.Context) *model.Session {
	session, _ := ctx.Value(sessionContextKey).(*model.Session)
	return session
}

// WithUser is used by handler tests to skip session validation.
func WithUser(ctx context.Context, user *model.User, session *model.Session) context.Context {
	ctx = context.WithValue(ctx, userContextKey, user)
	return context.WithValue(ctx, sessionContextKey, session)
}
