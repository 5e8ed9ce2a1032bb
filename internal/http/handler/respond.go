package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"funil.app/crm/internal/http/middleware"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
	"funil.app/crm/internal/storage"
	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Checked in order; the first match wins.
var errorMappings = []errorMapping{
	{service.ErrUnauthorized, http.StatusUnauthorized, "unauthenticated"},
	{service.ErrSessionExpired, http.StatusUnauthorized, "session_expired"},
	{service.ErrEmailMismatch, http.StatusForbidden, "email_mismatch"},
	{service.ErrForbidden, http.StatusForbidden, "forbidden"},
	{service.ErrNotFound, http.StatusNotFound, "not_found"},
	{service.ErrExpired, http.StatusGone, "expired"},
	{service.ErrAlreadyProcessed, http.StatusGone, "already_processed"},
	{service.ErrConflict, http.StatusConflict, "conflict"},
	{service.ErrInvalidRole, http.StatusBadRequest, "invalid_role"},
	{service.ErrInvalidStage, http.StatusBadRequest, "invalid_stage"},
	{service.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{service.ErrInvalidCode, http.StatusBadRequest, "invalid_code"},
	{service.ErrExternalService, http.StatusBadGateway, "external_service"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
}

// respondError writes the status and body for a service error. Field-level
// validation failures become 422 with the failing fields.
func respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"code":   "validation_failed",
			"fields": verr.Fields,
		})
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			if m.status >= http.StatusInternalServerError {
				slog.ErrorContext(ctx, "request failed", "error", err, "route", c.FullPath())
			}
			c.JSON(m.status, gin.H{"error": err.Error(), "code": m.code})
			return
		}
	}

	slog.ErrorContext(ctx, "unhandled error", "error", err, "route", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "code": "invalid_input"})
}

// currentUser is set by middleware.RequireAuth on every authenticated route.
func currentUser(c *gin.Context) *model.User {
	return middleware.GetUser(c.Request.Context())
}

func pathID(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func workspaceID(c *gin.Context) (int64, bool) {
	return pathID(c, "workspaceID")
}

// formUpload reads a multipart file into memory, refusing anything over the
// storage limit.
func formUpload(c *gin.Context, field string) (*service.Upload, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		badRequest(c, field+" file is required")
		return nil, false
	}
	if fh.Size > storage.MaxObjectSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large", "code": "too_large"})
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, "unreadable upload")
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxObjectSize+1))
	if err != nil {
		badRequest(c, "unreadable upload")
		return nil, false
	}
	if len(data) > storage.MaxObjectSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large", "code": "too_large"})
		return nil, false
	}
	return &service.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, true
}
