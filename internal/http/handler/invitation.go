package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"funil.app/crm/internal/http/dto"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	invService service.InvitationService
}

func NewInvitationHandler(invService service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invService: invService}
}

func (h *InvitationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		badRequest(c, "email and role are required")
		return
	}

	result, err := h.invService.Invite(ctx, wsID, currentUser(c).ID, req.Email, model.Role(strings.ToLower(req.Role)))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.InvitationResponse{
		Invitation: result.Invitation,
		AcceptURL:  result.AcceptURL,
		Warnings:   result.Warnings,
	})
}

func (h *InvitationHandler) List(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	invites, err := h.invService.List(c.Request.Context(), wsID, currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if invites == nil {
		invites = []model.Invitation{}
	}
	c.JSON(http.StatusOK, gin.H{"invites": invites})
}

func (h *InvitationHandler) Cancel(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}
	inviteID, ok := pathID(c, "inviteID")
	if !ok {
		return
	}

	inv, err := h.invService.Cancel(c.Request.Context(), wsID, currentUser(c).ID, inviteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.InvitationResponse{Invitation: inv})
}

func (h *InvitationHandler) Resend(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}
	inviteID, ok := pathID(c, "inviteID")
	if !ok {
		return
	}

	result, err := h.invService.Resend(c.Request.Context(), wsID, currentUser(c).ID, inviteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.InvitationResponse{
		Invitation: result.Invitation,
		AcceptURL:  result.AcceptURL,
		Warnings:   result.Warnings,
	})
}

// Preview is public: it backs the invite landing page before sign-in.
func (h *InvitationHandler) Preview(c *gin.Context) {
	inv, ws, err := h.invService.Preview(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvitationPreview(inv, ws))
}

func (h *InvitationHandler) Accept(c *gin.Context) {
	result, err := h.invService.Accept(c.Request.Context(), c.Param("token"), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AcceptInvitationResponse{
		Invitation:  result.Invitation,
		WorkspaceID: result.WorkspaceID,
		Role:        result.Role,
	})
}

func (h *InvitationHandler) Reject(c *gin.Context) {
	inv, err := h.invService.Reject(c.Request.Context(), c.Param("token"), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.InvitationResponse{Invitation: inv})
}
