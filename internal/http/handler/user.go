package handler

import (
	"log/slog"
	"net/http"

	"funil.app/crm/internal/http/dto"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService       service.UserService
	invitationService service.InvitationService
	onboarding        service.OnboardingService
}

func NewUserHandler(
	userService service.UserService,
	invitationService service.InvitationService,
	onboarding service.OnboardingService,
) *UserHandler {
	return &UserHandler{
		userService:       userService,
		invitationService: invitationService,
		onboarding:        onboarding,
	}
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{User: user})
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		badRequest(c, err.Error())
		return
	}

	user, warnings, err := h.userService.UpdateProfile(ctx, currentUser(c).ID, service.ProfileUpdate{
		Name:     req.Name,
		Position: req.Position,
		Phone:    req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{User: user, Warnings: warnings})
}

// UploadAvatar takes a multipart "avatar" file.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	upload, ok := formUpload(c, "avatar")
	if !ok {
		return
	}

	user, warnings, err := h.userService.UpdateProfile(c.Request.Context(), currentUser(c).ID, service.ProfileUpdate{Avatar: upload})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{User: user, Warnings: warnings})
}

func (h *UserHandler) PendingInvites(c *gin.Context) {
	invites, err := h.invitationService.ListPendingForUser(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if invites == nil {
		invites = []model.Invitation{}
	}
	c.JSON(http.StatusOK, gin.H{"invites": invites})
}

func (h *UserHandler) Onboarding(c *gin.Context) {
	decision, err := h.onboarding.Decide(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}
