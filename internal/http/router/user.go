package router

import (
	"funil.app/crm/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler) {
	rg.GET("", h.Me)
	rg.PATCH("", h.UpdateMe)
	rg.POST("/avatar", h.UploadAvatar)
	rg.GET("/invites", h.PendingInvites)
	rg.GET("/onboarding", h.Onboarding)
}
