package router

import (
	"funil.app/crm/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func CampaignRouter(rg *gin.RouterGroup, h *handler.CampaignHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:campaignID", h.Get)
	rg.PATCH("/:campaignID", h.Update)
}
