package router

import (
	"funil.app/crm/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func LeadRouter(rg *gin.RouterGroup, leads *handler.LeadHandler, outreach *handler.OutreachHandler) {
	rg.GET("", leads.List)
	rg.POST("", leads.Create)
	rg.GET("/eligible", leads.Eligible)
	rg.POST("/promote", leads.Promote)

	rg.GET("/:leadID", leads.Get)
	rg.PATCH("/:leadID", leads.Update)
	rg.POST("/:leadID/stage", leads.ChangeStage)
	rg.POST("/:leadID/archive", leads.Archive)
	rg.POST("/:leadID/restore", leads.Restore)

	rg.POST("/:leadID/suggestions", outreach.Generate)
	rg.GET("/:leadID/suggestions", outreach.List)
	rg.POST("/:leadID/suggestions/:campaignID/viewed", outreach.MarkViewed)
}
