package router

import (
	"funil.app/crm/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func PipelineRouter(rg *gin.RouterGroup, h *handler.PipelineHandler) {
	rg.GET("/pipeline", h.Get)
	rg.PUT("/pipeline", h.Replace)
	rg.GET("/pipeline/fields", h.Fields)

	rg.GET("/custom-fields", h.ListCustomFields)
	rg.POST("/custom-fields", h.CreateCustomField)
	rg.PATCH("/custom-fields/:fieldID", h.UpdateCustomField)
	rg.DELETE("/custom-fields/:fieldID", h.DeleteCustomField)
}
