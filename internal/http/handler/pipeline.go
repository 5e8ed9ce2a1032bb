package handler

import (
	"net/http"

	"funil.app/crm/internal/http/dto"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
	"github.com/gin-gonic/gin"
)

type PipelineHandler struct {
	pipelines    service.PipelineService
	customFields service.CustomFieldService
}

func NewPipelineHandler(pipelines service.PipelineService, customFields service.CustomFieldService) *PipelineHandler {
	return &PipelineHandler{pipelines: pipelines, customFields: customFields}
}

func (h *PipelineHandler) Get(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	cfg, err := h.pipelines.GetConfig(c.Request.Context(), wsID, currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// Replace treats the body as the complete configuration.
func (h *PipelineHandler) Replace(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	var req dto.ReplacePipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	cfg, err := h.pipelines.ReplaceConfig(c.Request.Context(), wsID, currentUser(c).ID, req.ToStageConfigs())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *PipelineHandler) Fields(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	fields, err := h.pipelines.Fields(c.Request.Context(), wsID, currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fields": fields})
}

func (h *PipelineHandler) ListCustomFields(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	fields, err := h.customFields.List(c.Request.Context(), wsID, currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if fields == nil {
		fields = []model.CustomField{}
	}
	c.JSON(http.StatusOK, gin.H{"custom_fields": fields})
}

func (h *PipelineHandler) CreateCustomField(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	var req dto.CustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	field, err := h.customFields.Create(c.Request.Context(), wsID, currentUser(c).ID, toCustomFieldInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, field)
}

func (h *PipelineHandler) UpdateCustomField(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}
	fieldID, ok := pathID(c, "fieldID")
	if !ok {
		return
	}

	var req dto.CustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	field, err := h.customFields.Update(c.Request.Context(), wsID, currentUser(c).ID, fieldID, toCustomFieldInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, field)
}

func (h *PipelineHandler) DeleteCustomField(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}
	fieldID, ok := pathID(c, "fieldID")
	if !ok {
		return
	}

	if err := h.customFields.Delete(c.Request.Context(), wsID, currentUser(c).ID, fieldID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toCustomFieldInput(req dto.CustomFieldRequest) service.CustomFieldInput {
	return service.CustomFieldInput{
		Name:     req.Name,
		Type:     req.Type,
		Required: req.Required,
		Options:  req.Options,
		Position: req.Position,
	}
}
