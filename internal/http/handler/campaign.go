package handler

import (
	"net/http"

	"funil.app/crm/internal/http/dto"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	campaigns service.CampaignService
}

func NewCampaignHandler(campaigns service.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

func (h *CampaignHandler) List(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	list, err := h.campaigns.List(c.Request.Context(), wsID, currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []model.Campaign{}
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": list})
}

func (h *CampaignHandler) Create(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	var req dto.CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	campaign, err := h.campaigns.Create(c.Request.Context(), wsID, currentUser(c).ID, toCampaignInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

func (h *CampaignHandler) Get(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}
	campaignID, ok := pathID(c, "campaignID")
	if !ok {
		return
	}

	campaign, err := h.campaigns.Get(c.Request.Context(), wsID, currentUser(c).ID, campaignID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *CampaignHandler) Update(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}
	campaignID, ok := pathID(c, "campaignID")
	if !ok {
		return
	}

	var req dto.CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	campaign, err := h.campaigns.Update(c.Request.Context(), wsID, currentUser(c).ID, campaignID, toCampaignInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func toCampaignInput(req dto.CampaignRequest) service.CampaignInput {
	return service.CampaignInput{
		Name:           req.Name,
		Context:        req.Context,
		VoiceTone:      req.VoiceTone,
		AIInstructions: req.AIInstructions,
		Status:         req.Status,
		TriggerStage:   req.TriggerStage,
	}
}
