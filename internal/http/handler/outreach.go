package handler

import (
	"net/http"

	"funil.app/crm/internal/http/dto"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
	"github.com/gin-gonic/gin"
)

type OutreachHandler struct {
	outreach service.OutreachService
}

func NewOutreachHandler(outreach service.OutreachService) *OutreachHandler {
	return &OutreachHandler{outreach: outreach}
}

// Generate runs the model synchronously. Partial channel failures still
// answer 200 with the failures listed next to the stored batch.
func (h *OutreachHandler) Generate(c *gin.Context) {
	wsID, leadID, ok := leadPath(c)
	if !ok {
		return
	}

	var req dto.GenerateSuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "campaign_id is required")
		return
	}
	for _, ch := range req.Channels {
		if !ch.Valid() {
			badRequest(c, "unknown channel "+string(ch))
			return
		}
	}

	result, err := h.outreach.Generate(c.Request.Context(), wsID, currentUser(c).ID, leadID, req.CampaignID, req.Channels, req.Variations)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *OutreachHandler) List(c *gin.Context) {
	wsID, leadID, ok := leadPath(c)
	if !ok {
		return
	}

	batches, err := h.outreach.GetSuggestions(c.Request.Context(), wsID, currentUser(c).ID, leadID)
	if err != nil {
		respondError(c, err)
		return
	}
	if batches == nil {
		batches = []model.SuggestionBatch{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": batches})
}

func (h *OutreachHandler) MarkViewed(c *gin.Context) {
	wsID, leadID, ok := leadPath(c)
	if !ok {
		return
	}
	campaignID, ok := pathID(c, "campaignID")
	if !ok {
		return
	}

	if err := h.outreach.MarkSuggestionsViewed(c.Request.Context(), wsID, currentUser(c).ID, leadID, campaignID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
