package handler

import (
	"net/http"
	"strconv"

	"funil.app/crm/internal/http/dto"
	"funil.app/crm/internal/model"
	"funil.app/crm/internal/service"
	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	leads      service.LeadService
	promotions service.PromotionService
}

func NewLeadHandler(leads service.LeadService, promotions service.PromotionService) *LeadHandler {
	return &LeadHandler{leads: leads, promotions: promotions}
}

// List returns active leads, or archived ones with ?archived=true.
func (h *LeadHandler) List(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	archived := false
	if raw := c.Query("archived"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "invalid archived flag")
			return
		}
		archived = v
	}

	leads, err := h.leads.List(c.Request.Context(), wsID, currentUser(c).ID, archived)
	if err != nil {
		respondError(c, err)
		return
	}
	respondLeads(c, leads)
}

func (h *LeadHandler) Create(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	var req dto.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	lead, err := h.leads.Create(c.Request.Context(), wsID, currentUser(c).ID, toLeadInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) Get(c *gin.Context) {
	wsID, leadID, ok := leadPath(c)
	if !ok {
		return
	}

	lead, err := h.leads.Get(c.Request.Context(), wsID, currentUser(c).ID, leadID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Update(c *gin.Context) {
	wsID, leadID, ok := leadPath(c)
	if !ok {
		return
	}

	var req dto.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	lead, err := h.leads.Update(c.Request.Context(), wsID, currentUser(c).ID, leadID, toLeadInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// ChangeStage answers 422 with the missing fields when the target stage's
// requirements are not met.
func (h *LeadHandler) ChangeStage(c *gin.Context) {
	wsID, leadID, ok := leadPath(c)
	if !ok {
		return
	}

	var req dto.ChangeStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "stage is required")
		return
	}

	lead, err := h.leads.ChangeStage(c.Request.Context(), wsID, currentUser(c).ID, leadID, req.Stage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Archive(c *gin.Context) {
	wsID, leadID, ok := leadPath(c)
	if !ok {
		return
	}

	lead, err := h.leads.Archive(c.Request.Context(), wsID, currentUser(c).ID, leadID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Restore(c *gin.Context) {
	wsID, leadID, ok := leadPath(c)
	if !ok {
		return
	}

	lead, err := h.leads.Restore(c.Request.Context(), wsID, currentUser(c).ID, leadID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Eligible(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	leads, err := h.promotions.ListEligible(c.Request.Context(), wsID, currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondLeads(c, leads)
}

func (h *LeadHandler) Promote(c *gin.Context) {
	wsID, ok := workspaceID(c)
	if !ok {
		return
	}

	result, err := h.promotions.PromoteEligible(c.Request.Context(), wsID, currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.Leads == nil {
		result.Leads = []model.Lead{}
	}
	c.JSON(http.StatusOK, result)
}

func leadPath(c *gin.Context) (int64, int64, bool) {
	wsID, ok := workspaceID(c)
	if !ok {
		return 0, 0, false
	}
	leadID, ok := pathID(c, "leadID")
	if !ok {
		return 0, 0, false
	}
	return wsID, leadID, true
}

func respondLeads(c *gin.Context, leads []model.Lead) {
	if leads == nil {
		leads = []model.Lead{}
	}
	c.JSON(http.StatusOK, dto.LeadListResponse{Leads: leads})
}

func toLeadInput(req dto.LeadRequest) service.LeadInput {
	return service.LeadInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Position:       req.Position,
		Company:        req.Company,
		Segment:        req.Segment,
		Revenue:        req.Revenue,
		LinkedIn:       req.LinkedIn,
		Notes:          req.Notes,
		Stage:          req.Stage,
		CampaignID:     req.CampaignID,
		ClearCampaign:  req.ClearCampaign,
		ResponsibleIDs: req.ResponsibleIDs,
		CustomValues:   req.CustomValues,
	}
}
