package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/http/response"
	"github.com/vantagecrm/crm-backend/internal/platform/dbctx"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
	"github.com/vantagecrm/crm-backend/internal/services"
)

type OpportunityHandler struct {
	log         *logger.Logger
	opportunity services.OpportunityService
}

func NewOpportunityHandler(log *logger.Logger, opportunity services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{
		log:         log.With("handler", "OpportunityHandler"),
		opportunity: opportunity,
	}
}

// GET /api/opportunities
func (h *OpportunityHandler) ListOpportunities(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	opportunities, err := h.opportunity.List(dbc)
	if err != nil {
		respondServiceError(c, h.log, "ListOpportunities", err)
		return
	}
	response.RespondOK(c, opportunities)
}

// GET /api/opportunities/:id
func (h *OpportunityHandler) GetOpportunity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	opportunity, err := h.opportunity.GetByID(dbc, id)
	if err != nil {
		respondServiceError(c, h.log, "GetOpportunity", err)
		return
	}
	response.RespondOK(c, opportunity)
}

// GET /api/opportunities/customer/:customerId
func (h *OpportunityHandler) ListOpportunitiesByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	opportunities, err := h.opportunity.ListByCustomer(dbc, customerID)
	if err != nil {
		respondServiceError(c, h.log, "ListOpportunitiesByCustomer", err)
		return
	}
	response.RespondOK(c, opportunities)
}

// GET /api/opportunities/status/:status
func (h *OpportunityHandler) ListOpportunitiesByStatus(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	opportunities, err := h.opportunity.ListByStatus(dbc, c.Param("status"))
	if err != nil {
		respondServiceError(c, h.log, "ListOpportunitiesByStatus", err)
		return
	}
	response.RespondOK(c, opportunities)
}

// GET /api/opportunities/stage/:stage
func (h *OpportunityHandler) ListOpportunitiesByStage(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	opportunities, err := h.opportunity.ListByStage(dbc, c.Param("stage"))
	if err != nil {
		respondServiceError(c, h.log, "ListOpportunitiesByStage", err)
		return
	}
	response.RespondOK(c, opportunities)
}

// GET /api/opportunities/closing-date-range?startDate=&endDate=
func (h *OpportunityHandler) ListOpportunitiesClosingBetween(c *gin.Context) {
	startDate, ok := parseDateQuery(c, "startDate")
	if !ok {
		return
	}
	endDate, ok := parseDateQuery(c, "endDate")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	opportunities, err := h.opportunity.ListClosingBetween(dbc, startDate, endDate)
	if err != nil {
		respondServiceError(c, h.log, "ListOpportunitiesClosingBetween", err)
		return
	}
	response.RespondOK(c, opportunities)
}

// GET /api/opportunities/high-value?threshold=
func (h *OpportunityHandler) ListHighValueOpportunities(c *gin.Context) {
	threshold, ok := parseDecimalQuery(c, "threshold")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	opportunities, err := h.opportunity.ListHighValue(dbc, threshold)
	if err != nil {
		respondServiceError(c, h.log, "ListHighValueOpportunities", err)
		return
	}
	response.RespondOK(c, opportunities)
}

// GET /api/opportunities/value/status/:status
func (h *OpportunityHandler) TotalValueByStatus(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	total, err := h.opportunity.TotalValueByStatus(dbc, c.Param("status"))
	if err != nil {
		respondServiceError(c, h.log, "TotalValueByStatus", err)
		return
	}
	response.RespondOK(c, total)
}

// POST /api/opportunities
func (h *OpportunityHandler) CreateOpportunity(c *gin.Context) {
	var opportunity types.Opportunity
	if err := c.ShouldBindJSON(&opportunity); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	created, err := h.opportunity.Create(dbc, &opportunity)
	if err != nil {
		respondServiceError(c, h.log, "CreateOpportunity", err)
		return
	}
	response.RespondCreated(c, created)
}

// PUT /api/opportunities/:id
func (h *OpportunityHandler) UpdateOpportunity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var opportunity types.Opportunity
	if err := c.ShouldBindJSON(&opportunity); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	updated, err := h.opportunity.Update(dbc, id, &opportunity)
	if err != nil {
		respondServiceError(c, h.log, "UpdateOpportunity", err)
		return
	}
	response.RespondOK(c, updated)
}

// DELETE /api/opportunities/:id
func (h *OpportunityHandler) DeleteOpportunity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	if err := h.opportunity.Delete(dbc, id); err != nil {
		respondServiceError(c, h.log, "DeleteOpportunity", err)
		return
	}
	response.RespondNoContent(c)
}
