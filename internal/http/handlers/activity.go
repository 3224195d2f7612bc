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

type ActivityHandler struct {
	log      *logger.Logger
	activity services.ActivityService
}

func NewActivityHandler(log *logger.Logger, activity services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		log:      log.With("handler", "ActivityHandler"),
		activity: activity,
	}
}

// GET /api/activities
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	activities, err := h.activity.List(dbc)
	if err != nil {
		respondServiceError(c, h.log, "ListActivities", err)
		return
	}
	response.RespondOK(c, activities)
}

// GET /api/activities/:id
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	activity, err := h.activity.GetByID(dbc, id)
	if err != nil {
		respondServiceError(c, h.log, "GetActivity", err)
		return
	}
	response.RespondOK(c, activity)
}

// GET /api/activities/customer/:customerId
func (h *ActivityHandler) ListActivitiesByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	activities, err := h.activity.ListByCustomer(dbc, customerID)
	if err != nil {
		respondServiceError(c, h.log, "ListActivitiesByCustomer", err)
		return
	}
	response.RespondOK(c, activities)
}

// GET /api/activities/contact/:contactId
func (h *ActivityHandler) ListActivitiesByContact(c *gin.Context) {
	contactID, ok := parseIDParam(c, "contactId")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	activities, err := h.activity.ListByContact(dbc, contactID)
	if err != nil {
		respondServiceError(c, h.log, "ListActivitiesByContact", err)
		return
	}
	response.RespondOK(c, activities)
}

// GET /api/activities/opportunity/:opportunityId
func (h *ActivityHandler) ListActivitiesByOpportunity(c *gin.Context) {
	opportunityID, ok := parseIDParam(c, "opportunityId")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	activities, err := h.activity.ListByOpportunity(dbc, opportunityID)
	if err != nil {
		respondServiceError(c, h.log, "ListActivitiesByOpportunity", err)
		return
	}
	response.RespondOK(c, activities)
}

// GET /api/activities/type/:type
func (h *ActivityHandler) ListActivitiesByType(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	activities, err := h.activity.ListByType(dbc, c.Param("type"))
	if err != nil {
		respondServiceError(c, h.log, "ListActivitiesByType", err)
		return
	}
	response.RespondOK(c, activities)
}

// GET /api/activities/status/:status
func (h *ActivityHandler) ListActivitiesByStatus(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	activities, err := h.activity.ListByStatus(dbc, c.Param("status"))
	if err != nil {
		respondServiceError(c, h.log, "ListActivitiesByStatus", err)
		return
	}
	response.RespondOK(c, activities)
}

// GET /api/activities/date-range?startDate=&endDate=
func (h *ActivityHandler) ListActivitiesScheduledBetween(c *gin.Context) {
	startDate, ok := parseDateTimeQuery(c, "startDate")
	if !ok {
		return
	}
	endDate, ok := parseDateTimeQuery(c, "endDate")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	activities, err := h.activity.ListScheduledBetween(dbc, startDate, endDate)
	if err != nil {
		respondServiceError(c, h.log, "ListActivitiesScheduledBetween", err)
		return
	}
	response.RespondOK(c, activities)
}

// GET /api/activities/recent
func (h *ActivityHandler) ListRecentActivities(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	activities, err := h.activity.ListRecent(dbc)
	if err != nil {
		respondServiceError(c, h.log, "ListRecentActivities", err)
		return
	}
	response.RespondOK(c, activities)
}

// GET /api/activities/upcoming
func (h *ActivityHandler) ListUpcomingActivities(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	activities, err := h.activity.ListUpcoming(dbc)
	if err != nil {
		respondServiceError(c, h.log, "ListUpcomingActivities", err)
		return
	}
	response.RespondOK(c, activities)
}

// POST /api/activities
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var activity types.Activity
	if err := c.ShouldBindJSON(&activity); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	created, err := h.activity.Create(dbc, &activity)
	if err != nil {
		respondServiceError(c, h.log, "CreateActivity", err)
		return
	}
	response.RespondCreated(c, created)
}

// PUT /api/activities/:id
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var activity types.Activity
	if err := c.ShouldBindJSON(&activity); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	updated, err := h.activity.Update(dbc, id, &activity)
	if err != nil {
		respondServiceError(c, h.log, "UpdateActivity", err)
		return
	}
	response.RespondOK(c, updated)
}

// POST /api/activities/:id/complete
func (h *ActivityHandler) CompleteActivity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	completed, err := h.activity.Complete(dbc, id)
	if err != nil {
		respondServiceError(c, h.log, "CompleteActivity", err)
		return
	}
	response.RespondOK(c, completed)
}

// DELETE /api/activities/:id
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	if err := h.activity.Delete(dbc, id); err != nil {
		respondServiceError(c, h.log, "DeleteActivity", err)
		return
	}
	response.RespondNoContent(c)
}
