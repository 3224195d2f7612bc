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

type CustomerHandler struct {
	log      *logger.Logger
	customer services.CustomerService
}

func NewCustomerHandler(log *logger.Logger, customer services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		log:      log.With("handler", "CustomerHandler"),
		customer: customer,
	}
}

// GET /api/customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	customers, err := h.customer.List(dbc)
	if err != nil {
		respondServiceError(c, h.log, "ListCustomers", err)
		return
	}
	response.RespondOK(c, customers)
}

// GET /api/customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	customer, err := h.customer.GetByID(dbc, id)
	if err != nil {
		respondServiceError(c, h.log, "GetCustomer", err)
		return
	}
	response.RespondOK(c, customer)
}

// GET /api/customers/search?name=|status=|industry=
// The first populated parameter wins, in that order; none means list all.
func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}

	var (
		customers []*types.Customer
		err       error
	)
	switch {
	case c.Query("name") != "":
		customers, err = h.customer.SearchByName(dbc, c.Query("name"))
	case c.Query("status") != "":
		customers, err = h.customer.ListByStatus(dbc, c.Query("status"))
	case c.Query("industry") != "":
		customers, err = h.customer.ListByIndustry(dbc, c.Query("industry"))
	default:
		customers, err = h.customer.List(dbc)
	}
	if err != nil {
		respondServiceError(c, h.log, "SearchCustomers", err)
		return
	}
	response.RespondOK(c, customers)
}

// POST /api/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var customer types.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	created, err := h.customer.Create(dbc, &customer)
	if err != nil {
		respondServiceError(c, h.log, "CreateCustomer", err)
		return
	}
	response.RespondCreated(c, created)
}

// PUT /api/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var customer types.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	updated, err := h.customer.Update(dbc, id, &customer)
	if err != nil {
		respondServiceError(c, h.log, "UpdateCustomer", err)
		return
	}
	response.RespondOK(c, updated)
}

// DELETE /api/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	if err := h.customer.Delete(dbc, id); err != nil {
		respondServiceError(c, h.log, "DeleteCustomer", err)
		return
	}
	response.RespondNoContent(c)
}
