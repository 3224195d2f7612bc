package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/http/response"
	"github.com/vantagecrm/crm-backend/internal/platform/dbctx"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
	"github.com/vantagecrm/crm-backend/internal/services"
)

type ContactHandler struct {
	log     *logger.Logger
	contact services.ContactService
}

func NewContactHandler(log *logger.Logger, contact services.ContactService) *ContactHandler {
	return &ContactHandler{
		log:     log.With("handler", "ContactHandler"),
		contact: contact,
	}
}

// GET /api/contacts
func (h *ContactHandler) ListContacts(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	contacts, err := h.contact.List(dbc)
	if err != nil {
		respondServiceError(c, h.log, "ListContacts", err)
		return
	}
	response.RespondOK(c, contacts)
}

// GET /api/contacts/:id
func (h *ContactHandler) GetContact(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	contact, err := h.contact.GetByID(dbc, id)
	if err != nil {
		respondServiceError(c, h.log, "GetContact", err)
		return
	}
	response.RespondOK(c, contact)
}

// GET /api/contacts/customer/:customerId
func (h *ContactHandler) ListContactsByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	contacts, err := h.contact.ListByCustomer(dbc, customerID)
	if err != nil {
		respondServiceError(c, h.log, "ListContactsByCustomer", err)
		return
	}
	response.RespondOK(c, contacts)
}

// GET /api/contacts/primary?customer_id=
func (h *ContactHandler) ListPrimaryContacts(c *gin.Context) {
	var customerID *uuid.UUID
	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil || id == uuid.Nil {
			response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, fmt.Errorf("invalid customer_id: %q", raw))
			return
		}
		customerID = &id
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	contacts, err := h.contact.ListPrimary(dbc, customerID)
	if err != nil {
		respondServiceError(c, h.log, "ListPrimaryContacts", err)
		return
	}
	response.RespondOK(c, contacts)
}

// GET /api/contacts/search?name=
func (h *ContactHandler) SearchContacts(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	contacts, err := h.contact.SearchByName(dbc, c.Query("name"))
	if err != nil {
		respondServiceError(c, h.log, "SearchContacts", err)
		return
	}
	response.RespondOK(c, contacts)
}

// GET /api/contacts/email?email=
func (h *ContactHandler) GetContactByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, fmt.Errorf("email is required"))
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	contact, err := h.contact.GetByEmail(dbc, email)
	if err != nil {
		respondServiceError(c, h.log, "GetContactByEmail", err)
		return
	}
	response.RespondOK(c, contact)
}

// POST /api/contacts
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var contact types.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	created, err := h.contact.Create(dbc, &contact)
	if err != nil {
		respondServiceError(c, h.log, "CreateContact", err)
		return
	}
	response.RespondCreated(c, created)
}

// PUT /api/contacts/:id
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var contact types.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	updated, err := h.contact.Update(dbc, id, &contact)
	if err != nil {
		respondServiceError(c, h.log, "UpdateContact", err)
		return
	}
	response.RespondOK(c, updated)
}

// DELETE /api/contacts/:id
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	if err := h.contact.Delete(dbc, id); err != nil {
		respondServiceError(c, h.log, "DeleteContact", err)
		return
	}
	response.RespondNoContent(c)
}
