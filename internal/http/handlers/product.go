package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/vantagecrm/crm-backend/internal/domain"
	"github.com/vantagecrm/crm-backend/internal/http/response"
	"github.com/vantagecrm/crm-backend/internal/platform/dbctx"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
	"github.com/vantagecrm/crm-backend/internal/services"
)

type ProductHandler struct {
	log     *logger.Logger
	product services.ProductService
}

func NewProductHandler(log *logger.Logger, product services.ProductService) *ProductHandler {
	return &ProductHandler{
		log:     log.With("handler", "ProductHandler"),
		product: product,
	}
}

// GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	products, err := h.product.List(dbc)
	if err != nil {
		respondServiceError(c, h.log, "ListProducts", err)
		return
	}
	response.RespondOK(c, products)
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	product, err := h.product.GetByID(dbc, id)
	if err != nil {
		respondServiceError(c, h.log, "GetProduct", err)
		return
	}
	response.RespondOK(c, product)
}

// GET /api/products/code/:code
func (h *ProductHandler) GetProductByCode(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	product, err := h.product.GetByCode(dbc, c.Param("code"))
	if err != nil {
		respondServiceError(c, h.log, "GetProductByCode", err)
		return
	}
	response.RespondOK(c, product)
}

// GET /api/products/search?name=
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	products, err := h.product.SearchByName(dbc, c.Query("name"))
	if err != nil {
		respondServiceError(c, h.log, "SearchProducts", err)
		return
	}
	response.RespondOK(c, products)
}

// GET /api/products/category/:category
func (h *ProductHandler) ListProductsByCategory(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	products, err := h.product.ListByCategory(dbc, c.Param("category"))
	if err != nil {
		respondServiceError(c, h.log, "ListProductsByCategory", err)
		return
	}
	response.RespondOK(c, products)
}

// GET /api/products/status/:status
func (h *ProductHandler) ListProductsByStatus(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	products, err := h.product.ListByStatus(dbc, c.Param("status"))
	if err != nil {
		respondServiceError(c, h.log, "ListProductsByStatus", err)
		return
	}
	response.RespondOK(c, products)
}

// GET /api/products/price/max?maxPrice=
func (h *ProductHandler) ListProductsUnderPrice(c *gin.Context) {
	maxPrice, ok := parseDecimalQuery(c, "maxPrice")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	products, err := h.product.ListUnderPrice(dbc, maxPrice)
	if err != nil {
		respondServiceError(c, h.log, "ListProductsUnderPrice", err)
		return
	}
	response.RespondOK(c, products)
}

// GET /api/products/price/range?minPrice=&maxPrice=
func (h *ProductHandler) ListProductsInPriceRange(c *gin.Context) {
	minPrice, ok := parseDecimalQuery(c, "minPrice")
	if !ok {
		return
	}
	maxPrice, ok := parseDecimalQuery(c, "maxPrice")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	products, err := h.product.ListInPriceRange(dbc, minPrice, maxPrice)
	if err != nil {
		respondServiceError(c, h.log, "ListProductsInPriceRange", err)
		return
	}
	response.RespondOK(c, products)
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product types.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	created, err := h.product.Create(dbc, &product)
	if err != nil {
		respondServiceError(c, h.log, "CreateProduct", err)
		return
	}
	response.RespondCreated(c, created)
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var product types.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	updated, err := h.product.Update(dbc, id, &product)
	if err != nil {
		respondServiceError(c, h.log, "UpdateProduct", err)
		return
	}
	response.RespondOK(c, updated)
}

// PATCH /api/products/:id/status?status=
func (h *ProductHandler) UpdateProductStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	status := c.Query("status")
	if status == "" {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, fmt.Errorf("status is required"))
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	updated, err := h.product.UpdateStatus(dbc, id, status)
	if err != nil {
		respondServiceError(c, h.log, "UpdateProductStatus", err)
		return
	}
	response.RespondOK(c, updated)
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	if err := h.product.Delete(dbc, id); err != nil {
		respondServiceError(c, h.log, "DeleteProduct", err)
		return
	}
	response.RespondNoContent(c)
}
