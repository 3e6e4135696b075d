// internal/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopfront/ecommerce-backend/internal/i18n"
	"github.com/shopfront/ecommerce-backend/internal/services"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	page, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SetPaginationHeaders(c, utils.CreatePaginationResult(nil, page.Total, params))
	utils.SuccessResponse(c, page)
}

// GET /products/all
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	products, err := h.productService.ListAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, i18n.T(lang, i18n.KeyProductCreated), product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyProductUpdated), product)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyProductDeleted), nil)
}
