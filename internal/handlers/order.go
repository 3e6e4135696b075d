// internal/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopfront/ecommerce-backend/internal/i18n"
	"github.com/shopfront/ecommerce-backend/internal/services"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req services.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), caller, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, i18n.T(lang, i18n.KeyOrderCreated), order)
}

// GET /orders/myorders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListMyOrders(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, orders)
}

// GET /orders
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListAllOrders(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, orders)
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), caller, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// PUT /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), caller, orderID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyOrderStatusUpdated), order)
}

// PUT /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), caller, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyOrderCancelled), order)
}

// PUT /orders/:id/review
func (h *OrderHandler) AddReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.AddReview(c.Request.Context(), caller, orderID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyOrderReviewAdded), order)
}

// PUT /orders/:id/complaint
func (h *OrderHandler) AddComplaint(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.ComplaintRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.AddComplaint(c.Request.Context(), caller, orderID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyOrderComplaintFiled), order)
}

// PUT /orders/:id/complaint/status
func (h *OrderHandler) UpdateComplaintStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.ComplaintStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateComplaintStatus(c.Request.Context(), caller, orderID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyOrderComplaintUpdated), order)
}

// DELETE /orders/deleteall
func (h *OrderHandler) DeleteAllOrders(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	deleted, err := h.orderService.DeleteAllOrders(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyOrderAllDeleted), gin.H{"deleted": deleted})
}

// GET /orders/:id/invoice
func (h *OrderHandler) GetInvoice(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.orderService.RenderInvoice(c.Request.Context(), caller, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s", invoice.Filename))
	c.Data(http.StatusOK, "application/pdf", invoice.Content)
}
