// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/shopfront/ecommerce-backend/internal/i18n"
	"github.com/shopfront/ecommerce-backend/internal/models"
	"github.com/shopfront/ecommerce-backend/internal/repository"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

const orderNumberPrefix = "ORD-"

type OrderService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	inventory *InventoryService
	invoices  *InvoiceService
	storage   *StorageService
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product"`
	Name      string    `json:"name" validate:"required"`
	Quantity  int       `json:"qty" validate:"min=1"`
	Image     string    `json:"image,omitempty"`
	Price     float64   `json:"price" validate:"min=0"`
}

type CreateOrderRequest struct {
	OrderItems      []OrderItemRequest      `json:"order_items" validate:"dive"`
	ShippingAddress *models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   models.PaymentMethod    `json:"payment_method" validate:"required,payment_method"`
	TotalPrice      float64                 `json:"total_price" validate:"min=0"`
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type ComplaintRequest struct {
	Type    models.ComplaintType `json:"type" validate:"required,complaint_type"`
	Message string               `json:"message" validate:"required,max=2000"`
}

type ComplaintStatusRequest struct {
	Status        models.ComplaintStatus `json:"status" validate:"required,complaint_status"`
	AdminResponse string                 `json:"admin_response" validate:"max=2000"`
}

// Invoice is a rendered order document ready to be served.
type Invoice struct {
	Filename string
	Content  []byte
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	inventory *InventoryService,
	invoices *InvoiceService,
	storage *StorageService,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		inventory: inventory,
		invoices:  invoices,
		storage:   storage,
	}
}

func validationFailed(key string, err error) *Error {
	return &Error{Kind: ErrBadRequest, Key: key, Details: utils.GetValidationErrors(err)}
}

// missingAddressField returns the JSON name of the first required shipping
// field left empty, or "" when all are present.
func missingAddressField(addr *models.ShippingAddress) string {
	if addr == nil {
		return "full_name"
	}
	required := []struct {
		name  string
		value string
	}{
		{"full_name", addr.FullName},
		{"email", addr.Email},
		{"mobile", addr.Mobile},
		{"pincode", addr.Pincode},
		{"city", addr.City},
		{"state", addr.State},
		{"address_line", addr.AddressLine},
		{"address_type", string(addr.AddressType)},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return field.name
		}
	}
	return ""
}

func (s *OrderService) CreateOrder(ctx context.Context, caller Caller, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.CreateOrder")
	defer span.End()

	if len(req.OrderItems) == 0 {
		return nil, badRequest(i18n.KeyOrderNoItems)
	}

	if field := missingAddressField(req.ShippingAddress); field != "" {
		return nil, badRequest(i18n.KeyOrderMissingAddressField, field)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(i18n.KeyOrderInvalid, err)
	}

	for _, item := range req.OrderItems {
		if item.ProductID == uuid.Nil {
			return nil, badRequest(i18n.KeyOrderMissingProduct, item.Name)
		}
	}

	suffix, err := utils.GenerateRandomString(10)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	order := &models.Order{
		OrderNumber:     orderNumberPrefix + strings.ToUpper(suffix),
		UserID:          caller.ID,
		ShippingAddress: *req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		TotalPrice:      req.TotalPrice,
		Status:          models.OrderStatusPlaced,
	}
	for _, item := range req.OrderItems {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Price:     item.Price,
		})
	}

	// Stock is taken before the order exists; a failed reservation leaves no order.
	if err := s.inventory.Reserve(ctx, order.LineItems()); err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		if releaseErr := s.inventory.Release(ctx, order.LineItems()); releaseErr != nil {
			logrus.WithError(releaseErr).WithField("order_number", order.OrderNumber).
				Error("Failed to return stock after order insert failed")
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	span.SetAttributes(attribute.String("order.id", order.ID.String()))
	return order, nil
}

// loadOrder maps a missing order to the NotFound kind.
func (s *OrderService) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(i18n.KeyOrderNotFound)
		}
		return nil, err
	}
	return order, nil
}

func startOrderSpan(ctx context.Context, name string, orderID uuid.UUID) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("order.id", orderID.String())))
}

// UpdateStatus writes any known status. Moving into cancelled returns the
// stock, but only when this call is the one that cancelled the order.
func (s *OrderService) UpdateStatus(ctx context.Context, caller Caller, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	ctx, span := startOrderSpan(ctx, "OrderService.UpdateStatus", orderID)
	defer span.End()

	if !caller.IsAdmin {
		return nil, forbidden(i18n.KeyOrderStatusForbidden)
	}
	if !status.IsValid() {
		return nil, badRequest(i18n.KeyOrderInvalidStatus, status)
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if status != models.OrderStatusCancelled {
		if _, err := s.orders.TransitionStatus(ctx, order.ID, status); err != nil {
			return nil, err
		}
		order.Status = status
		return order, nil
	}

	cancelled, err := s.orders.TransitionStatus(ctx, order.ID, status, models.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	order.Status = status
	if cancelled {
		if err := s.releaseCancelled(ctx, order); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// CancelOrder lets the owner or an admin cancel an order that has not
// shipped. The status write is conditional, so of two racing cancels only
// one returns the stock.
func (s *OrderService) CancelOrder(ctx context.Context, caller Caller, orderID uuid.UUID) (*models.Order, error) {
	ctx, span := startOrderSpan(ctx, "OrderService.CancelOrder", orderID)
	defer span.End()

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !caller.CanActOn(order) {
		return nil, forbidden(i18n.KeyOrderCancelForbidden)
	}

	if !order.Status.Cancellable() {
		return nil, newError(ErrInvalidTransition, i18n.KeyOrderNotCancellable)
	}

	cancelled, err := s.orders.TransitionStatus(ctx, order.ID, models.OrderStatusCancelled,
		models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return nil, newError(ErrInvalidTransition, i18n.KeyOrderNotCancellable)
	}

	order.Status = models.OrderStatusCancelled
	if err := s.releaseCancelled(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// releaseCancelled returns the stock of an order whose cancelled status is
// already stored.
func (s *OrderService) releaseCancelled(ctx context.Context, order *models.Order) error {
	if err := s.inventory.Release(ctx, order.LineItems()); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
		}).Error("Failed to return stock for cancelled order")
		return err
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, caller Caller, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !caller.CanActOn(order) {
		return nil, forbidden(i18n.KeyOrderViewForbidden)
	}
	return order, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, caller Caller) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, caller.ID)
}

func (s *OrderService) ListAllOrders(ctx context.Context, caller Caller) ([]models.Order, error) {
	if !caller.IsAdmin {
		return nil, forbidden(i18n.KeyOrderListForbidden)
	}
	return s.orders.FindAll(ctx)
}

// DeleteAllOrders returns the stock of every order that is not cancelled,
// delivered orders included, then removes all orders.
func (s *OrderService) DeleteAllOrders(ctx context.Context, caller Caller) (int64, error) {
	ctx, span := tracer.Start(ctx, "OrderService.DeleteAllOrders")
	defer span.End()

	if !caller.IsAdmin {
		return 0, forbidden(i18n.KeyOrderDeleteForbidden)
	}

	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	for i := range orders {
		if orders[i].Status == models.OrderStatusCancelled {
			continue
		}
		if err := s.inventory.Release(ctx, orders[i].LineItems()); err != nil {
			return 0, err
		}
	}

	deleted, err := s.orders.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int64("orders.deleted", deleted))
	return deleted, nil
}

// AddReview records the owner's review of a delivered order once, then folds
// the rating into each ordered product still in the catalog.
func (s *OrderService) AddReview(ctx context.Context, caller Caller, orderID uuid.UUID, req *ReviewRequest) (*models.Order, error) {
	ctx, span := startOrderSpan(ctx, "OrderService.AddReview", orderID)
	defer span.End()

	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(i18n.KeyOrderInvalidRating, err)
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !caller.Owns(order) {
		return nil, forbidden(i18n.KeyOrderReviewForbidden)
	}
	if order.Status != models.OrderStatusDelivered {
		return nil, newError(ErrInvalidTransition, i18n.KeyOrderNotDelivered)
	}
	if order.HasReview() {
		return nil, newError(ErrAlreadyExists, i18n.KeyOrderAlreadyReviewed)
	}

	now := time.Now()
	order.Review = models.CustomerReview{
		Rating:     req.Rating,
		Comment:    req.Comment,
		ReviewedAt: &now,
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	reviewed := make(map[uuid.UUID]bool, len(order.Items))
	for _, item := range order.Items {
		if reviewed[item.ProductID] {
			continue
		}
		reviewed[item.ProductID] = true

		if err := s.reviewProduct(ctx, caller, item.ProductID, req); err != nil {
			return nil, err
		}
	}

	return order, nil
}

func (s *OrderService) reviewProduct(ctx context.Context, caller Caller, productID uuid.UUID, req *ReviewRequest) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	product.ApplyRating(req.Rating)
	review := &models.ProductReview{
		UserID:  caller.ID,
		Name:    caller.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	return s.products.AddReview(ctx, product, review)
}

// AddComplaint files a complaint on the owner's order. A new complaint
// replaces any earlier one and starts open.
func (s *OrderService) AddComplaint(ctx context.Context, caller Caller, orderID uuid.UUID, req *ComplaintRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(i18n.KeyOrderInvalidComplaint, err)
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !caller.Owns(order) {
		return nil, forbidden(i18n.KeyOrderComplaintForbidden)
	}

	now := time.Now()
	order.Complaint = models.Complaint{
		HasComplaint: true,
		Type:         req.Type,
		Message:      req.Message,
		Status:       models.ComplaintStatusOpen,
		FiledAt:      &now,
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) UpdateComplaintStatus(ctx context.Context, caller Caller, orderID uuid.UUID, req *ComplaintStatusRequest) (*models.Order, error) {
	if !caller.IsAdmin {
		return nil, forbidden(i18n.KeyOrderComplaintAdminOnly)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(i18n.KeyOrderInvalidComplaintStatus, err)
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Complaint.HasComplaint {
		return nil, notFound(i18n.KeyOrderNoComplaint)
	}
	if !order.Complaint.Status.CanTransitionTo(req.Status) {
		return nil, newError(ErrInvalidTransition, i18n.KeyOrderComplaintTransition, order.Complaint.Status, req.Status)
	}

	order.Complaint.Status = req.Status
	if req.AdminResponse != "" {
		order.Complaint.AdminResponse = req.AdminResponse
	}
	if req.Status.IsFinal() {
		now := time.Now()
		order.Complaint.ResolvedAt = &now
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// RenderInvoice authorizes the caller like GetOrder and renders the order as
// a PDF. When archiving is configured a copy is stored; archive failures are
// logged and do not fail the request.
func (s *OrderService) RenderInvoice(ctx context.Context, caller Caller, orderID uuid.UUID) (*Invoice, error) {
	ctx, span := startOrderSpan(ctx, "OrderService.RenderInvoice", orderID)
	defer span.End()

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !caller.CanActOn(order) {
		return nil, forbidden(i18n.KeyOrderInvoiceForbidden)
	}

	content, err := s.invoices.Render(order)
	if err != nil {
		return nil, err
	}

	if s.storage != nil && s.storage.Enabled() {
		if _, err := s.storage.ArchiveInvoice(ctx, order.OrderNumber, content); err != nil {
			logrus.WithError(err).WithField("order_number", order.OrderNumber).
				Warn("Failed to archive invoice")
		}
	}

	return &Invoice{
		Filename: fmt.Sprintf("invoice_%s.pdf", order.OrderNumber),
		Content:  content,
	}, nil
}
