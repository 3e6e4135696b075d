// internal/services/order_service_test.go
package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/shopfront/ecommerce-backend/internal/models"
	"github.com/shopfront/ecommerce-backend/internal/repository"
)

func testAddress() *models.ShippingAddress {
	return &models.ShippingAddress{
		FullName:    "Asha Rao",
		Email:       "asha@example.com",
		Mobile:      "9876543210",
		Pincode:     "560001",
		City:        "Bengaluru",
		State:       "Karnataka",
		AddressLine: "12 MG Road",
		AddressType: models.AddressTypeHome,
	}
}

type OrderTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *repository.MemoryStore
	products repository.ProductRepository
	service  *OrderService

	customer Caller
	other    Caller
	admin    Caller
	kettle   *models.Product
	toaster  *models.Product
}

func (suite *OrderTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = repository.NewMemoryStore()
	suite.products = suite.store.Products()
	suite.service = NewOrderService(
		suite.store.Orders(),
		suite.products,
		NewInventoryService(suite.products),
		NewInvoiceService(""),
		nil,
	)

	customer := &models.User{Name: "Asha Rao", Email: "asha@example.com"}
	require.NoError(suite.T(), suite.store.Users().Create(suite.ctx, customer))
	suite.customer = Caller{ID: customer.ID, Name: customer.Name}
	suite.other = Caller{ID: uuid.New(), Name: "Someone Else"}
	suite.admin = Caller{ID: uuid.New(), Name: "Admin", IsAdmin: true}

	suite.kettle = &models.Product{Name: "Kettle", Category: "Kitchen", Price: 1200, CountInStock: 10}
	suite.toaster = &models.Product{Name: "Toaster", Category: "Kitchen", Price: 2500, CountInStock: 5}
	require.NoError(suite.T(), suite.products.Create(suite.ctx, suite.kettle))
	require.NoError(suite.T(), suite.products.Create(suite.ctx, suite.toaster))
}

func (suite *OrderTestSuite) stock(id uuid.UUID) int {
	product, err := suite.products.FindByID(suite.ctx, id)
	require.NoError(suite.T(), err)
	return product.CountInStock
}

func (suite *OrderTestSuite) orderRequest(kettles, toasters int) *CreateOrderRequest {
	req := &CreateOrderRequest{
		ShippingAddress: testAddress(),
		PaymentMethod:   models.PaymentMethodCOD,
	}
	if kettles > 0 {
		req.OrderItems = append(req.OrderItems, OrderItemRequest{ProductID: suite.kettle.ID, Name: "Kettle", Quantity: kettles, Price: 1200})
		req.TotalPrice += 1200 * float64(kettles)
	}
	if toasters > 0 {
		req.OrderItems = append(req.OrderItems, OrderItemRequest{ProductID: suite.toaster.ID, Name: "Toaster", Quantity: toasters, Price: 2500})
		req.TotalPrice += 2500 * float64(toasters)
	}
	return req
}

func (suite *OrderTestSuite) placeOrder(kettles, toasters int) *models.Order {
	order, err := suite.service.CreateOrder(suite.ctx, suite.customer, suite.orderRequest(kettles, toasters))
	require.NoError(suite.T(), err)
	return order
}

func (suite *OrderTestSuite) setStatus(order *models.Order, status models.OrderStatus) {
	_, err := suite.service.UpdateStatus(suite.ctx, suite.admin, order.ID, status)
	require.NoError(suite.T(), err)
}

func (suite *OrderTestSuite) TestCreateOrderReservesStock() {
	order := suite.placeOrder(2, 1)

	assert.Equal(suite.T(), models.OrderStatusPlaced, order.Status)
	assert.Equal(suite.T(), suite.customer.ID, order.UserID)
	assert.Len(suite.T(), order.Items, 2)
	assert.True(suite.T(), strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Len(suite.T(), order.OrderNumber, 14)
	assert.Equal(suite.T(), strings.ToUpper(order.OrderNumber), order.OrderNumber)
	assert.Equal(suite.T(), 8, suite.stock(suite.kettle.ID))
	assert.Equal(suite.T(), 4, suite.stock(suite.toaster.ID))

	stored, err := suite.service.GetOrder(suite.ctx, suite.customer, order.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), order.OrderNumber, stored.OrderNumber)
}

func (suite *OrderTestSuite) TestCreateOrderRejectsEmptyItems() {
	_, err := suite.service.CreateOrder(suite.ctx, suite.customer, suite.orderRequest(0, 0))

	assert.ErrorIs(suite.T(), err, ErrBadRequest)
	assert.Equal(suite.T(), "No order items", err.Error())
}

func (suite *OrderTestSuite) TestCreateOrderRejectsMissingAddressField() {
	req := suite.orderRequest(1, 0)
	req.ShippingAddress.Pincode = ""

	_, err := suite.service.CreateOrder(suite.ctx, suite.customer, req)

	assert.ErrorIs(suite.T(), err, ErrBadRequest)
	assert.Equal(suite.T(), "Missing pincode in shipping address", err.Error())
	assert.Equal(suite.T(), 10, suite.stock(suite.kettle.ID))
}

func (suite *OrderTestSuite) TestCreateOrderRejectsUnknownPaymentMethod() {
	req := suite.orderRequest(1, 0)
	req.PaymentMethod = "Barter"

	_, err := suite.service.CreateOrder(suite.ctx, suite.customer, req)

	var domainErr *Error
	require.ErrorAs(suite.T(), err, &domainErr)
	assert.ErrorIs(suite.T(), err, ErrBadRequest)
	assert.NotNil(suite.T(), domainErr.Details)
}

func (suite *OrderTestSuite) TestCreateOrderInsufficientStockLeavesNoOrder() {
	_, err := suite.service.CreateOrder(suite.ctx, suite.customer, suite.orderRequest(0, 6))

	assert.ErrorIs(suite.T(), err, ErrInsufficientStock)
	orders, err := suite.service.ListMyOrders(suite.ctx, suite.customer)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), orders)
	assert.Equal(suite.T(), 5, suite.stock(suite.toaster.ID))
}

func (suite *OrderTestSuite) TestCancelOrderRestoresStockOnce() {
	order := suite.placeOrder(3, 0)

	cancelled, err := suite.service.CancelOrder(suite.ctx, suite.customer, order.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(suite.T(), 10, suite.stock(suite.kettle.ID))

	_, err = suite.service.CancelOrder(suite.ctx, suite.customer, order.ID)
	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
	assert.Equal(suite.T(), "Cannot cancel this order", err.Error())
	assert.Equal(suite.T(), 10, suite.stock(suite.kettle.ID))
}

func (suite *OrderTestSuite) TestCancelOrderRefusedOnceShipped() {
	order := suite.placeOrder(1, 0)
	suite.setStatus(order, models.OrderStatusShipped)

	_, err := suite.service.CancelOrder(suite.ctx, suite.customer, order.ID)

	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
	assert.Equal(suite.T(), 9, suite.stock(suite.kettle.ID))
}

func (suite *OrderTestSuite) TestCancelOrderOwnership() {
	order := suite.placeOrder(1, 0)

	_, err := suite.service.CancelOrder(suite.ctx, suite.other, order.ID)
	assert.ErrorIs(suite.T(), err, ErrForbidden)

	_, err = suite.service.CancelOrder(suite.ctx, suite.admin, order.ID)
	assert.NoError(suite.T(), err)
}

func (suite *OrderTestSuite) TestCancelOrderNotFound() {
	_, err := suite.service.CancelOrder(suite.ctx, suite.customer, uuid.New())

	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *OrderTestSuite) TestUpdateStatusRequiresAdmin() {
	order := suite.placeOrder(1, 0)

	_, err := suite.service.UpdateStatus(suite.ctx, suite.customer, order.ID, models.OrderStatusShipped)

	assert.ErrorIs(suite.T(), err, ErrForbidden)
}

func (suite *OrderTestSuite) TestUpdateStatusRejectsUnknownStatus() {
	order := suite.placeOrder(1, 0)

	_, err := suite.service.UpdateStatus(suite.ctx, suite.admin, order.ID, "lost")

	assert.ErrorIs(suite.T(), err, ErrBadRequest)
}

func (suite *OrderTestSuite) TestUpdateStatusToCancelledRestoresStockOnce() {
	order := suite.placeOrder(4, 0)

	suite.setStatus(order, models.OrderStatusCancelled)
	assert.Equal(suite.T(), 10, suite.stock(suite.kettle.ID))

	suite.setStatus(order, models.OrderStatusCancelled)
	assert.Equal(suite.T(), 10, suite.stock(suite.kettle.ID))
}

func (suite *OrderTestSuite) TestUpdateStatusIsPermissive() {
	order := suite.placeOrder(1, 0)
	suite.setStatus(order, models.OrderStatusDelivered)
	suite.setStatus(order, models.OrderStatusProcessing)

	stored, err := suite.service.GetOrder(suite.ctx, suite.admin, order.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusProcessing, stored.Status)
}

func (suite *OrderTestSuite) TestGetOrderAccess() {
	order := suite.placeOrder(1, 0)

	_, err := suite.service.GetOrder(suite.ctx, suite.other, order.ID)
	assert.ErrorIs(suite.T(), err, ErrForbidden)

	fetched, err := suite.service.GetOrder(suite.ctx, suite.admin, order.ID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), fetched.User)
	assert.Equal(suite.T(), "asha@example.com", fetched.User.Email)

	_, err = suite.service.GetOrder(suite.ctx, suite.customer, uuid.New())
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *OrderTestSuite) TestListAllOrdersRequiresAdmin() {
	suite.placeOrder(1, 0)

	_, err := suite.service.ListAllOrders(suite.ctx, suite.customer)
	assert.ErrorIs(suite.T(), err, ErrForbidden)

	orders, err := suite.service.ListAllOrders(suite.ctx, suite.admin)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), orders, 1)
}

func (suite *OrderTestSuite) TestDeleteAllOrdersReturnsOutstandingStock() {
	suite.placeOrder(2, 0)
	delivered := suite.placeOrder(1, 1)
	cancelled := suite.placeOrder(3, 0)
	suite.setStatus(delivered, models.OrderStatusDelivered)
	_, err := suite.service.CancelOrder(suite.ctx, suite.customer, cancelled.ID)
	require.NoError(suite.T(), err)

	_, err = suite.service.DeleteAllOrders(suite.ctx, suite.customer)
	assert.ErrorIs(suite.T(), err, ErrForbidden)

	deleted, err := suite.service.DeleteAllOrders(suite.ctx, suite.admin)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), deleted)
	assert.Equal(suite.T(), 10, suite.stock(suite.kettle.ID))
	assert.Equal(suite.T(), 5, suite.stock(suite.toaster.ID))

	orders, err := suite.service.ListAllOrders(suite.ctx, suite.admin)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), orders)
}

func (suite *OrderTestSuite) TestAddReviewRequiresDelivery() {
	order := suite.placeOrder(1, 0)

	_, err := suite.service.AddReview(suite.ctx, suite.customer, order.ID, &ReviewRequest{Rating: 5})

	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
}

func (suite *OrderTestSuite) TestAddReviewUpdatesProductsOnce() {
	order := suite.placeOrder(1, 1)
	suite.setStatus(order, models.OrderStatusDelivered)

	reviewed, err := suite.service.AddReview(suite.ctx, suite.customer, order.ID, &ReviewRequest{Rating: 4, Comment: "Works well"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 4, reviewed.Review.Rating)
	assert.NotNil(suite.T(), reviewed.Review.ReviewedAt)

	kettle, err := suite.products.FindByID(suite.ctx, suite.kettle.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, kettle.NumReviews)
	assert.Equal(suite.T(), 4.0, kettle.Rating)
	require.Len(suite.T(), kettle.Reviews, 1)
	assert.Equal(suite.T(), "Asha Rao", kettle.Reviews[0].Name)

	_, err = suite.service.AddReview(suite.ctx, suite.customer, order.ID, &ReviewRequest{Rating: 1})
	assert.ErrorIs(suite.T(), err, ErrAlreadyExists)

	kettle, err = suite.products.FindByID(suite.ctx, suite.kettle.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, kettle.NumReviews)
}

func (suite *OrderTestSuite) TestAddReviewSkipsDeletedProducts() {
	order := suite.placeOrder(1, 1)
	suite.setStatus(order, models.OrderStatusDelivered)
	require.NoError(suite.T(), suite.products.Delete(suite.ctx, suite.toaster.ID))

	_, err := suite.service.AddReview(suite.ctx, suite.customer, order.ID, &ReviewRequest{Rating: 5})

	assert.NoError(suite.T(), err)
}

func (suite *OrderTestSuite) TestAddReviewValidation() {
	order := suite.placeOrder(1, 0)
	suite.setStatus(order, models.OrderStatusDelivered)

	_, err := suite.service.AddReview(suite.ctx, suite.customer, order.ID, &ReviewRequest{Rating: 6})
	assert.ErrorIs(suite.T(), err, ErrBadRequest)

	_, err = suite.service.AddReview(suite.ctx, suite.admin, order.ID, &ReviewRequest{Rating: 5})
	assert.ErrorIs(suite.T(), err, ErrForbidden)
}

func (suite *OrderTestSuite) TestComplaintLifecycle() {
	order := suite.placeOrder(1, 0)

	filed, err := suite.service.AddComplaint(suite.ctx, suite.customer, order.ID, &ComplaintRequest{
		Type:    models.ComplaintTypeDelay,
		Message: "Still waiting",
	})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), filed.Complaint.HasComplaint)
	assert.Equal(suite.T(), models.ComplaintStatusOpen, filed.Complaint.Status)
	assert.NotNil(suite.T(), filed.Complaint.FiledAt)

	_, err = suite.service.UpdateComplaintStatus(suite.ctx, suite.admin, order.ID, &ComplaintStatusRequest{Status: models.ComplaintStatusResolved})
	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)

	inProgress, err := suite.service.UpdateComplaintStatus(suite.ctx, suite.admin, order.ID, &ComplaintStatusRequest{
		Status:        models.ComplaintStatusInProgress,
		AdminResponse: "Looking into it",
	})
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), inProgress.Complaint.ResolvedAt)

	resolved, err := suite.service.UpdateComplaintStatus(suite.ctx, suite.admin, order.ID, &ComplaintStatusRequest{Status: models.ComplaintStatusResolved})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ComplaintStatusResolved, resolved.Complaint.Status)
	assert.Equal(suite.T(), "Looking into it", resolved.Complaint.AdminResponse)
	assert.NotNil(suite.T(), resolved.Complaint.ResolvedAt)
}

func (suite *OrderTestSuite) TestComplaintAccess() {
	order := suite.placeOrder(1, 0)

	_, err := suite.service.AddComplaint(suite.ctx, suite.other, order.ID, &ComplaintRequest{
		Type:    models.ComplaintTypeOther,
		Message: "Not mine",
	})
	assert.ErrorIs(suite.T(), err, ErrForbidden)

	_, err = suite.service.AddComplaint(suite.ctx, suite.customer, order.ID, &ComplaintRequest{
		Type:    "Rude courier",
		Message: "He was rude",
	})
	assert.ErrorIs(suite.T(), err, ErrBadRequest)

	_, err = suite.service.UpdateComplaintStatus(suite.ctx, suite.admin, order.ID, &ComplaintStatusRequest{Status: models.ComplaintStatusInProgress})
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	_, err = suite.service.UpdateComplaintStatus(suite.ctx, suite.customer, order.ID, &ComplaintStatusRequest{Status: models.ComplaintStatusInProgress})
	assert.ErrorIs(suite.T(), err, ErrForbidden)
}

func (suite *OrderTestSuite) TestRenderInvoice() {
	order := suite.placeOrder(1, 1)

	invoice, err := suite.service.RenderInvoice(suite.ctx, suite.customer, order.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "invoice_"+order.OrderNumber+".pdf", invoice.Filename)
	assert.True(suite.T(), bytes.HasPrefix(invoice.Content, []byte("%PDF")))

	_, err = suite.service.RenderInvoice(suite.ctx, suite.other, order.ID)
	assert.ErrorIs(suite.T(), err, ErrForbidden)
}

// staleOrders serves every order with the status it had when the test
// captured it, as a reader racing a concurrent status change would see.
type staleOrders struct {
	repository.OrderRepository
	status models.OrderStatus
}

func (r *staleOrders) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := r.OrderRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = r.status
	return order, nil
}

func (suite *OrderTestSuite) TestConcurrentCancelsRestoreStockOnce() {
	order := suite.placeOrder(3, 1)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		refused   int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.service.CancelOrder(suite.ctx, suite.customer, order.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if errors.Is(err, ErrInvalidTransition) {
				refused++
			}
		}()
	}
	wg.Wait()

	assert.Equal(suite.T(), 1, succeeded)
	assert.Equal(suite.T(), callers-1, refused)
	assert.Equal(suite.T(), 10, suite.stock(suite.kettle.ID))
	assert.Equal(suite.T(), 5, suite.stock(suite.toaster.ID))
}

func (suite *OrderTestSuite) TestCancelOrderChecksStoredStatus() {
	order := suite.placeOrder(2, 0)
	suite.setStatus(order, models.OrderStatusShipped)

	stale := NewOrderService(
		&staleOrders{OrderRepository: suite.store.Orders(), status: models.OrderStatusPlaced},
		suite.products,
		NewInventoryService(suite.products),
		NewInvoiceService(""),
		nil,
	)

	_, err := stale.CancelOrder(suite.ctx, suite.customer, order.ID)
	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
	assert.Equal(suite.T(), 8, suite.stock(suite.kettle.ID))

	stored, err := suite.service.GetOrder(suite.ctx, suite.customer, order.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusShipped, stored.Status)
}

func (suite *OrderTestSuite) TestUpdateStatusToCancelledFromStaleReadReleasesOnce() {
	order := suite.placeOrder(2, 0)
	suite.setStatus(order, models.OrderStatusCancelled)
	require.Equal(suite.T(), 10, suite.stock(suite.kettle.ID))

	stale := NewOrderService(
		&staleOrders{OrderRepository: suite.store.Orders(), status: models.OrderStatusPlaced},
		suite.products,
		NewInventoryService(suite.products),
		NewInvoiceService(""),
		nil,
	)

	updated, err := stale.UpdateStatus(suite.ctx, suite.admin, order.ID, models.OrderStatusCancelled)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusCancelled, updated.Status)
	assert.Equal(suite.T(), 10, suite.stock(suite.kettle.ID))
}

func (suite *OrderTestSuite) TestComplaintDoesNotRevertStatus() {
	order := suite.placeOrder(1, 0)
	suite.setStatus(order, models.OrderStatusDelivered)

	stale := NewOrderService(
		&staleOrders{OrderRepository: suite.store.Orders(), status: models.OrderStatusDelivered},
		suite.products,
		NewInventoryService(suite.products),
		NewInvoiceService(""),
		nil,
	)
	suite.setStatus(order, models.OrderStatusProcessing)

	_, err := stale.AddComplaint(suite.ctx, suite.customer, order.ID, &ComplaintRequest{Type: models.ComplaintTypeDelay, Message: "Late"})
	require.NoError(suite.T(), err)

	stored, err := suite.service.GetOrder(suite.ctx, suite.customer, order.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusProcessing, stored.Status)
}

func (suite *OrderTestSuite) TestAddReviewCountsRepeatedProductOnce() {
	req := suite.orderRequest(1, 0)
	req.OrderItems = append(req.OrderItems, OrderItemRequest{ProductID: suite.kettle.ID, Name: "Kettle", Quantity: 2, Price: 1200})
	req.TotalPrice += 2400
	order, err := suite.service.CreateOrder(suite.ctx, suite.customer, req)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), order.Items, 2)
	assert.Equal(suite.T(), 7, suite.stock(suite.kettle.ID))
	suite.setStatus(order, models.OrderStatusDelivered)

	_, err = suite.service.AddReview(suite.ctx, suite.customer, order.ID, &ReviewRequest{Rating: 3})
	require.NoError(suite.T(), err)

	kettle, err := suite.products.FindByID(suite.ctx, suite.kettle.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, kettle.NumReviews)
	assert.Equal(suite.T(), 3.0, kettle.Rating)
	assert.Len(suite.T(), kettle.Reviews, 1)
}

func (suite *OrderTestSuite) TestCreateOrderAcceptsFreeFormContactFields() {
	req := suite.orderRequest(1, 0)
	req.ShippingAddress.Email = "asha at example"
	req.ShippingAddress.Mobile = "12345"
	req.ShippingAddress.Pincode = "0600"

	order, err := suite.service.CreateOrder(suite.ctx, suite.customer, req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "12345", order.ShippingAddress.Mobile)
	assert.Equal(suite.T(), "0600", order.ShippingAddress.Pincode)
}

func TestOrderSuite(t *testing.T) {
	suite.Run(t, new(OrderTestSuite))
}
