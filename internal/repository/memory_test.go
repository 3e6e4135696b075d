// internal/repository/memory_test.go
package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/ecommerce-backend/internal/models"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

func TestMemoryDecrementStockIsConditional(t *testing.T) {
	ctx := context.Background()
	products := NewMemoryStore().Products()

	product := &models.Product{Name: "Kettle", Price: 1200, CountInStock: 3}
	require.NoError(t, products.Create(ctx, product))

	ok, err := products.DecrementStock(ctx, product.ID, 4)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = products.DecrementStock(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = products.DecrementStock(ctx, uuid.New(), 1)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.CountInStock)
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	products := NewMemoryStore().Products()

	product := &models.Product{Name: "Kettle", Price: 1200, CountInStock: 3, Images: []string{"a.png"}}
	require.NoError(t, products.Create(ctx, product))

	found, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	found.CountInStock = 99
	found.Images[0] = "changed.png"

	again, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, again.CountInStock)
	assert.Equal(t, "a.png", again.Images[0])
}

func TestMemoryProductList(t *testing.T) {
	ctx := context.Background()
	products := NewMemoryStore().Products()

	for _, p := range []models.Product{
		{Name: "Steel Kettle", Brand: "Prestige", Category: "Kitchen", Price: 1200},
		{Name: "Desk Lamp", Brand: "Philips", Category: "Lighting", Price: 800},
		{Name: "Toaster", Brand: "Prestige", Category: "Kitchen", Price: 2500},
	} {
		p := p
		require.NoError(t, products.Create(ctx, &p))
	}

	page, total, err := products.List(ctx, utils.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, "Toaster", page[0].Name, "newest first")

	page, total, err = products.List(ctx, utils.PaginationParams{Page: 1, Limit: 10, Search: "prestige", Sort: "price", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Steel Kettle", page[0].Name)

	page, _, err = products.List(ctx, utils.PaginationParams{Page: 5, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestMemoryOrders(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	user := &models.User{Name: "Asha Rao", Email: "asha@example.com"}
	require.NoError(t, store.Users().Create(ctx, user))

	order := &models.Order{
		UserID:      user.ID,
		OrderNumber: "ORD-0000000001",
		Status:      models.OrderStatusPlaced,
		Items:       []models.OrderItem{{ProductID: uuid.New(), Name: "Kettle", Quantity: 1}},
	}
	require.NoError(t, store.Orders().Create(ctx, order))
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, order.ID, order.Items[0].OrderID)

	found, err := store.Orders().FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found.User)
	assert.Equal(t, "asha@example.com", found.User.Email)

	found.Status = models.OrderStatusShipped
	found.Items = nil
	found.Review = models.CustomerReview{Rating: 4}
	require.NoError(t, store.Orders().Update(ctx, found))

	updated, err := store.Orders().FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPlaced, updated.Status, "status only moves through TransitionStatus")
	assert.Equal(t, 4, updated.Review.Rating)
	assert.Len(t, updated.Items, 1, "items are not rewritten by Update")

	mine, err := store.Orders().FindByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	deleted, err := store.Orders().DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = store.Orders().FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryTransitionStatus(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryStore().Orders()

	order := &models.Order{OrderNumber: "ORD-0000000002", Status: "Shipped"}
	require.NoError(t, orders.Create(ctx, order))

	moved, err := orders.TransitionStatus(ctx, order.ID, models.OrderStatusCancelled,
		models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.False(t, moved, "blocked statuses compare case-insensitively")

	moved, err = orders.TransitionStatus(ctx, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.True(t, moved)

	moved, err = orders.TransitionStatus(ctx, uuid.New(), models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.False(t, moved)

	found, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, found.Status)
}

func TestMemoryDeleteForgetsProduct(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	products := store.Products()

	kettle := &models.Product{Name: "Kettle", Price: 1200}
	lamp := &models.Product{Name: "Lamp", Price: 800}
	require.NoError(t, products.Create(ctx, kettle))
	require.NoError(t, products.Create(ctx, lamp))

	require.NoError(t, products.Delete(ctx, kettle.ID))
	assert.ErrorIs(t, products.Delete(ctx, kettle.ID), ErrNotFound)

	assert.Equal(t, []uuid.UUID{lamp.ID}, store.productSeq)
	page, total, err := products.List(ctx, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, page, 1)
	assert.Equal(t, "Lamp", page[0].Name)
}
