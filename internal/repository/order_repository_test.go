// internal/repository/order_repository_test.go
package repository

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/ecommerce-backend/internal/models"
)

func (suite *PostgresRepositoryTestSuite) createOrder(number string, productID uuid.UUID) *models.Order {
	user := &models.User{Name: "Asha Rao", Email: number + "@example.com", PasswordHash: "x"}
	require.NoError(suite.T(), suite.users.Create(suite.ctx, user))

	order := &models.Order{
		UserID:        user.ID,
		OrderNumber:   number,
		Status:        models.OrderStatusPlaced,
		PaymentMethod: models.PaymentMethodCOD,
		TotalPrice:    2400,
		Items: []models.OrderItem{
			{ProductID: productID, Name: "Kettle", Quantity: 2, Price: 1200},
		},
	}
	require.NoError(suite.T(), suite.orders.Create(suite.ctx, order))
	return order
}

func (suite *PostgresRepositoryTestSuite) TestOrderUpdateLeavesItemsAndStatus() {
	kettle := suite.createProduct("Kettle", 5)
	order := suite.createOrder("ORD-PG00000001", kettle.ID)

	found, err := suite.orders.FindByID(suite.ctx, order.ID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), found.User)
	assert.Equal(suite.T(), "Asha Rao", found.User.Name)

	found.Status = models.OrderStatusDelivered
	found.Items = nil
	found.Review = models.CustomerReview{Rating: 4, Comment: "Good"}
	require.NoError(suite.T(), suite.orders.Update(suite.ctx, found))

	stored, err := suite.orders.FindByID(suite.ctx, order.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusPlaced, stored.Status)
	assert.Equal(suite.T(), 4, stored.Review.Rating)
	assert.Len(suite.T(), stored.Items, 1)
}

func (suite *PostgresRepositoryTestSuite) TestTransitionStatusIsConditional() {
	kettle := suite.createProduct("Kettle", 5)
	order := suite.createOrder("ORD-PG00000002", kettle.ID)
	unless := []models.OrderStatus{models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled}

	moved, err := suite.orders.TransitionStatus(suite.ctx, order.ID, models.OrderStatusCancelled, unless...)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), moved)

	moved, err = suite.orders.TransitionStatus(suite.ctx, order.ID, models.OrderStatusCancelled, unless...)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), moved)

	require.NoError(suite.T(), suite.db.Exec("UPDATE orders SET status = 'Shipped' WHERE id = ?", order.ID).Error)
	moved, err = suite.orders.TransitionStatus(suite.ctx, order.ID, models.OrderStatusCancelled, unless...)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), moved, "legacy mixed-case statuses are still blocked")

	moved, err = suite.orders.TransitionStatus(suite.ctx, order.ID, models.OrderStatusDelivered)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), moved)

	moved, err = suite.orders.TransitionStatus(suite.ctx, uuid.New(), models.OrderStatusDelivered)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), moved)
}

func (suite *PostgresRepositoryTestSuite) TestDeleteAllRemovesOrdersAndItems() {
	kettle := suite.createProduct("Kettle", 5)
	suite.createOrder("ORD-PG00000003", kettle.ID)
	suite.createOrder("ORD-PG00000004", kettle.ID)

	deleted, err := suite.orders.DeleteAll(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), deleted)

	var items int64
	require.NoError(suite.T(), suite.db.Unscoped().Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(suite.T(), items)

	all, err := suite.orders.FindAll(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), all)

	deleted, err = suite.orders.DeleteAll(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), deleted)
}
