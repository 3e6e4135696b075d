// internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shopfront/ecommerce-backend/internal/models"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

// ErrNotFound is returned by every lookup that matches no record.
var ErrNotFound = errors.New("record not found")

// ProductRepository reads and writes product documents.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	// FindByID loads the product with its reviews.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, params utils.PaginationParams) ([]models.Product, int64, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock subtracts qty only when at least qty units are in stock,
	// as one conditional write. It reports false when the product is missing
	// or short.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	// IncrementStock reports false when the product does not exist.
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)

	// AddReview stores review against product and persists the product's
	// rating, review count and bestseller flag as they are on product.
	AddReview(ctx context.Context, product *models.Product, review *models.ProductReview) error
}

// OrderRepository reads and writes orders together with their line items.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	// FindByID loads the order with items and the owner's name and email.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	// Update persists the order row except its status; line items are
	// immutable after creation.
	Update(ctx context.Context, order *models.Order) error
	// TransitionStatus moves the order to status `to` as one conditional
	// write, refusing when its current status is one of unless (compared
	// case-insensitively). It reports false when the order is missing or
	// refused.
	TransitionStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus, unless ...models.OrderStatus) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	CountAdmins(ctx context.Context) (int64, error)
}
