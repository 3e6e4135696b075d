// internal/repository/order_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopfront/ecommerce-backend/internal/models"
)

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func preloadOwner(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User", preloadOwner).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User", preloadOwner).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations, "Status").Save(order).Error; err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

func (r *orderRepository) TransitionStatus(ctx context.Context, id uuid.UUID, to models.OrderStatus, unless ...models.OrderStatus) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id)
	if len(unless) > 0 {
		blocked := make([]string, len(unless))
		for i, status := range unless {
			blocked[i] = strings.ToLower(string(status))
		}
		query = query.Where("LOWER(status) NOT IN ?", blocked)
	}

	result := query.Update("status", to)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update order status: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *orderRepository) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped()

		if err := all.Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}

		result := all.Delete(&models.Order{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete orders: %w", result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}
