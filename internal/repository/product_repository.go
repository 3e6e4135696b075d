// internal/repository/product_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopfront/ecommerce-backend/internal/models"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, params utils.PaginationParams) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "price", "rating", "count_in_stock"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":           product.Name,
			"brand":          product.Brand,
			"category":       product.Category,
			"description":    product.Description,
			"price":          product.Price,
			"images":         product.Images,
			"count_in_stock": product.CountInStock,
			"bestseller":     product.Bestseller,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND count_in_stock >= ?", id, qty).
		UpdateColumn("count_in_stock", gorm.Expr("count_in_stock - ?", qty))
	if result.Error != nil {
		return false, fmt.Errorf("failed to update inventory: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *productRepository) IncrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("count_in_stock", gorm.Expr("count_in_stock + ?", qty))
	if result.Error != nil {
		return false, fmt.Errorf("failed to update inventory: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *productRepository) AddReview(ctx context.Context, product *models.Product, review *models.ProductReview) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		review.ProductID = product.ID
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
			Updates(map[string]interface{}{
				"rating":      product.Rating,
				"num_reviews": product.NumReviews,
				"bestseller":  product.Bestseller,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update product rating: %w", err)
		}
		return nil
	})
}
