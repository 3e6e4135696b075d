// internal/services/product_service.go
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shopfront/ecommerce-backend/internal/i18n"
	"github.com/shopfront/ecommerce-backend/internal/models"
	"github.com/shopfront/ecommerce-backend/internal/repository"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

type ProductService struct {
	products repository.ProductRepository
}

type CreateProductRequest struct {
	Name         string   `json:"name" validate:"required,max=255"`
	Brand        string   `json:"brand" validate:"max=100"`
	Category     string   `json:"category" validate:"required,max=100"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Images       []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	CountInStock int      `json:"count_in_stock" validate:"min=0"`
	Bestseller   *bool    `json:"bestseller,omitempty"`
}

// UpdateProductRequest applies only the fields that are present.
type UpdateProductRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Brand        *string  `json:"brand,omitempty" validate:"omitempty,max=100"`
	Category     *string  `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Images       []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	CountInStock *int     `json:"count_in_stock,omitempty" validate:"omitempty,min=0"`
	Bestseller   *bool    `json:"bestseller,omitempty"`
}

type ProductPage struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if req.Name == "" || req.Price == 0 || req.Category == "" {
		return nil, badRequest(i18n.KeyProductRequiredFields)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(i18n.KeyProductInvalid, err)
	}

	product := &models.Product{
		Name:         req.Name,
		Brand:        req.Brand,
		Category:     req.Category,
		Description:  req.Description,
		Price:        req.Price,
		Images:       req.Images,
		CountInStock: req.CountInStock,
	}
	if req.Bestseller != nil {
		product.Bestseller = *req.Bestseller
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(i18n.KeyProductNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, params utils.PaginationParams) (*ProductPage, error) {
	products, total, err := s.products.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Products: products,
		Total:    total,
		Page:     params.Page,
		Pages:    utils.TotalPages(total, params.Limit),
	}, nil
}

func (s *ProductService) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(i18n.KeyProductInvalid, err)
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update fields
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.CountInStock != nil {
		product.CountInStock = *req.CountInStock
	}
	if req.Bestseller != nil {
		product.Bestseller = *req.Bestseller
	}

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(i18n.KeyProductNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(i18n.KeyProductNotFound)
		}
		return err
	}
	return nil
}
