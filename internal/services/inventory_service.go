// internal/services/inventory_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shopfront/ecommerce-backend/internal/i18n"
	"github.com/shopfront/ecommerce-backend/internal/models"
	"github.com/shopfront/ecommerce-backend/internal/repository"
)

var tracer = otel.Tracer("github.com/shopfront/ecommerce-backend/internal/services")

// InventoryService is the only place product stock moves in response to
// orders. Items are processed in request order and a multi-item call is not
// atomic: items handled before a failing one keep their adjustment.
type InventoryService struct {
	products repository.ProductRepository
}

func NewInventoryService(products repository.ProductRepository) *InventoryService {
	return &InventoryService{products: products}
}

// Reserve takes each item's quantity out of stock. It stops at the first
// item whose product is missing (ErrNotFound) or short (ErrInsufficientStock).
func (s *InventoryService) Reserve(ctx context.Context, items []models.LineItem) error {
	ctx, span := tracer.Start(ctx, "InventoryService.Reserve",
		trace.WithAttributes(attribute.Int("inventory.items", len(items))))
	defer span.End()

	for _, item := range items {
		if err := s.reserveOne(ctx, item); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	return nil
}

func (s *InventoryService) reserveOne(ctx context.Context, item models.LineItem) error {
	// Single conditional write; it cannot take stock below zero.
	ok, err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	// Work out why the decrement matched nothing.
	product, err := s.products.FindByID(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(i18n.KeyProductNotFoundByID, itemLabel(item))
		}
		return err
	}
	return newError(ErrInsufficientStock, i18n.KeyProductInsufficientStock, product.Name, product.CountInStock)
}

// Release puts each item's quantity back. Products that no longer exist are
// skipped; store failures are returned.
func (s *InventoryService) Release(ctx context.Context, items []models.LineItem) error {
	ctx, span := tracer.Start(ctx, "InventoryService.Release",
		trace.WithAttributes(attribute.Int("inventory.items", len(items))))
	defer span.End()

	for _, item := range items {
		if _, err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("failed to release stock for %s: %w", item.ProductID, err)
		}
	}
	return nil
}

func itemLabel(item models.LineItem) string {
	if item.Name != "" {
		return item.Name
	}
	return item.ProductID.String()
}
