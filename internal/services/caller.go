// internal/services/caller.go
package services

import (
	"github.com/google/uuid"

	"github.com/shopfront/ecommerce-backend/internal/models"
)

// Caller is the authenticated identity a request acts as.
type Caller struct {
	ID      uuid.UUID
	Name    string
	IsAdmin bool
}

// Owns reports whether the order belongs to the caller.
func (c Caller) Owns(order *models.Order) bool {
	return order.UserID == c.ID
}

// CanActOn is the single ownership rule: admins may act on any order,
// everyone else only on their own.
func (c Caller) CanActOn(order *models.Order) bool {
	return c.IsAdmin || c.Owns(order)
}
