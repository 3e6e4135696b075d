// internal/models/common.go
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns the primary key on the application side so ids are
// known before the insert, for both the gorm and in-memory repositories.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums
type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "placed"
	OrderStatusAccepted   OrderStatus = "accepted"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses is the full set of values the status field may hold.
var OrderStatuses = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusAccepted,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// nonCancellable lists the statuses a customer cancel is refused from.
var nonCancellable = map[OrderStatus]bool{
	OrderStatusShipped:   true,
	OrderStatusDelivered: true,
	OrderStatusCancelled: true,
}

func (s OrderStatus) IsValid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Cancellable compares case-insensitively; legacy rows may carry mixed case.
func (s OrderStatus) Cancellable() bool {
	return !nonCancellable[OrderStatus(strings.ToLower(string(s)))]
}

type PaymentMethod string

const (
	PaymentMethodCOD        PaymentMethod = "COD"
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodCreditCard PaymentMethod = "CreditCard"
	PaymentMethodDebitCard  PaymentMethod = "DebitCard"
)

var PaymentMethods = []PaymentMethod{
	PaymentMethodCOD,
	PaymentMethodUPI,
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
}

type AddressType string

const (
	AddressTypeHome AddressType = "Home"
	AddressTypeWork AddressType = "Work"
)

type ComplaintType string

const (
	ComplaintTypeDelay        ComplaintType = "Delay"
	ComplaintTypeDamaged      ComplaintType = "Damaged"
	ComplaintTypeWrongItem    ComplaintType = "Wrong Item"
	ComplaintTypePaymentIssue ComplaintType = "Payment Issue"
	ComplaintTypeOther        ComplaintType = "Other"
)

var ComplaintTypes = []ComplaintType{
	ComplaintTypeDelay,
	ComplaintTypeDamaged,
	ComplaintTypeWrongItem,
	ComplaintTypePaymentIssue,
	ComplaintTypeOther,
}

type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "open"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusRejected   ComplaintStatus = "rejected"
)

// complaintTransitions holds every legal (from, to) pair of the complaint
// sub-machine.
var complaintTransitions = map[ComplaintStatus][]ComplaintStatus{
	ComplaintStatusOpen:       {ComplaintStatusInProgress},
	ComplaintStatusInProgress: {ComplaintStatusResolved, ComplaintStatusRejected},
}

func (s ComplaintStatus) CanTransitionTo(next ComplaintStatus) bool {
	for _, allowed := range complaintTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ComplaintStatus) IsFinal() bool {
	return s == ComplaintStatusResolved || s == ComplaintStatusRejected
}
