// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	OrderNumber     string          `json:"order_number" gorm:"size:20;uniqueIndex"`
	UserID          uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	Items           []OrderItem     `json:"order_items" gorm:"foreignKey:OrderID"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   PaymentMethod   `json:"payment_method" gorm:"type:varchar(20);not null"`
	TotalPrice      float64         `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus     `json:"order_status" gorm:"type:varchar(20);default:'placed';index"`
	Review          CustomerReview  `json:"customer_review" gorm:"embedded;embeddedPrefix:review_"`
	Complaint       Complaint       `json:"complaint" gorm:"embedded;embeddedPrefix:complaint_"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Quantity  int       `json:"qty" gorm:"not null"`
	Image     string    `json:"image,omitempty" gorm:"size:512"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`
}

type ShippingAddress struct {
	FullName    string      `json:"full_name" gorm:"size:255" validate:"required"`
	Email       string      `json:"email" gorm:"size:255" validate:"required"`
	Mobile      string      `json:"mobile" gorm:"size:20" validate:"required"`
	Pincode     string      `json:"pincode" gorm:"size:10" validate:"required"`
	City        string      `json:"city" gorm:"size:100" validate:"required"`
	State       string      `json:"state" gorm:"size:100" validate:"required"`
	AddressLine string      `json:"address_line" gorm:"type:text" validate:"required"`
	Landmark    string      `json:"landmark,omitempty" gorm:"size:255"`
	AddressType AddressType `json:"address_type" gorm:"type:varchar(10)" validate:"required,address_type"`
}

// A zero Rating means no review has been left yet.
type CustomerReview struct {
	Rating     int        `json:"rating,omitempty"`
	Comment    string     `json:"comment,omitempty" gorm:"type:text"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

type Complaint struct {
	HasComplaint  bool            `json:"has_complaint" gorm:"default:false"`
	Type          ComplaintType   `json:"type,omitempty" gorm:"type:varchar(20)"`
	Message       string          `json:"message,omitempty" gorm:"type:text"`
	Status        ComplaintStatus `json:"status,omitempty" gorm:"type:varchar(20)"`
	AdminResponse string          `json:"admin_response,omitempty" gorm:"type:text"`
	FiledAt       *time.Time      `json:"created_at,omitempty"`
	ResolvedAt    *time.Time      `json:"resolved_at,omitempty"`
}

func (o *Order) HasReview() bool {
	return o.Review.Rating > 0
}

// LineItems returns the product references the inventory engine works on.
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, LineItem{ProductID: item.ProductID, Name: item.Name, Quantity: item.Quantity})
	}
	return items
}

// LineItem is the (product, quantity) pair stock adjustments operate on.
type LineItem struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
}
