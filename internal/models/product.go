// internal/models/product.go
package models

import (
	"math"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	bestsellerMinRating  = 4.5
	bestsellerMinReviews = 10
)

type Product struct {
	BaseModel
	Name         string         `json:"name" gorm:"size:255;not null"`
	Brand        string         `json:"brand" gorm:"size:100"`
	Category     string         `json:"category" gorm:"size:100;index"`
	Description  string         `json:"description" gorm:"type:text"`
	Price        float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Images       pq.StringArray `json:"images" gorm:"type:text[]"`
	CountInStock int            `json:"count_in_stock" gorm:"not null;default:0"`
	Rating       float64        `json:"rating" gorm:"type:decimal(2,1);default:0"`
	NumReviews   int            `json:"num_reviews" gorm:"default:0"`
	Bestseller   bool           `json:"bestseller" gorm:"default:false"`

	// Relationships
	Reviews []ProductReview `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

type ProductReview struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"size:255"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
}

// ApplyRating folds one new review into the running mean, rounded to one
// decimal. The bestseller flag is only ever raised here, never cleared.
func (p *Product) ApplyRating(rating int) {
	total := p.Rating*float64(p.NumReviews) + float64(rating)
	p.NumReviews++
	p.Rating = math.Round(total/float64(p.NumReviews)*10) / 10

	if p.Rating >= bestsellerMinRating && p.NumReviews >= bestsellerMinReviews {
		p.Bestseller = true
	}
}
