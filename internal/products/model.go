package product

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Size is a size label and its stock count.
type Size struct {
	Size  string `json:"size" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
}

// Color is a display name plus its hex swatch.
type Color struct {
	Name    string `json:"name" validate:"required"`
	HexCode string `json:"hex_code" validate:"required"`
}

// Product is the canonical catalog record.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name" validate:"required,min=1,max=100"`
	Description   string    `json:"description" validate:"required,min=1,max=2000"`
	Price         float64   `json:"price" validate:"gt=0"`
	OriginalPrice *float64  `json:"original_price" validate:"omitempty,gt=0"`
	Category      string    `json:"category" validate:"required"`
	Images        []string  `json:"images"`
	Sizes         []Size    `json:"sizes" validate:"dive"`
	Colors        []Color   `json:"colors" validate:"dive"`
	Material      *string   `json:"material"`
	Brand         string    `json:"brand"`
	IsFeatured    bool      `json:"is_featured"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at" validate:"required"`
	UpdatedAt     time.Time `json:"updated_at" validate:"required,gtefield=CreatedAt"`
	CreatedBy     string    `json:"created_by,omitempty"`
	UpdatedBy     string    `json:"updated_by,omitempty"`
}

// DiscountPercentage is the markdown from OriginalPrice, rounded to two places.
// It is 0 unless OriginalPrice is set and above Price.
func (p Product) DiscountPercentage() float64 {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price {
		return 0
	}
	original := decimal.NewFromFloat(*p.OriginalPrice)
	pct := original.Sub(decimal.NewFromFloat(p.Price)).
		Div(original).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	value, _ := pct.Float64()
	return value
}

func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		DiscountPercentage float64 `json:"discount_percentage"`
	}{plain: plain(p), DiscountPercentage: p.DiscountPercentage()})
}

// withEmptySlices replaces nil sequences so responses render [] rather than null.
func (p Product) withEmptySlices() Product {
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Sizes == nil {
		p.Sizes = []Size{}
	}
	if p.Colors == nil {
		p.Colors = []Color{}
	}
	return p
}
