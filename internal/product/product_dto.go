package product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ListQuery struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	Limit    int    `form:"limit,default=12" binding:"min=1,max=100"`
	Search   string `form:"search" binding:"max=100"`
	Currency string `form:"currency" binding:"omitempty,len=3"`
}

type Specs struct {
	RangeKm     float64 `json:"range_km"`
	TopSpeedKmh float64 `json:"top_speed_kmh"`
	BatteryWh   float64 `json:"battery_wh"`
	WeightKg    float64 `json:"weight_kg"`
}

type ProductResponse struct {
	ID        string           `json:"id"`
	Slug      string           `json:"slug"`
	Name      string           `json:"name"`
	Brand     string           `json:"brand"`
	ImageURL  string           `json:"imageUrl"`
	InStock   bool             `json:"inStock"`
	Currency  string           `json:"currency"`
	Price     decimal.Decimal  `json:"price"`
	SalePrice *decimal.Decimal `json:"salePrice,omitempty"`
}

type PriceResponse struct {
	Currency  string           `json:"currency"`
	Price     decimal.Decimal  `json:"price"`
	SalePrice *decimal.Decimal `json:"salePrice,omitempty"`
}

type ProductDetailResponse struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Specs       Specs           `json:"specs"`
	Stock       int32           `json:"stock"`
	Prices      []PriceResponse `json:"prices"`
}

// PriceQuote is the effective unit price of one product in one currency.
type PriceQuote struct {
	ProductID uuid.UUID
	Name      string
	Currency  string
	Price     decimal.Decimal
	SalePrice decimal.NullDecimal
}

// Unit is the sale price when present, otherwise the regular price.
func (q PriceQuote) Unit() decimal.Decimal {
	if q.SalePrice.Valid {
		return q.SalePrice.Decimal
	}
	return q.Price
}
