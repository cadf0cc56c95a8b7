package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// PriceScale is the number of fractional digits a stored price keeps.
const PriceScale int32 = 2

// Product represents a product in the catalogue.
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"type:varchar(100);not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(5,2);not null"`
	Availability bool            `json:"availability" gorm:"not null"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
