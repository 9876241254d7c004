package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product defines the struct for the 'products' table.
// Nullable columns use pointers so they serialize as null instead of
// zero values.
type Product struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Barcode       *string         `json:"barcode" db:"barcode"`
	Description   *string         `json:"description" db:"description"`
	CategoryID    *int64          `json:"category_id" db:"category_id"`
	Price         decimal.Decimal `json:"price" db:"price"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
	MinimumStock  int             `json:"minimum_stock" db:"minimum_stock"`
	Image         *string         `json:"image" db:"image"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`

	// Category is the joined parent row; nil when the product is
	// uncategorized.
	Category *Category `json:"category"`
}
