package entity

import (
	"time"

	"github.com/google/uuid"
)

// Inventory stock statuses, derived from quantity on hand.
const (
	StockInStock      = "in_stock"
	StockLowQuantity  = "low_quantity"
	StockNotAvailable = "not_available"
)

// LowStockThreshold is the quantity at or below which a product is flagged
// low_quantity.
const LowStockThreshold = 10

// Product is an inventory item.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SKU         string    `json:"sku,omitempty"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StockStatus derives the inventory status string from a quantity.
func StockStatus(quantity int) string {
	switch {
	case quantity <= 0:
		return StockNotAvailable
	case quantity <= LowStockThreshold:
		return StockLowQuantity
	default:
		return StockInStock
	}
}
