package email

import (
	"context"
	"time"

	"github.com/ordermate/ordermate/internal/entity"
)

// Classification is the transient verdict on one inbound email: is it a
// purchase order, and how sure is the model. Consumed once by the pipeline to
// branch; never persisted.
type Classification struct {
	IsOrder    bool    `json:"isOrder"`
	Confidence float64 `json:"confidence"` // 0..100, models report fractional scores
	Reasoning  string  `json:"reasoning"`
}

// ExtractedProduct is one product line pulled out of free-form email text.
type ExtractedProduct struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
	SKU      string   `json:"sku,omitempty"`
}

// ExtractedOrder is the normalized order shape we want from the model.
// An extraction with no product lines is not an order at all; the extractor
// returns nil in that case rather than an empty ExtractedOrder.
type ExtractedOrder struct {
	CustomerName    string                  `json:"customerName"`
	CustomerEmail   string                  `json:"customerEmail"`
	OrderNumber     string                  `json:"orderNumber,omitempty"`
	OrderDate       string                  `json:"orderDate,omitempty"` // YYYY-MM-DD
	Products        []ExtractedProduct      `json:"products"`
	TotalAmount     *float64                `json:"totalAmount,omitempty"`
	ShippingAddress *entity.ShippingAddress `json:"shippingAddress,omitempty"`
	Confidence      float64                 `json:"confidence"` // 0..100, models report fractional scores
}

// InboundEmail is the payload handed to the pipeline by a webhook delivery or
// a manual trigger.
type InboundEmail struct {
	Content      string    `json:"emailContent"`
	Subject      string    `json:"subject"`
	SenderEmail  string    `json:"senderEmail"`
	ReceivedDate time.Time `json:"receivedDate"`
}

// Result is the definite outcome of one pipeline invocation: classification
// always, extraction and order only when the email cleared the confidence
// floor and extraction produced a usable order.
type Result struct {
	IsOrder        bool            `json:"isOrder"`
	Classification Classification  `json:"classification"`
	ExtractedData  *ExtractedOrder `json:"extractedData,omitempty"`
	Order          *entity.Order   `json:"order,omitempty"`
	Message        string          `json:"message"`
}

// OrderStore is the persistence boundary the pipeline writes through. One
// insert per successful ingestion; the pipeline never reads or updates
// existing orders.
type OrderStore interface {
	CreateOrder(ctx context.Context, o *entity.Order) (*entity.Order, error)
}
