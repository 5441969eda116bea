package entity

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. AI-created orders always start as pending; the dashboard
// moves them through the rest of the lifecycle.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderProduct is one product line on an order.
type OrderProduct struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	SKU      string  `json:"sku,omitempty"`
}

// ShippingAddress is the destination extracted from an order email, when present.
type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// OriginalEmail keeps the inbound email verbatim on AI-created orders for
// audit and potential re-processing.
type OriginalEmail struct {
	Subject      string    `json:"subject"`
	Content      string    `json:"content"`
	Sender       string    `json:"sender"`
	ReceivedDate time.Time `json:"receivedDate"`
}

// Order represents an order for data transfer between layers.
type Order struct {
	ID        uuid.UUID      `json:"id"`
	Date      string         `json:"date"` // YYYY-MM-DD
	Time      string         `json:"time"`
	Products  []OrderProduct `json:"products"`
	Status    string         `json:"status"`
	OrderLink string         `json:"orderLink"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`

	// AI provenance. Set only by the email ingestion pipeline; the dashboard
	// CRUD layer may later clear RequiresReview or change Status but never
	// writes these itself.
	AIProcessed     bool             `json:"aiProcessed"`
	AIConfidence    float64          `json:"aiConfidence,omitempty"`
	OriginalEmail   *OriginalEmail   `json:"originalEmail,omitempty"`
	RequiresReview  bool             `json:"requiresReview"`
	TotalAmount     *float64         `json:"totalAmount,omitempty"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
