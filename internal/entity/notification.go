package entity

import (
	"time"

	"github.com/google/uuid"
)

// Processing states for an email notification record.
const (
	NotificationPending    = "pending"
	NotificationProcessing = "processing"
	NotificationCompleted  = "completed"
	NotificationFailed     = "failed"
)

// EmailNotification records an inbound email observed by the pipeline, along
// with what was extracted from it. One record exists per provider email ID.
type EmailNotification struct {
	ID               uuid.UUID                 `json:"id"`
	UserID           uuid.UUID                 `json:"userId"`
	EmailID          string                    `json:"emailId"`
	Subject          string                    `json:"subject"`
	Sender           string                    `json:"sender"`
	ReceivedAt       time.Time                 `json:"receivedAt"`
	IsRead           bool                      `json:"isRead"`
	IsProcessed      bool                      `json:"isProcessed"`
	OrderExtracted   *NotificationOrderSummary `json:"orderExtracted,omitempty"`
	RawEmailContent  string                    `json:"-"`
	ProcessingStatus string                    `json:"processingStatus"`
	ProcessingError  string                    `json:"processingError,omitempty"`
	CreatedAt        time.Time                 `json:"createdAt"`
	UpdatedAt        time.Time                 `json:"updatedAt"`
}

// NotificationOrderSummary is the condensed order data surfaced in the
// notification feed, not the full order record.
type NotificationOrderSummary struct {
	CustomerName string                `json:"customerName,omitempty"`
	Products     []NotificationProduct `json:"products,omitempty"`
	TotalAmount  *float64              `json:"totalAmount,omitempty"`
	OrderDate    string                `json:"orderDate,omitempty"`
}

type NotificationProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
