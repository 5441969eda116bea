package entity

import (
	"time"

	"github.com/google/uuid"
)

// Feedback statuses and categories mirror the dashboard filter options.
const (
	FeedbackStatusPending  = "pending"
	FeedbackStatusInReview = "in_review"
	FeedbackStatusResolved = "resolved"
)

// Feedback is a customer feedback entry.
type Feedback struct {
	ID        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment"`
	Status    string    `json:"status"`
	Category  string    `json:"category"` // product, service, shipping, support, general
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
