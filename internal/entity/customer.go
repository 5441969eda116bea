package entity

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a dashboard customer record.
type Customer struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Orders     int       `json:"orders"`
	TotalSpent float64   `json:"totalSpent"`
	LastOrder  string    `json:"lastOrder,omitempty"` // YYYY-MM-DD
	Status     string    `json:"status"`
	Location   string    `json:"location,omitempty"`
	JoinDate   string    `json:"joinDate,omitempty"` // YYYY-MM-DD
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
