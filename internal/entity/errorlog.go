package entity

import (
	"time"

	"github.com/google/uuid"
)

// Error severities and statuses shown on the errors screen.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"

	ErrorStatusActive        = "active"
	ErrorStatusInvestigating = "investigating"
	ErrorStatusMonitoring    = "monitoring"
	ErrorStatusResolved      = "resolved"
)

// ErrorLog is an operational error surfaced on the dashboard errors screen.
type ErrorLog struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Status      string    `json:"status"`
	Category    string    `json:"category"` // database, payment, storage, api, email, server, network, auth
	Frequency   int       `json:"frequency"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
