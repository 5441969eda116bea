package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a dashboard account holder.
type User struct {
	ID               uuid.UUID         `json:"id"`
	Email            string            `json:"email"`
	PasswordHash     string            `json:"-"`
	Name             string            `json:"name"`
	Company          string            `json:"company"`
	Phone            string            `json:"phone,omitempty"`
	EmailIntegration *EmailIntegration `json:"emailIntegration,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// EmailIntegration marks whether the account's mailbox is linked to the
// pipeline, and with which provider.
type EmailIntegration struct {
	IsConnected  bool       `json:"isConnected"`
	Provider     string     `json:"provider,omitempty"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
}
