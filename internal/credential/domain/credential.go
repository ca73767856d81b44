package domain

import "time"

// Credential lifecycle status.
const (
	StatusActive  = "active"
	StatusRevoked = "revoked"
)

// ServiceGmail is the only mailbox service currently supported.
const ServiceGmail = "gmail"

// Credential holds the OAuth token material for one user's linked mailbox.
// Exactly one row exists per (user, service) pair.
//
// Token fields are stored as opaque strings, including the expiry (provider
// milliseconds since epoch). The expiry must round-trip exactly between
// storage and the provider client, so it is never parsed into a native
// date column.
type Credential struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"index:idx_user_service,unique;not null"`
	Service      string    `json:"service" gorm:"index:idx_user_service,unique;not null"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiryDate   string    `json:"expiry_date"`
	Status       string    `json:"status" gorm:"not null;default:active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
