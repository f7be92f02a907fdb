package models

import (
	"time"

	"github.com/lib/pq"
)

// Workspace is a tenant. It owns a set of releases and is addressed
// publicly by its subdomain.
type Workspace struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`

	// Public address: <subdomain>.<APP_DOMAIN>
	Subdomain string `gorm:"uniqueIndex" json:"subdomain"`

	OwnerID string         `json:"ownerId"`
	Members pq.StringArray `gorm:"type:text[]" json:"members"`
}
