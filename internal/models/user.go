package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name  string `json:"name"`
	Email string `gorm:"uniqueIndex" json:"email"`

	// Every user belongs to exactly one workspace (the tenant boundary)
	WorkspaceID string `gorm:"index" json:"workspaceId"`

	Password string `json:"-"`
}
