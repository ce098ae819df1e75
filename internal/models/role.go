package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is an optional grouping attached to users. The core never embeds role
// claims in tokens; the boundary resolves roles fresh per request.
type Role struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	CreatedByID uuid.UUID  `gorm:"type:uuid" json:"-"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"-"`
	Name        string     `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string     `gorm:"size:255" json:"description"`
}
