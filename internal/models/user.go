package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the account aggregate. Lifecycle state is derived from field
// combinations rather than an explicit status column: a user with a nil Email
// and a set UnconfirmedEmail is waiting for their first confirmation, an
// active user with both set is mid email-change.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"-"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"-"`

	// ExternalProvider and ExternalID are set together or not at all. An
	// account with an external identity has no local credential and its
	// profile fields are read-only here.
	ExternalProvider *string `gorm:"size:50;uniqueIndex:idx_users_external" json:"-"`
	ExternalID       *string `gorm:"size:255;uniqueIndex:idx_users_external" json:"-"`

	Username  string  `gorm:"size:255;not null;uniqueIndex" json:"username"`
	FirstName string  `gorm:"size:255" json:"first_name"`
	LastName  string  `gorm:"size:255" json:"last_name"`
	Email     *string `gorm:"size:255;index" json:"email"`

	RoleID *uuid.UUID `gorm:"type:uuid" json:"-"`
	Role   *Role      `gorm:"foreignKey:RoleID" json:"-"`

	IsActive    bool       `gorm:"not null;default:false" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Login attempt window.
	LoginFailedAt    *time.Time `json:"-"`
	LoginFailedCount int        `gorm:"not null;default:0" json:"-"`

	// Pending email-change window.
	UnconfirmedEmail          *string    `gorm:"size:255" json:"-"`
	UnconfirmedEmailCode      *string    `gorm:"size:100;index" json:"-"`
	UnconfirmedEmailCount     int        `gorm:"not null;default:0" json:"-"`
	UnconfirmedEmailCreatedAt *time.Time `json:"-"`

	// Password-reset window.
	ResetPasswordCode      *string    `gorm:"size:100" json:"-"`
	ResetPasswordCount     int        `gorm:"not null;default:0" json:"-"`
	ResetPasswordCreatedAt *time.Time `json:"-"`

	PasswordHash []byte `gorm:"type:bytea" json:"-"`
	PasswordSalt []byte `gorm:"type:bytea" json:"-"`
}

// IsExternal reports whether the account is backed by an external identity
// provider and therefore carries no local credential.
func (u *User) IsExternal() bool {
	return u.ExternalProvider != nil && u.ExternalID != nil
}
