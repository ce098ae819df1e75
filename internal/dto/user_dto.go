package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/account-service/internal/models"
	"github.com/google/uuid"
)

// UpdateUserRequest carries optional field edits; a nil pointer means the
// field is left untouched.
type UpdateUserRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
	Email     *string `json:"email"`
}

type ConfirmEmailRequest struct {
	Code string `json:"code"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type ConfirmResetPasswordRequest struct {
	Code  string `json:"code"`
	Email string `json:"email"`
}

// UserResponse is the profile view returned by detail-shaped operations.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       *string    `json:"email"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// UserSummary is the compact row used by listings.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

func NewUserSummary(u *models.User) UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// PagedResponse wraps a listing page.
type PagedResponse[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// NewPasswordResponse returns the generated replacement password after a
// confirmed reset. Delivery of the plaintext is the caller's responsibility;
// it is never emailed.
type NewPasswordResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    *string   `json:"email"`
	Password string    `json:"password"`
}
