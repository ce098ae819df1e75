package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/account-service/internal/models"
	"github.com/google/uuid"
)

// UserRepository is the persistence seam consumed by the account lifecycle.
// Point lookups return (nil, nil) when no row matches; the service decides
// whether absence is an error.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetActiveByUsername(ctx context.Context, username string) (*models.User, error)
	GetActiveByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByUsernameOrEmail returns an existing user matching either value,
	// preferring the username match, for registration uniqueness checks.
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)

	GetByExternalID(ctx context.Context, provider, externalID string) (*models.User, error)
	GetByUnconfirmedEmailCode(ctx context.Context, code string) (*models.User, error)
	GetByEmailAndResetCode(ctx context.Context, email, code string) (*models.User, error)

	UsernameExists(ctx context.Context, username string) (bool, error)

	// ListActive returns a page of active users plus the total active count.
	ListActive(ctx context.Context, offset, limit int) ([]models.User, int64, error)

	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
