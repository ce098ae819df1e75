package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/account-service/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gorm implements UserRepository on top of a gorm Postgres connection.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (r *Gorm) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Gorm) GetActiveByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ? AND is_active = true", username)
}

func (r *Gorm) GetActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ? AND is_active = true", email)
}

// GetByUsernameOrEmail prefers the username match when different rows hold
// the username and the email.
func (r *Gorm) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	user, err := r.first(ctx, "username = ?", username)
	if err != nil || user != nil {
		return user, err
	}
	return r.first(ctx, "email = ?", email)
}

func (r *Gorm) GetByExternalID(ctx context.Context, provider, externalID string) (*models.User, error) {
	return r.first(ctx, "external_provider = ? AND external_id = ?", provider, externalID)
}

func (r *Gorm) GetByUnconfirmedEmailCode(ctx context.Context, code string) (*models.User, error) {
	return r.first(ctx, "unconfirmed_email_code = ?", code)
}

func (r *Gorm) GetByEmailAndResetCode(ctx context.Context, email, code string) (*models.User, error) {
	return r.first(ctx, "email = ? AND reset_password_code = ?", email, code)
}

func (r *Gorm) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("counting users by username: %w", err)
	}
	return count > 0, nil
}

func (r *Gorm) ListActive(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{}).Where("is_active = true")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting active users: %w", err)
	}

	var users []models.User
	if err := q.Order("created_at").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("listing active users: %w", err)
	}
	return users, total, nil
}

func (r *Gorm) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (r *Gorm) Save(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

func (r *Gorm) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

func (r *Gorm) first(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &user, nil
}
