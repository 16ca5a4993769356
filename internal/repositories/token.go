package repositories

import (
	"context"
	"fmt"

	"taskhub/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TokenRepository defines the interface for API token operations.
// Revocation is bulk only: logout removes every token a user holds.
type TokenRepository interface {
	Create(ctx context.Context, token *models.AuthToken) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.AuthToken, error)
	DeleteAllForUser(ctx context.Context, userID uint) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.AuthToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to create auth token: %w", err)
	}
	return nil
}

func (r *tokenRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&token).Error; err != nil {
		return nil, fmt.Errorf("failed to find auth token %s: %w", id, err)
	}
	return &token, nil
}

func (r *tokenRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error; err != nil {
		return fmt.Errorf("failed to delete tokens for user %d: %w", userID, err)
	}
	return nil
}
