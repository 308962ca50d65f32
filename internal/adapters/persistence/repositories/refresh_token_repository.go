package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"isuhub/internal/adapters/persistence/models"
	"isuhub/internal/core/domain"
)

// refreshTokenRepository implements RefreshTokenRepository on GORM.
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository.
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create inserts a new refresh token row.
func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return domain.NewInternalError("failed to store refresh token", err)
	}
	return nil
}

// GetByTokenHash gets a refresh token by its hash.
func (r *refreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("refresh token not found")
		}
		return nil, domain.NewInternalError("failed to load refresh token", err)
	}
	return &token, nil
}

// RevokeByTokenHash revokes one refresh token.
func (r *refreshTokenRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", tokenHash).
		Update("revoked_at", now).Error
	if err != nil {
		return domain.NewInternalError("failed to revoke refresh token", err)
	}
	return nil
}

// RevokeAllByMemberID revokes every active refresh token of a member.
func (r *refreshTokenRepository) RevokeAllByMemberID(ctx context.Context, memberID string) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("member_id = ? AND revoked_at IS NULL", memberID).
		Update("revoked_at", now).Error
	if err != nil {
		return domain.NewInternalError("failed to revoke refresh tokens", err)
	}
	return nil
}

// DeleteExpired removes expired refresh tokens.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.RefreshToken{}).Error
	if err != nil {
		return domain.NewInternalError("failed to delete expired refresh tokens", err)
	}
	return nil
}
