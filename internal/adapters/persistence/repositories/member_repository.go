package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"isuhub/internal/adapters/persistence/models"
	"isuhub/internal/core/domain"
)

// memberRepository implements MemberRepository on GORM.
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create inserts a new member row.
func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	if err := r.db.WithContext(ctx).Create(models.MemberFromDomain(member)).Error; err != nil {
		return domain.NewInternalError("failed to create member", err)
	}
	return nil
}

// GetByID gets a member by ID.
func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	return r.getBy(ctx, "id = ?", id)
}

// GetByEmail gets a member by email.
func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return r.getBy(ctx, "email = ?", email)
}

// GetByUsername gets a member by username.
func (r *memberRepository) GetByUsername(ctx context.Context, username string) (*domain.Member, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *memberRepository) getBy(ctx context.Context, query string, arg interface{}) (*domain.Member, error) {
	var row models.Member
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("member not found")
		}
		return nil, domain.NewInternalError("failed to load member", err)
	}
	return row.ToDomain(), nil
}

// Update saves a member's mutable fields.
func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	if err := r.db.WithContext(ctx).Save(models.MemberFromDomain(member)).Error; err != nil {
		return domain.NewInternalError("failed to update member", err)
	}
	return nil
}

// Delete removes a member row.
func (r *memberRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Member{}, "id = ?", id).Error; err != nil {
		return domain.NewInternalError("failed to delete member", err)
	}
	return nil
}

// ExistsByEmail checks whether an email is taken.
func (r *memberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, domain.NewInternalError("failed to check email", err)
	}
	return count > 0, nil
}

// ExistsByUsername checks whether a username is taken.
func (r *memberRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, domain.NewInternalError("failed to check username", err)
	}
	return count > 0, nil
}
