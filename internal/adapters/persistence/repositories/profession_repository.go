package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"isuhub/internal/adapters/persistence/models"
	"isuhub/internal/core/domain"
)

// professionRepository implements ProfessionStandardRepository on GORM.
type professionRepository struct {
	db *gorm.DB
}

// NewProfessionStandardRepository creates a new profession standard repository.
func NewProfessionStandardRepository(db *gorm.DB) ProfessionStandardRepository {
	return &professionRepository{db: db}
}

// Create inserts a new standard row.
func (r *professionRepository) Create(ctx context.Context, standard *domain.ProfessionStandard) error {
	if err := r.db.WithContext(ctx).Create(models.ProfessionStandardFromDomain(standard)).Error; err != nil {
		return domain.NewInternalError("failed to create profession standard", err)
	}
	return nil
}

// Update saves a standard's mutable fields.
func (r *professionRepository) Update(ctx context.Context, standard *domain.ProfessionStandard) error {
	if err := r.db.WithContext(ctx).Save(models.ProfessionStandardFromDomain(standard)).Error; err != nil {
		return domain.NewInternalError("failed to update profession standard", err)
	}
	return nil
}

// FindActiveByProfession gets the effective standard for a profession type.
func (r *professionRepository) FindActiveByProfession(ctx context.Context, professionType domain.ProfessionType) (*domain.ProfessionStandard, error) {
	var row models.ProfessionStandard
	err := r.db.WithContext(ctx).
		Where("profession_type = ? AND is_active = ?", string(professionType), true).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("no active standard for profession")
		}
		return nil, domain.NewInternalError("failed to load profession standard", err)
	}
	return row.ToDomain()
}

// FindByManager lists the standards whose profession types a decider manages.
func (r *professionRepository) FindByManager(ctx context.Context, memberID string) ([]*domain.ProfessionStandard, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).Where("id = ?", memberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("member not found")
		}
		return nil, domain.NewInternalError("failed to load member", err)
	}

	managed := member.ToDomain().ManagedProfessions
	if len(managed) == 0 {
		return nil, nil
	}
	types := make([]string, 0, len(managed))
	for _, p := range managed {
		types = append(types, string(p))
	}

	var rows []models.ProfessionStandard
	err := r.db.WithContext(ctx).
		Where("profession_type IN ? AND is_active = ?", types, true).
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewInternalError("failed to load profession standards", err)
	}

	standards := make([]*domain.ProfessionStandard, 0, len(rows))
	for i := range rows {
		standard, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		standards = append(standards, standard)
	}
	return standards, nil
}

// SaveHistory appends a history record. History rows are never updated.
func (r *professionRepository) SaveHistory(ctx context.Context, history *domain.StandardHistory) error {
	if err := r.db.WithContext(ctx).Create(models.StandardHistoryFromDomain(history)).Error; err != nil {
		return domain.NewInternalError("failed to save standard history", err)
	}
	return nil
}

// GetHistory lists a standard's history, newest first.
func (r *professionRepository) GetHistory(ctx context.Context, standardID string, offset, limit int) ([]*domain.StandardHistory, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StandardHistory{}).Where("standard_id = ?", standardID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count standard history", err)
	}

	var rows []models.StandardHistory
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to load standard history", err)
	}

	records := make([]*domain.StandardHistory, 0, len(rows))
	for i := range rows {
		record, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}
	return records, total, nil
}
