package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"isuhub/internal/adapters/persistence/models"
	"isuhub/internal/core/domain"
)

// serviceRepository implements ServiceRepository on GORM.
type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository.
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

// Create inserts a new service row.
func (r *serviceRepository) Create(ctx context.Context, service *domain.Service) error {
	if err := r.db.WithContext(ctx).Create(models.ServiceFromDomain(service)).Error; err != nil {
		return domain.NewInternalError("failed to create service", err)
	}
	return nil
}

// GetByID gets a service by ID.
func (r *serviceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	var row models.Service
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("service not found")
		}
		return nil, domain.NewInternalError("failed to load service", err)
	}
	return row.ToDomain()
}

// Update saves a service's mutable fields.
func (r *serviceRepository) Update(ctx context.Context, service *domain.Service) error {
	if err := r.db.WithContext(ctx).Save(models.ServiceFromDomain(service)).Error; err != nil {
		return domain.NewInternalError("failed to update service", err)
	}
	return nil
}

// ListAvailable lists purchasable services, optionally filtered by
// profession type, newest first.
func (r *serviceRepository) ListAvailable(ctx context.Context, professionType *domain.ProfessionType, offset, limit int) ([]*domain.Service, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Service{}).
		Where("status = ?", string(domain.ServiceAvailable))
	if professionType != nil {
		query = query.Where("profession_type = ?", string(*professionType))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count services", err)
	}

	var rows []models.Service
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to load services", err)
	}

	services := make([]*domain.Service, 0, len(rows))
	for i := range rows {
		service, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		services = append(services, service)
	}
	return services, total, nil
}

// FindByProvider lists a member's published services, newest first.
func (r *serviceRepository) FindByProvider(ctx context.Context, providerID string) ([]*domain.Service, error) {
	var rows []models.Service
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewInternalError("failed to load services", err)
	}

	services := make([]*domain.Service, 0, len(rows))
	for i := range rows {
		service, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, nil
}
