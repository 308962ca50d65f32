package services

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"isuhub/internal/adapters/persistence/repositories"
	"isuhub/internal/core/domain"
)

// ServiceCatalog handles publishing and browsing service listings.
type ServiceCatalog struct {
	memberRepo     repositories.MemberRepository
	serviceRepo    repositories.ServiceRepository
	professionRepo repositories.ProfessionStandardRepository
}

// NewServiceCatalog creates a new service catalog.
func NewServiceCatalog(
	memberRepo repositories.MemberRepository,
	serviceRepo repositories.ServiceRepository,
	professionRepo repositories.ProfessionStandardRepository,
) *ServiceCatalog {
	return &ServiceCatalog{
		memberRepo:     memberRepo,
		serviceRepo:    serviceRepo,
		professionRepo: professionRepo,
	}
}

// PublishServiceInput represents publish service input.
type PublishServiceInput struct {
	ProviderID     string
	ProfessionType domain.ProfessionType
	Title          string
	Description    string
	EstimatedHours decimal.Decimal
}

// Publish creates an available service priced at the profession's effective
// rate (active standard, or default when none is set) times the estimated
// hours.
func (s *ServiceCatalog) Publish(ctx context.Context, input *PublishServiceInput) (*domain.Service, error) {
	provider, err := s.memberRepo.GetByID(ctx, input.ProviderID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("provider not found")
		}
		return nil, err
	}
	if !provider.IsActive() {
		return nil, domain.NewValidationError("provider account is not active")
	}

	rate := input.ProfessionType.DefaultRate()
	standard, err := s.professionRepo.FindActiveByProfession(ctx, input.ProfessionType)
	if err == nil {
		rate = standard.Rate
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	service, err := domain.NewService(input.ProviderID, input.ProfessionType, input.Title, input.Description, input.EstimatedHours, rate)
	if err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}

	log.Printf("service %s published by %s: %s (%s)", service.ID, service.ProviderID, service.Title, service.Price)
	return service, nil
}

// ListAvailable lists purchasable services, optionally filtered by
// profession type.
func (s *ServiceCatalog) ListAvailable(ctx context.Context, professionType *domain.ProfessionType, offset, limit int) ([]*domain.Service, int64, error) {
	return s.serviceRepo.ListAvailable(ctx, professionType, offset, limit)
}

// GetByID returns one service.
func (s *ServiceCatalog) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	return s.serviceRepo.GetByID(ctx, id)
}

// ListByProvider lists a member's own services.
func (s *ServiceCatalog) ListByProvider(ctx context.Context, providerID string) ([]*domain.Service, error) {
	return s.serviceRepo.FindByProvider(ctx, providerID)
}

// Cancel withdraws a provider's own available or in-progress service.
func (s *ServiceCatalog) Cancel(ctx context.Context, serviceID, providerID string) (*domain.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !service.IsOwnedBy(providerID) {
		return nil, domain.NewForbiddenError("only the provider can cancel a service")
	}
	if err := service.Cancel(); err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}
