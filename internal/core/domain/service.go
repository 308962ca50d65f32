package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceStatus is a published service's availability state.
type ServiceStatus string

const (
	ServiceAvailable  ServiceStatus = "available"
	ServiceInProgress ServiceStatus = "in_progress"
	ServiceCompleted  ServiceStatus = "completed"
	ServiceCancelled  ServiceStatus = "cancelled"
)

// Service is a unit of work a member offers, priced by the effective
// profession rate at publish time.
type Service struct {
	ID             string
	ProviderID     string
	ProfessionType ProfessionType
	Title          string
	Description    string
	EstimatedHours decimal.Decimal
	Price          ISU
	Status         ServiceStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewService creates an available service. The price is the given rate
// times the estimated hours, fixed at publish time.
func NewService(providerID string, professionType ProfessionType, title, description string, estimatedHours decimal.Decimal, rate ISURate) (*Service, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewValidationError("service title cannot be empty")
	}
	if estimatedHours.LessThanOrEqual(decimal.Zero) {
		return nil, NewValidationError("estimated hours must be greater than zero")
	}
	price, err := rate.Total(estimatedHours)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Service{
		ID:             uuid.NewString(),
		ProviderID:     providerID,
		ProfessionType: professionType,
		Title:          title,
		Description:    strings.TrimSpace(description),
		EstimatedHours: estimatedHours,
		Price:          price,
		Status:         ServiceAvailable,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Start moves Available -> InProgress when its transaction is confirmed.
func (s *Service) Start() error {
	if s.Status != ServiceAvailable {
		return NewValidationError("only available services can be started")
	}
	s.Status = ServiceInProgress
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete moves InProgress -> Completed.
func (s *Service) Complete() error {
	if s.Status != ServiceInProgress {
		return NewValidationError("only in-progress services can be completed")
	}
	s.Status = ServiceCompleted
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Cancel withdraws the service from the marketplace.
func (s *Service) Cancel() error {
	if s.Status != ServiceAvailable && s.Status != ServiceInProgress {
		return NewValidationError("completed services cannot be cancelled")
	}
	s.Status = ServiceCancelled
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// IsAvailable reports whether the service can be bought.
func (s *Service) IsAvailable() bool {
	return s.Status == ServiceAvailable
}

// IsOwnedBy reports whether memberID is the provider.
func (s *Service) IsOwnedBy(memberID string) bool {
	return s.ProviderID == memberID
}
