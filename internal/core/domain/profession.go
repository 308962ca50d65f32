package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfessionType is one of the fixed work categories the exchange prices.
type ProfessionType string

const (
	ProfessionCleaning      ProfessionType = "cleaning"
	ProfessionBasicRepair   ProfessionType = "basic_repair"
	ProfessionHomeTutoring  ProfessionType = "home_tutoring"
	ProfessionDocumentation ProfessionType = "documentation"
	ProfessionCooking       ProfessionType = "cooking"
)

// AllProfessionTypes returns every supported category.
func AllProfessionTypes() []ProfessionType {
	return []ProfessionType{
		ProfessionCleaning,
		ProfessionBasicRepair,
		ProfessionHomeTutoring,
		ProfessionDocumentation,
		ProfessionCooking,
	}
}

// ParseProfessionType parses a category from its wire name.
func ParseProfessionType(s string) (ProfessionType, error) {
	switch ProfessionType(s) {
	case ProfessionCleaning, ProfessionBasicRepair, ProfessionHomeTutoring,
		ProfessionDocumentation, ProfessionCooking:
		return ProfessionType(s), nil
	}
	return "", NewValidationError(fmt.Sprintf("unknown profession type: %s", s))
}

// DisplayName returns a human-readable category name.
func (p ProfessionType) DisplayName() string {
	switch p {
	case ProfessionCleaning:
		return "Cleaning"
	case ProfessionBasicRepair:
		return "Basic Repair"
	case ProfessionHomeTutoring:
		return "Home Tutoring"
	case ProfessionDocumentation:
		return "Documentation"
	case ProfessionCooking:
		return "Cooking"
	}
	return string(p)
}

// DefaultRate returns the hard-coded baseline rate used before a standard
// has been set for the category.
func (p ProfessionType) DefaultRate() ISURate {
	var rate float64
	switch p {
	case ProfessionCleaning:
		rate = 1.0
	case ProfessionBasicRepair:
		rate = 1.5
	case ProfessionHomeTutoring:
		rate = 2.0
	case ProfessionDocumentation:
		rate = 1.8
	case ProfessionCooking:
		rate = 1.2
	default:
		rate = 1.0
	}
	r, _ := NewISURateFromFloat(rate)
	return r
}

// ProfessionStandard binds a profession type to its currently effective
// billable rate. One active standard per type is the effective price.
type ProfessionStandard struct {
	ID             string
	ProfessionType ProfessionType
	Rate           ISURate
	Description    string
	IsActive       bool
	CreatedBy      string
	UpdatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewProfessionStandard creates an active standard with the given rate.
func NewProfessionStandard(professionType ProfessionType, rate ISURate, description, creatorID string) *ProfessionStandard {
	now := time.Now().UTC()
	return &ProfessionStandard{
		ID:             uuid.NewString(),
		ProfessionType: professionType,
		Rate:           rate,
		Description:    description,
		IsActive:       true,
		CreatedBy:      creatorID,
		UpdatedBy:      creatorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// UpdateRate replaces the standard's rate. A rate identical to the current
// one is rejected so every accepted update produces a meaningful history
// entry.
func (s *ProfessionStandard) UpdateRate(newRate ISURate, description, updaterID string) error {
	if s.Rate.Equal(newRate) {
		return NewValidationError("new rate is identical to the current rate")
	}
	s.Rate = newRate
	if description != "" {
		s.Description = description
	}
	s.UpdatedBy = updaterID
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Activate marks the standard as the effective one for its type.
func (s *ProfessionStandard) Activate(updaterID string) {
	s.IsActive = true
	s.UpdatedBy = updaterID
	s.UpdatedAt = time.Now().UTC()
}

// Deactivate retires the standard.
func (s *ProfessionStandard) Deactivate(updaterID string) {
	s.IsActive = false
	s.UpdatedBy = updaterID
	s.UpdatedAt = time.Now().UTC()
}

// CalculateTotal prices a duration in hours at the standard's rate.
// Inactive standards cannot price work.
func (s *ProfessionStandard) CalculateTotal(hours decimal.Decimal) (ISU, error) {
	if !s.IsActive {
		return ISU{}, NewValidationError("profession standard is inactive")
	}
	return s.Rate.Total(hours)
}

// StandardAction names what a history record captured.
type StandardAction string

const (
	StandardCreated     StandardAction = "created"
	StandardRateUpdated StandardAction = "rate_updated"
	StandardActivated   StandardAction = "activated"
	StandardDeactivated StandardAction = "deactivated"
)

// StandardHistory is an append-only audit record of a standard change.
type StandardHistory struct {
	ID         string
	StandardID string
	Action     StandardAction
	OldRate    *ISURate
	NewRate    *ISURate
	Reason     string
	ChangedBy  string
	CreatedAt  time.Time
}

// NewStandardHistory creates a history record for a standard change.
func NewStandardHistory(standardID string, action StandardAction, oldRate, newRate *ISURate, reason, changedBy string) *StandardHistory {
	return &StandardHistory{
		ID:         uuid.NewString(),
		StandardID: standardID,
		Action:     action,
		OldRate:    oldRate,
		NewRate:    newRate,
		Reason:     reason,
		ChangedBy:  changedBy,
		CreatedAt:  time.Now().UTC(),
	}
}
