package services

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"isuhub/internal/adapters/persistence/repositories"
	"isuhub/internal/core/domain"
)

// ProfessionService is the rate authority: it owns changes to profession
// standards and the decider role that gates them.
type ProfessionService struct {
	memberRepo     repositories.MemberRepository
	professionRepo repositories.ProfessionStandardRepository
}

// NewProfessionService creates a new profession service.
func NewProfessionService(
	memberRepo repositories.MemberRepository,
	professionRepo repositories.ProfessionStandardRepository,
) *ProfessionService {
	return &ProfessionService{
		memberRepo:     memberRepo,
		professionRepo: professionRepo,
	}
}

// UpdateRateInput represents update rate input.
type UpdateRateInput struct {
	RequesterID    string
	ProfessionType domain.ProfessionType
	NewRate        decimal.Decimal
	Reason         string
}

// UpdateRateOutput represents update rate output.
type UpdateRateOutput struct {
	ProfessionType domain.ProfessionType
	OldRate        domain.ISURate
	NewRate        domain.ISURate
}

// UpdateRate changes the effective rate for a profession type. Only admins,
// or deciders managing the type, may call it. A no-op change is rejected
// before any write, so every accepted update appends exactly one
// rate_updated history record.
func (s *ProfessionService) UpdateRate(ctx context.Context, input *UpdateRateInput) (*UpdateRateOutput, error) {
	requester, err := s.memberRepo.GetByID(ctx, input.RequesterID)
	if err != nil {
		return nil, err
	}
	if !requester.IsActive() {
		return nil, domain.NewValidationError("requester account is not active")
	}
	if !requester.CanManageProfession(input.ProfessionType) {
		return nil, domain.NewForbiddenError("not allowed to manage this profession standard")
	}

	newRate, err := domain.NewISURate(input.NewRate)
	if err != nil {
		return nil, err
	}

	standard, err := s.professionRepo.FindActiveByProfession(ctx, input.ProfessionType)
	var oldRate domain.ISURate
	switch {
	case err == nil:
		oldRate = standard.Rate
		if err := standard.UpdateRate(newRate, fmt.Sprintf("rate change: %s", input.Reason), input.RequesterID); err != nil {
			return nil, err
		}
		if err := s.professionRepo.Update(ctx, standard); err != nil {
			return nil, err
		}
	case domain.IsNotFound(err):
		// No standard yet; the hard-coded default is the history baseline.
		oldRate = input.ProfessionType.DefaultRate()
		if oldRate.Equal(newRate) {
			return nil, domain.NewValidationError("new rate is identical to the current rate")
		}
		standard = domain.NewProfessionStandard(input.ProfessionType, newRate, fmt.Sprintf("initial standard: %s", input.Reason), input.RequesterID)
		if err := s.professionRepo.Create(ctx, standard); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	history := domain.NewStandardHistory(standard.ID, domain.StandardRateUpdated, &oldRate, &newRate, input.Reason, input.RequesterID)
	if err := s.professionRepo.SaveHistory(ctx, history); err != nil {
		return nil, err
	}

	log.Printf("profession %s rate updated by %s: %s -> %s", input.ProfessionType, input.RequesterID, oldRate, newRate)
	return &UpdateRateOutput{
		ProfessionType: input.ProfessionType,
		OldRate:        oldRate,
		NewRate:        newRate,
	}, nil
}

// EffectiveRate returns the rate a profession type is billed at: the active
// standard if one exists, the hard-coded default otherwise.
func (s *ProfessionService) EffectiveRate(ctx context.Context, professionType domain.ProfessionType) (domain.ISURate, error) {
	standard, err := s.professionRepo.FindActiveByProfession(ctx, professionType)
	if err != nil {
		if domain.IsNotFound(err) {
			return professionType.DefaultRate(), nil
		}
		return domain.ISURate{}, err
	}
	return standard.Rate, nil
}

// GetHistory lists a standard's change history with pagination.
func (s *ProfessionService) GetHistory(ctx context.Context, standardID string, offset, limit int) ([]*domain.StandardHistory, int64, error) {
	return s.professionRepo.GetHistory(ctx, standardID, offset, limit)
}

// StandardsByManager lists the active standards a decider manages.
func (s *ProfessionService) StandardsByManager(ctx context.Context, memberID string) ([]*domain.ProfessionStandard, error) {
	return s.professionRepo.FindByManager(ctx, memberID)
}

// AssignDeciderInput represents assign decider input.
type AssignDeciderInput struct {
	AdminID        string
	TargetMemberID string
	Professions    []domain.ProfessionType
}

// AssignDecider promotes an active regular member to decider with the
// given managed professions. Admin-only; admins can never be demoted to
// decider through this path, and the profession list must be non-empty and
// free of duplicates.
func (s *ProfessionService) AssignDecider(ctx context.Context, input *AssignDeciderInput) (*domain.Member, error) {
	admin, err := s.memberRepo.GetByID(ctx, input.AdminID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("admin not found")
		}
		return nil, err
	}
	if !admin.IsAdmin() {
		return nil, domain.NewForbiddenError("only admins can assign decider rights")
	}
	if !admin.IsActive() {
		return nil, domain.NewValidationError("admin account is not active")
	}

	target, err := s.memberRepo.GetByID(ctx, input.TargetMemberID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("target member not found")
		}
		return nil, err
	}
	if !target.IsActive() {
		return nil, domain.NewValidationError("target member account is not active")
	}
	if target.IsAdmin() {
		return nil, domain.NewValidationError("cannot assign decider rights to an admin")
	}

	if len(input.Professions) == 0 {
		return nil, domain.NewValidationError("at least one managed profession is required")
	}
	for i, p := range input.Professions {
		for _, q := range input.Professions[i+1:] {
			if p == q {
				return nil, domain.NewValidationError("profession list contains duplicates")
			}
		}
	}

	target.PromoteToDecider(input.Professions)
	if err := s.memberRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	log.Printf("member %s promoted to decider by %s (professions: %v)", target.ID, admin.ID, input.Professions)
	return target, nil
}

// RevokeDecider demotes a decider back to a regular member. Admin-only.
func (s *ProfessionService) RevokeDecider(ctx context.Context, adminID, targetMemberID string) (*domain.Member, error) {
	admin, err := s.memberRepo.GetByID(ctx, adminID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("admin not found")
		}
		return nil, err
	}
	if !admin.IsAdmin() {
		return nil, domain.NewForbiddenError("only admins can revoke decider rights")
	}

	target, err := s.memberRepo.GetByID(ctx, targetMemberID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("target member not found")
		}
		return nil, err
	}
	if !target.IsDecider() {
		return nil, domain.NewValidationError("target member is not a decider")
	}

	target.DemoteToRegular()
	if err := s.memberRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	log.Printf("decider rights revoked from %s by %s", target.ID, admin.ID)
	return target, nil
}
