package services

import (
	"context"
	"log"

	"isuhub/internal/adapters/persistence/repositories"
	"isuhub/internal/core/domain"
)

// AccountService exposes balance lookups, ledger history and the
// admin-only balance adjustment.
type AccountService struct {
	memberRepo  repositories.MemberRepository
	accountRepo repositories.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(
	memberRepo repositories.MemberRepository,
	accountRepo repositories.AccountRepository,
) *AccountService {
	return &AccountService{
		memberRepo:  memberRepo,
		accountRepo: accountRepo,
	}
}

// GetByOwner returns a member's account.
func (s *AccountService) GetByOwner(ctx context.Context, ownerID string) (*domain.Account, error) {
	return s.accountRepo.GetByOwnerID(ctx, ownerID)
}

// GetHistory lists the ledger entries touching a member's account. Members
// can read only their own history.
func (s *AccountService) GetHistory(ctx context.Context, requesterID, ownerID string, offset, limit int) ([]*domain.LedgerEntry, int64, error) {
	if requesterID != ownerID {
		requester, err := s.memberRepo.GetByID(ctx, requesterID)
		if err != nil {
			return nil, 0, err
		}
		if !requester.IsAdmin() {
			return nil, 0, domain.NewForbiddenError("cannot read another member's ledger history")
		}
	}
	account, err := s.accountRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	return s.accountRepo.GetTransactionHistory(ctx, account.ID, offset, limit)
}

// AdjustInput represents admin adjustment input.
type AdjustInput struct {
	AdminID     string
	OwnerID     string
	Amount      domain.ISU
	Credit      bool
	Description string
}

// Adjust applies an admin-only balance correction. The repository locks the
// account row and commits the balance change together with its
// admin_adjustment ledger entry.
func (s *AccountService) Adjust(ctx context.Context, input *AdjustInput) (*domain.Account, error) {
	admin, err := s.memberRepo.GetByID(ctx, input.AdminID)
	if err != nil {
		return nil, err
	}
	if !admin.IsAdmin() {
		return nil, domain.NewForbiddenError("only admins can adjust balances")
	}

	account, err := s.accountRepo.AdjustBalance(ctx, input.OwnerID, input.Amount, input.Credit, input.Description)
	if err != nil {
		return nil, err
	}

	log.Printf("account %s adjusted by admin %s: %s (credit=%t)", account.ID, admin.ID, input.Amount, input.Credit)
	return account, nil
}
