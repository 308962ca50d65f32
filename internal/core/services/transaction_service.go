package services

import (
	"context"
	"fmt"
	"log"

	"isuhub/internal/adapters/persistence/repositories"
	"isuhub/internal/core/domain"
)

// TransactionService orchestrates the transaction lifecycle: creation,
// seller confirmation (with the ISU transfer), completion, cancellation and
// disputes.
type TransactionService struct {
	memberRepo      repositories.MemberRepository
	serviceRepo     repositories.ServiceRepository
	accountRepo     repositories.AccountRepository
	transactionRepo repositories.TransactionRepository
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	memberRepo repositories.MemberRepository,
	serviceRepo repositories.ServiceRepository,
	accountRepo repositories.AccountRepository,
	transactionRepo repositories.TransactionRepository,
) *TransactionService {
	return &TransactionService{
		memberRepo:      memberRepo,
		serviceRepo:     serviceRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// CreateTransactionInput represents create transaction input.
type CreateTransactionInput struct {
	BuyerID     string
	ServiceID   string
	Description string
}

// Create validates buyer, service and seller, checks the buyer's balance
// against the service price and persists a pending transaction. No money
// moves until the seller confirms.
func (s *TransactionService) Create(ctx context.Context, input *CreateTransactionInput) (*domain.Transaction, error) {
	buyer, err := s.memberRepo.GetByID(ctx, input.BuyerID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("buyer not found")
		}
		return nil, err
	}
	if !buyer.IsActive() {
		return nil, domain.NewValidationError("buyer account is not active")
	}

	service, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.IsAvailable() {
		return nil, domain.NewValidationError("service is not available")
	}
	if service.IsOwnedBy(input.BuyerID) {
		return nil, domain.NewValidationError("cannot buy own service")
	}

	seller, err := s.memberRepo.GetByID(ctx, service.ProviderID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("service provider not found")
		}
		return nil, err
	}
	if !seller.IsActive() {
		return nil, domain.NewValidationError("service provider is not active")
	}

	buyerAccount, err := s.accountRepo.GetByOwnerID(ctx, input.BuyerID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("buyer account not found")
		}
		return nil, err
	}
	if !buyerAccount.HasSufficientBalance(service.Price) {
		return nil, domain.NewValidationError("insufficient balance")
	}

	transaction, err := domain.NewTransaction(input.BuyerID, service.ProviderID, service.ID, service.Price, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	log.Printf("transaction %s created: buyer=%s seller=%s amount=%s", transaction.ID, transaction.BuyerID, transaction.SellerID, transaction.Amount)
	return transaction, nil
}

// Confirm runs the seller's confirmation as one serializable step. The
// repository moves the pending transaction to in_progress, flips the
// service and executes the buyer-to-seller transfer inside a single
// database transaction under row locks, so a concurrent confirmation of the
// same transaction fails the status check instead of paying twice, a
// service already in progress rejects the confirmation before money moves,
// and any failure leaves the stored transaction pending with nothing
// written.
func (s *TransactionService) Confirm(ctx context.Context, transactionID, sellerID string) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !transaction.IsSeller(sellerID) {
		return nil, domain.NewForbiddenError("only the seller can confirm a transaction")
	}

	seller, err := s.memberRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if !seller.IsActive() {
		return nil, domain.NewValidationError("seller account is not active")
	}

	confirmed, entry, err := s.transactionRepo.ConfirmPending(
		ctx,
		transactionID,
		fmt.Sprintf("service payment for transaction %s", transactionID),
	)
	if err != nil {
		return nil, err
	}

	log.Printf("transaction %s confirmed: ledger entry %s, amount %s", confirmed.ID, entry.ID, confirmed.Amount)
	return confirmed, nil
}

// Complete lets either participant mark an in-progress transaction done and
// flips the linked service to completed.
func (s *TransactionService) Complete(ctx context.Context, transactionID, requesterID string) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !transaction.IsParticipant(requesterID) {
		return nil, domain.NewForbiddenError("only a participant can complete a transaction")
	}

	requester, err := s.memberRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.IsActive() {
		return nil, domain.NewValidationError("requester account is not active")
	}

	if err := transaction.Complete(); err != nil {
		return nil, err
	}

	service, err := s.serviceRepo.GetByID(ctx, transaction.ServiceID)
	if err == nil {
		if completeErr := service.Complete(); completeErr == nil {
			if err := s.serviceRepo.Update(ctx, service); err != nil {
				return nil, err
			}
		}
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	if err := s.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, err
	}

	log.Printf("transaction %s completed by %s", transaction.ID, requesterID)
	return transaction, nil
}

// Cancel lets either participant cancel a transaction that has not started.
func (s *TransactionService) Cancel(ctx context.Context, transactionID, requesterID string) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !transaction.IsParticipant(requesterID) {
		return nil, domain.NewForbiddenError("only a participant can cancel a transaction")
	}

	if err := transaction.Cancel(); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, err
	}

	log.Printf("transaction %s cancelled by %s", transaction.ID, requesterID)
	return transaction, nil
}

// Dispute lets either participant flag an in-progress transaction.
// Resolution happens outside this service.
func (s *TransactionService) Dispute(ctx context.Context, transactionID, requesterID string) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !transaction.IsParticipant(requesterID) {
		return nil, domain.NewForbiddenError("only a participant can dispute a transaction")
	}

	if err := transaction.Dispute(); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, err
	}

	log.Printf("transaction %s disputed by %s", transaction.ID, requesterID)
	return transaction, nil
}

// ListByParticipant lists a member's transactions with pagination.
func (s *TransactionService) ListByParticipant(ctx context.Context, memberID string, offset, limit int) ([]*domain.Transaction, int64, error) {
	return s.transactionRepo.FindByParticipant(ctx, memberID, offset, limit)
}

// PendingForSeller lists the transactions awaiting a seller's confirmation.
func (s *TransactionService) PendingForSeller(ctx context.Context, sellerID string) ([]*domain.Transaction, error) {
	return s.transactionRepo.FindPendingBySeller(ctx, sellerID)
}

// GetByID returns a transaction visible to one of its participants.
func (s *TransactionService) GetByID(ctx context.Context, transactionID, requesterID string) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !transaction.IsParticipant(requesterID) {
		return nil, domain.NewForbiddenError("only a participant can view a transaction")
	}
	return transaction, nil
}
