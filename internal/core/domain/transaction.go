package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus is a transaction's position in its lifecycle.
//
// The only legal edges are:
//
//	Pending    -> Confirmed, Cancelled
//	Confirmed  -> InProgress, Cancelled
//	InProgress -> Completed, Disputed
//
// Completed, Cancelled and Disputed are terminal.
type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "pending"
	TransactionConfirmed  TransactionStatus = "confirmed"
	TransactionInProgress TransactionStatus = "in_progress"
	TransactionCompleted  TransactionStatus = "completed"
	TransactionCancelled  TransactionStatus = "cancelled"
	TransactionDisputed   TransactionStatus = "disputed"
)

// Transaction is a buyer/seller agreement over a published service. Exactly
// one ISU transfer happens per transaction, on confirmation.
type Transaction struct {
	ID          string
	BuyerID     string
	SellerID    string
	ServiceID   string
	Amount      ISU
	Status      TransactionStatus
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// NewTransaction creates a pending transaction. Buyer and seller must be
// different members.
func NewTransaction(buyerID, sellerID, serviceID string, amount ISU, description string) (*Transaction, error) {
	if buyerID == sellerID {
		return nil, NewValidationError("buyer and seller cannot be the same member")
	}
	now := time.Now().UTC()
	return &Transaction{
		ID:          uuid.NewString(),
		BuyerID:     buyerID,
		SellerID:    sellerID,
		ServiceID:   serviceID,
		Amount:      amount,
		Status:      TransactionPending,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Confirm moves Pending -> Confirmed.
func (t *Transaction) Confirm() error {
	if t.Status != TransactionPending {
		return NewValidationError("only pending transactions can be confirmed")
	}
	t.Status = TransactionConfirmed
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Start moves Confirmed -> InProgress.
func (t *Transaction) Start() error {
	if t.Status != TransactionConfirmed {
		return NewValidationError("only confirmed transactions can be started")
	}
	t.Status = TransactionInProgress
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete moves InProgress -> Completed and records the completion time.
func (t *Transaction) Complete() error {
	if t.Status != TransactionInProgress {
		return NewValidationError("only in-progress transactions can be completed")
	}
	now := time.Now().UTC()
	t.Status = TransactionCompleted
	t.UpdatedAt = now
	t.CompletedAt = &now
	return nil
}

// Cancel moves Pending or Confirmed -> Cancelled.
func (t *Transaction) Cancel() error {
	if t.Status != TransactionPending && t.Status != TransactionConfirmed {
		return NewValidationError("only pending or confirmed transactions can be cancelled")
	}
	t.Status = TransactionCancelled
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Dispute moves InProgress -> Disputed.
func (t *Transaction) Dispute() error {
	if t.Status != TransactionInProgress {
		return NewValidationError("only in-progress transactions can be disputed")
	}
	t.Status = TransactionDisputed
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// CanCancel reports whether the transaction is still cancellable.
func (t *Transaction) CanCancel() bool {
	return t.Status == TransactionPending || t.Status == TransactionConfirmed
}

// IsCompleted reports whether the transaction reached Completed.
func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionCompleted
}

// IsParticipant reports whether memberID is the buyer or the seller.
func (t *Transaction) IsParticipant(memberID string) bool {
	return t.BuyerID == memberID || t.SellerID == memberID
}

// IsBuyer reports whether memberID is the buyer.
func (t *Transaction) IsBuyer(memberID string) bool {
	return t.BuyerID == memberID
}

// IsSeller reports whether memberID is the seller.
func (t *Transaction) IsSeller(memberID string) bool {
	return t.SellerID == memberID
}
