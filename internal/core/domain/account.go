package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account holds a member's ISU balance. Each member owns exactly one
// account; balances change only through Deposit/Withdraw or the repository
// transfer primitive.
type Account struct {
	ID        string
	OwnerID   string
	Balance   ISU
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount creates an account for a member with an initial balance.
func NewAccount(ownerID string, initialBalance ISU) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Deposit credits the account. Adding two non-negative amounts cannot
// violate the balance invariant, so this never fails.
func (a *Account) Deposit(amount ISU) {
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = time.Now().UTC()
}

// Withdraw debits the account, failing if the balance would go negative.
func (a *Account) Withdraw(amount ISU) error {
	newBalance, err := a.Balance.Subtract(amount)
	if err != nil {
		return err
	}
	a.Balance = newBalance
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// HasSufficientBalance reports whether the account covers amount.
func (a *Account) HasSufficientBalance(amount ISU) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// LedgerEntryKind tags the reason an ISU transfer happened.
type LedgerEntryKind string

const (
	LedgerServicePayment  LedgerEntryKind = "service_payment"
	LedgerToolRental      LedgerEntryKind = "tool_rental"
	LedgerInitialBalance  LedgerEntryKind = "initial_balance"
	LedgerAdminAdjustment LedgerEntryKind = "admin_adjustment"
)

// LedgerEntry records one completed ISU transfer. Entries are append-only
// and never mutated once created.
type LedgerEntry struct {
	ID            string
	FromAccountID string
	ToAccountID   string
	Amount        ISU
	Kind          LedgerEntryKind
	Description   string
	CreatedAt     time.Time
}

// NewLedgerEntry creates an entry for a transfer between two accounts.
func NewLedgerEntry(fromAccountID, toAccountID string, amount ISU, kind LedgerEntryKind, description string) *LedgerEntry {
	return &LedgerEntry{
		ID:            uuid.NewString(),
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		Kind:          kind,
		Description:   description,
		CreatedAt:     time.Now().UTC(),
	}
}
