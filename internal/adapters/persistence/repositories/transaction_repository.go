package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"isuhub/internal/adapters/persistence/models"
	"isuhub/internal/core/domain"
)

// transactionRepository implements TransactionRepository on GORM.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create inserts a new transaction row.
func (r *transactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	if err := r.db.WithContext(ctx).Create(models.TransactionFromDomain(transaction)).Error; err != nil {
		return domain.NewInternalError("failed to create transaction", err)
	}
	return nil
}

// GetByID gets a transaction by ID.
func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var row models.Transaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("transaction not found")
		}
		return nil, domain.NewInternalError("failed to load transaction", err)
	}
	return row.ToDomain()
}

// Update saves a transaction's mutable fields.
func (r *transactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	if err := r.db.WithContext(ctx).Save(models.TransactionFromDomain(transaction)).Error; err != nil {
		return domain.NewInternalError("failed to update transaction", err)
	}
	return nil
}

// ConfirmPending atomically executes a seller confirmation. The transaction
// row is locked with SELECT ... FOR UPDATE before its status is checked, so
// of two concurrent confirmations one blocks behind the lock and then fails
// the pending check instead of paying a second time. The service flip runs
// before the money moves and both account rows are locked in ascending ID
// order, matching the lock order used everywhere else.
func (r *transactionRepository) ConfirmPending(ctx context.Context, transactionID, description string) (*domain.Transaction, *domain.LedgerEntry, error) {
	var (
		transaction *domain.Transaction
		entry       *domain.LedgerEntry
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Transaction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", transactionID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("transaction not found")
			}
			return domain.NewInternalError("failed to lock transaction", err)
		}
		t, err := row.ToDomain()
		if err != nil {
			return err
		}
		if err := t.Confirm(); err != nil {
			return err
		}

		var serviceRow models.Service
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", t.ServiceID).First(&serviceRow).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("service not found")
			}
			return domain.NewInternalError("failed to lock service", err)
		}
		service, err := serviceRow.ToDomain()
		if err != nil {
			return err
		}
		if err := service.Start(); err != nil {
			return err
		}

		var accountRows []models.Account
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_id IN ?", []string{t.BuyerID, t.SellerID}).
			Order("id").
			Find(&accountRows).Error; err != nil {
			return domain.NewInternalError("failed to lock accounts", err)
		}
		if len(accountRows) != 2 {
			return domain.NewNotFoundError("account not found")
		}
		var buyerAccount, sellerAccount *domain.Account
		for i := range accountRows {
			account, err := accountRows[i].ToDomain()
			if err != nil {
				return err
			}
			switch account.OwnerID {
			case t.BuyerID:
				buyerAccount = account
			case t.SellerID:
				sellerAccount = account
			}
		}
		if buyerAccount == nil || sellerAccount == nil {
			return domain.NewNotFoundError("account not found")
		}

		// Balance re-check under the row lock; any earlier check may be
		// stale.
		if err := buyerAccount.Withdraw(t.Amount); err != nil {
			return err
		}
		sellerAccount.Deposit(t.Amount)

		if err := tx.Model(&models.Account{}).Where("id = ?", buyerAccount.ID).
			Updates(map[string]interface{}{"balance": buyerAccount.Balance.Amount(), "updated_at": buyerAccount.UpdatedAt}).Error; err != nil {
			return domain.NewInternalError("failed to debit account", err)
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", sellerAccount.ID).
			Updates(map[string]interface{}{"balance": sellerAccount.Balance.Amount(), "updated_at": sellerAccount.UpdatedAt}).Error; err != nil {
			return domain.NewInternalError("failed to credit account", err)
		}

		entry = domain.NewLedgerEntry(buyerAccount.ID, sellerAccount.ID, t.Amount, domain.LedgerServicePayment, description)
		if err := tx.Create(models.LedgerEntryFromDomain(entry)).Error; err != nil {
			return domain.NewInternalError("failed to append ledger entry", err)
		}

		if err := t.Start(); err != nil {
			return err
		}
		if err := tx.Save(models.ServiceFromDomain(service)).Error; err != nil {
			return domain.NewInternalError("failed to update service", err)
		}
		if err := tx.Save(models.TransactionFromDomain(t)).Error; err != nil {
			return domain.NewInternalError("failed to update transaction", err)
		}
		transaction = t
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return transaction, entry, nil
}

// FindByParticipant lists transactions where the member is buyer or seller,
// newest first.
func (r *transactionRepository) FindByParticipant(ctx context.Context, memberID string, offset, limit int) ([]*domain.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("buyer_id = ? OR seller_id = ?", memberID, memberID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count transactions", err)
	}

	var rows []models.Transaction
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to load transactions", err)
	}

	transactions := make([]*domain.Transaction, 0, len(rows))
	for i := range rows {
		transaction, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, total, nil
}

// FindPendingBySeller lists the transactions awaiting a seller's
// confirmation, oldest first.
func (r *transactionRepository) FindPendingBySeller(ctx context.Context, sellerID string) ([]*domain.Transaction, error) {
	var rows []models.Transaction
	err := r.db.WithContext(ctx).
		Where("seller_id = ? AND status = ?", sellerID, string(domain.TransactionPending)).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewInternalError("failed to load pending transactions", err)
	}

	transactions := make([]*domain.Transaction, 0, len(rows))
	for i := range rows {
		transaction, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}
