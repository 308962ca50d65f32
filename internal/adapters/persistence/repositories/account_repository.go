package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"isuhub/internal/adapters/persistence/models"
	"isuhub/internal/core/domain"
)

// accountRepository implements AccountRepository on GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account row.
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	if err := r.db.WithContext(ctx).Create(models.AccountFromDomain(account)).Error; err != nil {
		return domain.NewInternalError("failed to create account", err)
	}
	return nil
}

// GetByID gets an account by ID.
func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var row models.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("account not found")
		}
		return nil, domain.NewInternalError("failed to load account", err)
	}
	return row.ToDomain()
}

// GetByOwnerID gets the account owned by a member.
func (r *accountRepository) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Account, error) {
	var row models.Account
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("account not found")
		}
		return nil, domain.NewInternalError("failed to load account", err)
	}
	return row.ToDomain()
}

// AdjustBalance applies an administrative balance correction. The account
// row is locked with SELECT ... FOR UPDATE so a transfer committing
// concurrently cannot be overwritten, and the balance update and its
// self-referential admin_adjustment ledger entry ride the same database
// transaction.
func (r *accountRepository) AdjustBalance(ctx context.Context, ownerID string, amount domain.ISU, credit bool, description string) (*domain.Account, error) {
	var account *domain.Account
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Account
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_id = ?", ownerID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("account not found")
			}
			return domain.NewInternalError("failed to lock account", err)
		}
		a, err := row.ToDomain()
		if err != nil {
			return err
		}

		if credit {
			a.Deposit(amount)
		} else if err := a.Withdraw(amount); err != nil {
			return err
		}

		if err := tx.Model(&models.Account{}).Where("id = ?", a.ID).
			Updates(map[string]interface{}{"balance": a.Balance.Amount(), "updated_at": a.UpdatedAt}).Error; err != nil {
			return domain.NewInternalError("failed to update balance", err)
		}

		entry := domain.NewLedgerEntry(a.ID, a.ID, amount, domain.LedgerAdminAdjustment, description)
		if err := tx.Create(models.LedgerEntryFromDomain(entry)).Error; err != nil {
			return domain.NewInternalError("failed to append ledger entry", err)
		}

		account = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// CreateLedgerEntry appends a ledger entry outside the transfer path
// (initial balances, administrative adjustments).
func (r *accountRepository) CreateLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	if err := r.db.WithContext(ctx).Create(models.LedgerEntryFromDomain(entry)).Error; err != nil {
		return domain.NewInternalError("failed to append ledger entry", err)
	}
	return nil
}

// GetTransactionHistory lists ledger entries touching an account, newest
// first.
func (r *accountRepository) GetTransactionHistory(ctx context.Context, accountID string, offset, limit int) ([]*domain.LedgerEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LedgerEntry{}).
		Where("from_account_id = ? OR to_account_id = ?", accountID, accountID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count ledger entries", err)
	}

	var rows []models.LedgerEntry
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to load ledger entries", err)
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for i := range rows {
		entry, err := rows[i].ToDomain()
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	return entries, total, nil
}
