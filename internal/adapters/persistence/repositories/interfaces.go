package repositories

import (
	"context"

	"isuhub/internal/adapters/persistence/models"
	"isuhub/internal/core/domain"
)

// MemberRepository defines member persistence operations.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	GetByUsername(ctx context.Context, username string) (*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	Delete(ctx context.Context, id string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// AccountRepository defines ISU account persistence operations.
//
// AdjustBalance is atomic: under a row lock in one database transaction it
// applies the balance change and appends its admin_adjustment ledger entry,
// so the two commit together or not at all.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*domain.Account, error)
	AdjustBalance(ctx context.Context, ownerID string, amount domain.ISU, credit bool, description string) (*domain.Account, error)
	CreateLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error
	GetTransactionHistory(ctx context.Context, accountID string, offset, limit int) ([]*domain.LedgerEntry, int64, error)
}

// ProfessionStandardRepository defines rate-standard persistence operations.
type ProfessionStandardRepository interface {
	Create(ctx context.Context, standard *domain.ProfessionStandard) error
	Update(ctx context.Context, standard *domain.ProfessionStandard) error
	FindActiveByProfession(ctx context.Context, professionType domain.ProfessionType) (*domain.ProfessionStandard, error)
	FindByManager(ctx context.Context, memberID string) ([]*domain.ProfessionStandard, error)
	SaveHistory(ctx context.Context, history *domain.StandardHistory) error
	GetHistory(ctx context.Context, standardID string, offset, limit int) ([]*domain.StandardHistory, int64, error)
}

// TransactionRepository defines transaction persistence operations.
//
// ConfirmPending is the atomic primitive every payment goes through: inside
// one database transaction, under row locks, it moves the pending
// transaction to in_progress, flips the service to in_progress, re-checks
// the buyer's balance, debits the buyer, credits the seller and appends
// exactly one ledger entry. Either all of that commits or none of it does,
// and a transaction that is no longer pending fails the status check under
// the lock, so two concurrent confirmations cannot both pay.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	Update(ctx context.Context, transaction *domain.Transaction) error
	ConfirmPending(ctx context.Context, transactionID, description string) (*domain.Transaction, *domain.LedgerEntry, error)
	FindByParticipant(ctx context.Context, memberID string, offset, limit int) ([]*domain.Transaction, int64, error)
	FindPendingBySeller(ctx context.Context, sellerID string) ([]*domain.Transaction, error)
}

// ServiceRepository defines service-listing persistence operations.
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	ListAvailable(ctx context.Context, professionType *domain.ProfessionType, offset, limit int) ([]*domain.Service, int64, error)
	FindByProvider(ctx context.Context, providerID string) ([]*domain.Service, error)
}

// RefreshTokenRepository defines refresh token persistence operations.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByMemberID(ctx context.Context, memberID string) error
	DeleteExpired(ctx context.Context) error
}
