package services

import (
	"context"
	"sort"
	"time"

	"isuhub/internal/adapters/persistence/models"
	"isuhub/internal/core/domain"
)

// In-memory repository fakes. They hand out copies so a service mutation
// only becomes visible after an explicit Update, matching how the real
// repositories behave.

type fakeMemberRepo struct {
	members map[string]*domain.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]*domain.Member)}
}

func copyMember(m *domain.Member) *domain.Member {
	c := *m
	c.ManagedProfessions = append([]domain.ProfessionType(nil), m.ManagedProfessions...)
	return &c
}

func (r *fakeMemberRepo) Create(_ context.Context, member *domain.Member) error {
	r.members[member.ID] = copyMember(member)
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id string) (*domain.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, domain.NewNotFoundError("member not found")
	}
	return copyMember(member), nil
}

func (r *fakeMemberRepo) GetByEmail(_ context.Context, email string) (*domain.Member, error) {
	for _, member := range r.members {
		if member.Email == email {
			return copyMember(member), nil
		}
	}
	return nil, domain.NewNotFoundError("member not found")
}

func (r *fakeMemberRepo) GetByUsername(_ context.Context, username string) (*domain.Member, error) {
	for _, member := range r.members {
		if member.Username == username {
			return copyMember(member), nil
		}
	}
	return nil, domain.NewNotFoundError("member not found")
}

func (r *fakeMemberRepo) Update(_ context.Context, member *domain.Member) error {
	if _, ok := r.members[member.ID]; !ok {
		return domain.NewNotFoundError("member not found")
	}
	r.members[member.ID] = copyMember(member)
	return nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id string) error {
	delete(r.members, id)
	return nil
}

func (r *fakeMemberRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, member := range r.members {
		if member.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMemberRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, member := range r.members {
		if member.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fakeAccountRepo struct {
	accounts    map[string]*domain.Account
	ledger      []*domain.LedgerEntry
	transferErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func copyAccount(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.accounts[account.ID] = copyAccount(account)
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.NewNotFoundError("account not found")
	}
	return copyAccount(account), nil
}

func (r *fakeAccountRepo) GetByOwnerID(_ context.Context, ownerID string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.OwnerID == ownerID {
			return copyAccount(account), nil
		}
	}
	return nil, domain.NewNotFoundError("account not found")
}

func (r *fakeAccountRepo) AdjustBalance(_ context.Context, ownerID string, amount domain.ISU, credit bool, description string) (*domain.Account, error) {
	var stored *domain.Account
	for _, account := range r.accounts {
		if account.OwnerID == ownerID {
			stored = account
			break
		}
	}
	if stored == nil {
		return nil, domain.NewNotFoundError("account not found")
	}

	account := copyAccount(stored)
	if credit {
		account.Deposit(amount)
	} else if err := account.Withdraw(amount); err != nil {
		return nil, err
	}

	r.accounts[account.ID] = copyAccount(account)
	r.ledger = append(r.ledger, domain.NewLedgerEntry(account.ID, account.ID, amount, domain.LedgerAdminAdjustment, description))
	return account, nil
}

func (r *fakeAccountRepo) CreateLedgerEntry(_ context.Context, entry *domain.LedgerEntry) error {
	r.ledger = append(r.ledger, entry)
	return nil
}

func (r *fakeAccountRepo) GetTransactionHistory(_ context.Context, accountID string, offset, limit int) ([]*domain.LedgerEntry, int64, error) {
	var matches []*domain.LedgerEntry
	for _, entry := range r.ledger {
		if entry.FromAccountID == accountID || entry.ToAccountID == accountID {
			matches = append(matches, entry)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	total := int64(len(matches))
	if offset >= len(matches) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

type fakeStandardRepo struct {
	memberRepo *fakeMemberRepo
	standards  map[string]*domain.ProfessionStandard
	history    []*domain.StandardHistory
}

func newFakeStandardRepo(memberRepo *fakeMemberRepo) *fakeStandardRepo {
	return &fakeStandardRepo{
		memberRepo: memberRepo,
		standards:  make(map[string]*domain.ProfessionStandard),
	}
}

func copyStandard(s *domain.ProfessionStandard) *domain.ProfessionStandard {
	c := *s
	return &c
}

func (r *fakeStandardRepo) Create(_ context.Context, standard *domain.ProfessionStandard) error {
	r.standards[standard.ID] = copyStandard(standard)
	return nil
}

func (r *fakeStandardRepo) Update(_ context.Context, standard *domain.ProfessionStandard) error {
	if _, ok := r.standards[standard.ID]; !ok {
		return domain.NewNotFoundError("profession standard not found")
	}
	r.standards[standard.ID] = copyStandard(standard)
	return nil
}

func (r *fakeStandardRepo) FindActiveByProfession(_ context.Context, professionType domain.ProfessionType) (*domain.ProfessionStandard, error) {
	for _, standard := range r.standards {
		if standard.ProfessionType == professionType && standard.IsActive {
			return copyStandard(standard), nil
		}
	}
	return nil, domain.NewNotFoundError("profession standard not found")
}

func (r *fakeStandardRepo) FindByManager(ctx context.Context, memberID string) ([]*domain.ProfessionStandard, error) {
	member, err := r.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	var out []*domain.ProfessionStandard
	for _, standard := range r.standards {
		if !standard.IsActive {
			continue
		}
		for _, p := range member.ManagedProfessions {
			if standard.ProfessionType == p {
				out = append(out, copyStandard(standard))
			}
		}
	}
	return out, nil
}

func (r *fakeStandardRepo) SaveHistory(_ context.Context, history *domain.StandardHistory) error {
	r.history = append(r.history, history)
	return nil
}

func (r *fakeStandardRepo) GetHistory(_ context.Context, standardID string, offset, limit int) ([]*domain.StandardHistory, int64, error) {
	var matches []*domain.StandardHistory
	for _, h := range r.history {
		if h.StandardID == standardID {
			matches = append(matches, h)
		}
	}
	total := int64(len(matches))
	if offset >= len(matches) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

type fakeTransactionRepo struct {
	accounts     *fakeAccountRepo
	services     *fakeServiceRepo
	transactions map[string]*domain.Transaction
}

func newFakeTransactionRepo(accounts *fakeAccountRepo, services *fakeServiceRepo) *fakeTransactionRepo {
	return &fakeTransactionRepo{
		accounts:     accounts,
		services:     services,
		transactions: make(map[string]*domain.Transaction),
	}
}

func copyTransaction(t *domain.Transaction) *domain.Transaction {
	c := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

func (r *fakeTransactionRepo) Create(_ context.Context, transaction *domain.Transaction) error {
	r.transactions[transaction.ID] = copyTransaction(transaction)
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id string) (*domain.Transaction, error) {
	transaction, ok := r.transactions[id]
	if !ok {
		return nil, domain.NewNotFoundError("transaction not found")
	}
	return copyTransaction(transaction), nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, transaction *domain.Transaction) error {
	if _, ok := r.transactions[transaction.ID]; !ok {
		return domain.NewNotFoundError("transaction not found")
	}
	r.transactions[transaction.ID] = copyTransaction(transaction)
	return nil
}

// ConfirmPending mirrors the real repository's all-or-nothing confirm:
// every check runs against copies and nothing is stored until all of them
// pass.
func (r *fakeTransactionRepo) ConfirmPending(_ context.Context, transactionID, description string) (*domain.Transaction, *domain.LedgerEntry, error) {
	stored, ok := r.transactions[transactionID]
	if !ok {
		return nil, nil, domain.NewNotFoundError("transaction not found")
	}
	transaction := copyTransaction(stored)
	if err := transaction.Confirm(); err != nil {
		return nil, nil, err
	}

	storedService, ok := r.services.services[transaction.ServiceID]
	if !ok {
		return nil, nil, domain.NewNotFoundError("service not found")
	}
	service := copyService(storedService)
	if err := service.Start(); err != nil {
		return nil, nil, err
	}

	if r.accounts.transferErr != nil {
		return nil, nil, r.accounts.transferErr
	}
	var buyerAccount, sellerAccount *domain.Account
	for _, account := range r.accounts.accounts {
		switch account.OwnerID {
		case transaction.BuyerID:
			buyerAccount = copyAccount(account)
		case transaction.SellerID:
			sellerAccount = copyAccount(account)
		}
	}
	if buyerAccount == nil || sellerAccount == nil {
		return nil, nil, domain.NewNotFoundError("account not found")
	}
	if err := buyerAccount.Withdraw(transaction.Amount); err != nil {
		return nil, nil, err
	}
	sellerAccount.Deposit(transaction.Amount)
	if err := transaction.Start(); err != nil {
		return nil, nil, err
	}

	entry := domain.NewLedgerEntry(buyerAccount.ID, sellerAccount.ID, transaction.Amount, domain.LedgerServicePayment, description)
	r.accounts.accounts[buyerAccount.ID] = buyerAccount
	r.accounts.accounts[sellerAccount.ID] = sellerAccount
	r.accounts.ledger = append(r.accounts.ledger, entry)
	r.services.services[service.ID] = service
	r.transactions[transaction.ID] = copyTransaction(transaction)
	return transaction, entry, nil
}

func (r *fakeTransactionRepo) FindByParticipant(_ context.Context, memberID string, offset, limit int) ([]*domain.Transaction, int64, error) {
	var matches []*domain.Transaction
	for _, t := range r.transactions {
		if t.IsParticipant(memberID) {
			matches = append(matches, copyTransaction(t))
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	total := int64(len(matches))
	if offset >= len(matches) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

func (r *fakeTransactionRepo) FindPendingBySeller(_ context.Context, sellerID string) ([]*domain.Transaction, error) {
	var matches []*domain.Transaction
	for _, t := range r.transactions {
		if t.SellerID == sellerID && t.Status == domain.TransactionPending {
			matches = append(matches, copyTransaction(t))
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})
	return matches, nil
}

type fakeServiceRepo struct {
	services map[string]*domain.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[string]*domain.Service)}
}

func copyService(s *domain.Service) *domain.Service {
	c := *s
	return &c
}

func (r *fakeServiceRepo) Create(_ context.Context, service *domain.Service) error {
	r.services[service.ID] = copyService(service)
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	service, ok := r.services[id]
	if !ok {
		return nil, domain.NewNotFoundError("service not found")
	}
	return copyService(service), nil
}

func (r *fakeServiceRepo) Update(_ context.Context, service *domain.Service) error {
	if _, ok := r.services[service.ID]; !ok {
		return domain.NewNotFoundError("service not found")
	}
	r.services[service.ID] = copyService(service)
	return nil
}

func (r *fakeServiceRepo) ListAvailable(_ context.Context, professionType *domain.ProfessionType, offset, limit int) ([]*domain.Service, int64, error) {
	var matches []*domain.Service
	for _, s := range r.services {
		if !s.IsAvailable() {
			continue
		}
		if professionType != nil && s.ProfessionType != *professionType {
			continue
		}
		matches = append(matches, copyService(s))
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	total := int64(len(matches))
	if offset >= len(matches) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

func (r *fakeServiceRepo) FindByProvider(_ context.Context, providerID string) ([]*domain.Service, error) {
	var matches []*domain.Service
	for _, s := range r.services {
		if s.ProviderID == providerID {
			matches = append(matches, copyService(s))
		}
	}
	return matches, nil
}

type fakeRefreshTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, domain.NewNotFoundError("refresh token not found")
	}
	return token, nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	if token, ok := r.tokens[tokenHash]; ok {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByMemberID(_ context.Context, memberID string) error {
	for _, token := range r.tokens {
		if token.MemberID == memberID {
			now := time.Now()
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	return nil
}
