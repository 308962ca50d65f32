package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"isuhub/internal/core/domain"
)

// Member represents the members table.
type Member struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	Email              string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Username           string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password           string    `gorm:"size:255;not null" json:"-"`
	Status             string    `gorm:"size:20;default:'active'" json:"status"`
	Role               string    `gorm:"size:20;default:'regular'" json:"role"`
	ManagedProfessions string    `gorm:"size:255" json:"managed_professions"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// ToDomain converts the row to a domain member.
func (m *Member) ToDomain() *domain.Member {
	var professions []domain.ProfessionType
	if m.ManagedProfessions != "" {
		for _, p := range strings.Split(m.ManagedProfessions, ",") {
			professions = append(professions, domain.ProfessionType(p))
		}
	}
	return &domain.Member{
		ID:                 m.ID,
		Email:              m.Email,
		Username:           m.Username,
		PasswordHash:       m.Password,
		Status:             domain.MemberStatus(m.Status),
		Role:               domain.Role(m.Role),
		ManagedProfessions: professions,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// MemberFromDomain converts a domain member to a row.
func MemberFromDomain(m *domain.Member) *Member {
	professions := make([]string, 0, len(m.ManagedProfessions))
	for _, p := range m.ManagedProfessions {
		professions = append(professions, string(p))
	}
	return &Member{
		ID:                 m.ID,
		Email:              m.Email,
		Username:           m.Username,
		Password:           m.PasswordHash,
		Status:             string(m.Status),
		Role:               string(m.Role),
		ManagedProfessions: strings.Join(professions, ","),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// Account represents the isu_accounts table.
type Account struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string          `gorm:"uniqueIndex;size:36;not null" json:"owner_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"balance"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "isu_accounts"
}

// ToDomain converts the row to a domain account.
func (a *Account) ToDomain() (*domain.Account, error) {
	balance, err := domain.NewISU(a.Balance)
	if err != nil {
		return nil, err
	}
	return &domain.Account{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Balance:   balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}, nil
}

// AccountFromDomain converts a domain account to a row.
func AccountFromDomain(a *domain.Account) *Account {
	return &Account{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Balance:   a.Balance.Amount(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// LedgerEntry represents the append-only isu_ledger table.
type LedgerEntry struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	FromAccountID string          `gorm:"index;size:36;not null" json:"from_account_id"`
	ToAccountID   string          `gorm:"index;size:36;not null" json:"to_account_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Kind          string          `gorm:"size:30;not null" json:"kind"`
	Description   string          `gorm:"size:255" json:"description"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "isu_ledger"
}

// ToDomain converts the row to a domain ledger entry.
func (e *LedgerEntry) ToDomain() (*domain.LedgerEntry, error) {
	amount, err := domain.NewISU(e.Amount)
	if err != nil {
		return nil, err
	}
	return &domain.LedgerEntry{
		ID:            e.ID,
		FromAccountID: e.FromAccountID,
		ToAccountID:   e.ToAccountID,
		Amount:        amount,
		Kind:          domain.LedgerEntryKind(e.Kind),
		Description:   e.Description,
		CreatedAt:     e.CreatedAt,
	}, nil
}

// LedgerEntryFromDomain converts a domain ledger entry to a row.
func LedgerEntryFromDomain(e *domain.LedgerEntry) *LedgerEntry {
	return &LedgerEntry{
		ID:            e.ID,
		FromAccountID: e.FromAccountID,
		ToAccountID:   e.ToAccountID,
		Amount:        e.Amount.Amount(),
		Kind:          string(e.Kind),
		Description:   e.Description,
		CreatedAt:     e.CreatedAt,
	}
}

// ProfessionStandard represents the profession_standards table.
type ProfessionStandard struct {
	ID             string          `gorm:"primaryKey;size:36" json:"id"`
	ProfessionType string          `gorm:"index;size:30;not null" json:"profession_type"`
	Rate           decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"rate"`
	Description    string          `gorm:"size:255" json:"description"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	CreatedBy      string          `gorm:"size:36;not null" json:"created_by"`
	UpdatedBy      string          `gorm:"size:36;not null" json:"updated_by"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ProfessionStandard) TableName() string {
	return "profession_standards"
}

// ToDomain converts the row to a domain standard.
func (s *ProfessionStandard) ToDomain() (*domain.ProfessionStandard, error) {
	rate, err := domain.NewISURate(s.Rate)
	if err != nil {
		return nil, err
	}
	return &domain.ProfessionStandard{
		ID:             s.ID,
		ProfessionType: domain.ProfessionType(s.ProfessionType),
		Rate:           rate,
		Description:    s.Description,
		IsActive:       s.IsActive,
		CreatedBy:      s.CreatedBy,
		UpdatedBy:      s.UpdatedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}, nil
}

// ProfessionStandardFromDomain converts a domain standard to a row.
func ProfessionStandardFromDomain(s *domain.ProfessionStandard) *ProfessionStandard {
	return &ProfessionStandard{
		ID:             s.ID,
		ProfessionType: string(s.ProfessionType),
		Rate:           s.Rate.Rate(),
		Description:    s.Description,
		IsActive:       s.IsActive,
		CreatedBy:      s.CreatedBy,
		UpdatedBy:      s.UpdatedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// StandardHistory represents the append-only standard_histories table.
type StandardHistory struct {
	ID         string           `gorm:"primaryKey;size:36" json:"id"`
	StandardID string           `gorm:"index;size:36;not null" json:"standard_id"`
	Action     string           `gorm:"size:30;not null" json:"action"`
	OldRate    *decimal.Decimal `gorm:"type:decimal(10,4)" json:"old_rate"`
	NewRate    *decimal.Decimal `gorm:"type:decimal(10,4)" json:"new_rate"`
	Reason     string           `gorm:"size:255" json:"reason"`
	ChangedBy  string           `gorm:"size:36;not null" json:"changed_by"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

func (StandardHistory) TableName() string {
	return "standard_histories"
}

// ToDomain converts the row to a domain history record.
func (h *StandardHistory) ToDomain() (*domain.StandardHistory, error) {
	var oldRate, newRate *domain.ISURate
	if h.OldRate != nil {
		r, err := domain.NewISURate(*h.OldRate)
		if err != nil {
			return nil, err
		}
		oldRate = &r
	}
	if h.NewRate != nil {
		r, err := domain.NewISURate(*h.NewRate)
		if err != nil {
			return nil, err
		}
		newRate = &r
	}
	return &domain.StandardHistory{
		ID:         h.ID,
		StandardID: h.StandardID,
		Action:     domain.StandardAction(h.Action),
		OldRate:    oldRate,
		NewRate:    newRate,
		Reason:     h.Reason,
		ChangedBy:  h.ChangedBy,
		CreatedAt:  h.CreatedAt,
	}, nil
}

// StandardHistoryFromDomain converts a domain history record to a row.
func StandardHistoryFromDomain(h *domain.StandardHistory) *StandardHistory {
	row := &StandardHistory{
		ID:         h.ID,
		StandardID: h.StandardID,
		Action:     string(h.Action),
		Reason:     h.Reason,
		ChangedBy:  h.ChangedBy,
		CreatedAt:  h.CreatedAt,
	}
	if h.OldRate != nil {
		r := h.OldRate.Rate()
		row.OldRate = &r
	}
	if h.NewRate != nil {
		r := h.NewRate.Rate()
		row.NewRate = &r
	}
	return row
}

// Transaction represents the transactions table.
type Transaction struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	BuyerID     string          `gorm:"index;size:36;not null" json:"buyer_id"`
	SellerID    string          `gorm:"index;size:36;not null" json:"seller_id"`
	ServiceID   string          `gorm:"index;size:36;not null" json:"service_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Status      string          `gorm:"index;size:20;not null" json:"status"`
	Description string          `gorm:"size:255" json:"description"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	CompletedAt *time.Time      `json:"completed_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// ToDomain converts the row to a domain transaction.
func (t *Transaction) ToDomain() (*domain.Transaction, error) {
	amount, err := domain.NewISU(t.Amount)
	if err != nil {
		return nil, err
	}
	return &domain.Transaction{
		ID:          t.ID,
		BuyerID:     t.BuyerID,
		SellerID:    t.SellerID,
		ServiceID:   t.ServiceID,
		Amount:      amount,
		Status:      domain.TransactionStatus(t.Status),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		CompletedAt: t.CompletedAt,
	}, nil
}

// TransactionFromDomain converts a domain transaction to a row.
func TransactionFromDomain(t *domain.Transaction) *Transaction {
	return &Transaction{
		ID:          t.ID,
		BuyerID:     t.BuyerID,
		SellerID:    t.SellerID,
		ServiceID:   t.ServiceID,
		Amount:      t.Amount.Amount(),
		Status:      string(t.Status),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		CompletedAt: t.CompletedAt,
	}
}

// Service represents the services table.
type Service struct {
	ID             string          `gorm:"primaryKey;size:36" json:"id"`
	ProviderID     string          `gorm:"index;size:36;not null" json:"provider_id"`
	ProfessionType string          `gorm:"index;size:30;not null" json:"profession_type"`
	Title          string          `gorm:"size:100;not null" json:"title"`
	Description    string          `gorm:"type:text" json:"description"`
	EstimatedHours decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"estimated_hours"`
	Price          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price"`
	Status         string          `gorm:"index;size:20;not null" json:"status"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}

// ToDomain converts the row to a domain service.
func (s *Service) ToDomain() (*domain.Service, error) {
	price, err := domain.NewISU(s.Price)
	if err != nil {
		return nil, err
	}
	return &domain.Service{
		ID:             s.ID,
		ProviderID:     s.ProviderID,
		ProfessionType: domain.ProfessionType(s.ProfessionType),
		Title:          s.Title,
		Description:    s.Description,
		EstimatedHours: s.EstimatedHours,
		Price:          price,
		Status:         domain.ServiceStatus(s.Status),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}, nil
}

// ServiceFromDomain converts a domain service to a row.
func ServiceFromDomain(s *domain.Service) *Service {
	return &Service{
		ID:             s.ID,
		ProviderID:     s.ProviderID,
		ProfessionType: string(s.ProfessionType),
		Title:          s.Title,
		Description:    s.Description,
		EstimatedHours: s.EstimatedHours,
		Price:          s.Price.Amount(),
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// RefreshToken represents the refresh_tokens table.
type RefreshToken struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	MemberID  string     `gorm:"index;size:36;not null" json:"member_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// IsRevoked reports whether the token has been revoked.
func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

// IsExpired reports whether the token has expired.
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}
