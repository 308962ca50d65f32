package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"isuhub/internal/core/domain"
)

// MemberResponse is the JSON shape of a member. The password hash never
// leaves the service layer.
type MemberResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Username           string    `json:"username"`
	Role               string    `json:"role"`
	Status             string    `json:"status"`
	ManagedProfessions []string  `json:"managed_professions,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func toMemberResponse(m *domain.Member) *MemberResponse {
	professions := make([]string, 0, len(m.ManagedProfessions))
	for _, p := range m.ManagedProfessions {
		professions = append(professions, string(p))
	}

	return &MemberResponse{
		ID:                 m.ID,
		Email:              m.Email,
		Username:           m.Username,
		Role:               string(m.Role),
		Status:             string(m.Status),
		ManagedProfessions: professions,
		CreatedAt:          m.CreatedAt,
	}
}

// AccountResponse is the JSON shape of an ISU account.
type AccountResponse struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toAccountResponse(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Balance:   a.Balance.Amount(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// LedgerEntryResponse is the JSON shape of a ledger entry.
type LedgerEntryResponse struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          string          `json:"kind"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toLedgerEntryResponses(entries []*domain.LedgerEntry) []*LedgerEntryResponse {
	out := make([]*LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &LedgerEntryResponse{
			ID:            e.ID,
			FromAccountID: e.FromAccountID,
			ToAccountID:   e.ToAccountID,
			Amount:        e.Amount.Amount(),
			Kind:          string(e.Kind),
			Description:   e.Description,
			CreatedAt:     e.CreatedAt,
		})
	}
	return out
}

// StandardResponse is the JSON shape of a profession standard.
type StandardResponse struct {
	ID             string          `json:"id"`
	ProfessionType string          `json:"profession_type"`
	Rate           decimal.Decimal `json:"rate"`
	Description    string          `json:"description,omitempty"`
	IsActive       bool            `json:"is_active"`
	UpdatedBy      string          `json:"updated_by,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toStandardResponse(s *domain.ProfessionStandard) *StandardResponse {
	return &StandardResponse{
		ID:             s.ID,
		ProfessionType: string(s.ProfessionType),
		Rate:           s.Rate.Rate(),
		Description:    s.Description,
		IsActive:       s.IsActive,
		UpdatedBy:      s.UpdatedBy,
		UpdatedAt:      s.UpdatedAt,
	}
}

func toStandardResponses(standards []*domain.ProfessionStandard) []*StandardResponse {
	out := make([]*StandardResponse, 0, len(standards))
	for _, s := range standards {
		out = append(out, toStandardResponse(s))
	}
	return out
}

// StandardHistoryResponse is the JSON shape of a standard change record.
type StandardHistoryResponse struct {
	ID         string           `json:"id"`
	StandardID string           `json:"standard_id"`
	Action     string           `json:"action"`
	OldRate    *decimal.Decimal `json:"old_rate,omitempty"`
	NewRate    *decimal.Decimal `json:"new_rate,omitempty"`
	Reason     string           `json:"reason,omitempty"`
	ChangedBy  string           `json:"changed_by"`
	CreatedAt  time.Time        `json:"created_at"`
}

func toStandardHistoryResponses(history []*domain.StandardHistory) []*StandardHistoryResponse {
	out := make([]*StandardHistoryResponse, 0, len(history))
	for _, h := range history {
		resp := &StandardHistoryResponse{
			ID:         h.ID,
			StandardID: h.StandardID,
			Action:     string(h.Action),
			Reason:     h.Reason,
			ChangedBy:  h.ChangedBy,
			CreatedAt:  h.CreatedAt,
		}
		if h.OldRate != nil {
			rate := h.OldRate.Rate()
			resp.OldRate = &rate
		}
		if h.NewRate != nil {
			rate := h.NewRate.Rate()
			resp.NewRate = &rate
		}
		out = append(out, resp)
	}
	return out
}

// TransactionResponse is the JSON shape of a transaction.
type TransactionResponse struct {
	ID          string          `json:"id"`
	BuyerID     string          `json:"buyer_id"`
	SellerID    string          `json:"seller_id"`
	ServiceID   string          `json:"service_id"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

func toTransactionResponse(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		BuyerID:     t.BuyerID,
		SellerID:    t.SellerID,
		ServiceID:   t.ServiceID,
		Amount:      t.Amount.Amount(),
		Status:      string(t.Status),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func toTransactionResponses(transactions []*domain.Transaction) []*TransactionResponse {
	out := make([]*TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, toTransactionResponse(t))
	}
	return out
}

// ServiceResponse is the JSON shape of a published service.
type ServiceResponse struct {
	ID             string          `json:"id"`
	ProviderID     string          `json:"provider_id"`
	ProfessionType string          `json:"profession_type"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	EstimatedHours decimal.Decimal `json:"estimated_hours"`
	Price          decimal.Decimal `json:"price"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toServiceResponse(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:             s.ID,
		ProviderID:     s.ProviderID,
		ProfessionType: string(s.ProfessionType),
		Title:          s.Title,
		Description:    s.Description,
		EstimatedHours: s.EstimatedHours,
		Price:          s.Price.Amount(),
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt,
	}
}

func toServiceResponses(services []*domain.Service) []*ServiceResponse {
	out := make([]*ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, toServiceResponse(s))
	}
	return out
}
