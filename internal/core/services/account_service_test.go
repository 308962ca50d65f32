package services

import (
	"context"
	"testing"

	"isuhub/internal/core/domain"
)

type accountEnv struct {
	members  *fakeMemberRepo
	accounts *fakeAccountRepo
	svc      *AccountService

	admin   *domain.Member
	member  *domain.Member
	account *domain.Account
}

func newAccountEnv(t *testing.T) *accountEnv {
	t.Helper()
	ctx := context.Background()

	env := &accountEnv{
		members:  newFakeMemberRepo(),
		accounts: newFakeAccountRepo(),
	}
	env.svc = NewAccountService(env.members, env.accounts)

	env.admin = domain.NewMember("admin@example.com", "admin", "hash")
	env.admin.PromoteToAdmin()
	env.member = domain.NewMember("member@example.com", "member", "hash")
	_ = env.members.Create(ctx, env.admin)
	_ = env.members.Create(ctx, env.member)

	balance, _ := domain.NewISUFromFloat(100)
	env.account = domain.NewAccount(env.member.ID, balance)
	_ = env.accounts.Create(ctx, env.account)

	return env
}

func TestAdjustAdminOnly(t *testing.T) {
	env := newAccountEnv(t)

	amount, _ := domain.NewISUFromFloat(50)
	_, err := env.svc.Adjust(context.Background(), &AdjustInput{
		AdminID: env.member.ID,
		OwnerID: env.member.ID,
		Amount:  amount,
		Credit:  true,
	})
	if !domain.IsForbidden(err) {
		t.Errorf("kind = %v, want forbidden", domain.KindOf(err))
	}
}

func TestAdjustCreditAndDebit(t *testing.T) {
	env := newAccountEnv(t)
	ctx := context.Background()

	fifty, _ := domain.NewISUFromFloat(50)
	account, err := env.svc.Adjust(ctx, &AdjustInput{
		AdminID:     env.admin.ID,
		OwnerID:     env.member.ID,
		Amount:      fifty,
		Credit:      true,
		Description: "goodwill credit",
	})
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	want150, _ := domain.NewISUFromFloat(150)
	if !account.Balance.Equal(want150) {
		t.Errorf("balance = %s, want %s", account.Balance, want150)
	}

	// The correction is on the ledger, against the account itself.
	if len(env.accounts.ledger) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(env.accounts.ledger))
	}
	entry := env.accounts.ledger[0]
	if entry.Kind != domain.LedgerAdminAdjustment {
		t.Errorf("kind = %s, want %s", entry.Kind, domain.LedgerAdminAdjustment)
	}
	if entry.FromAccountID != account.ID || entry.ToAccountID != account.ID {
		t.Errorf("endpoints %s -> %s, want self-referential", entry.FromAccountID, entry.ToAccountID)
	}

	// A debit past zero is rejected and writes nothing: neither the balance
	// nor the ledger changes.
	tooMuch, _ := domain.NewISUFromFloat(1000)
	if _, err := env.svc.Adjust(ctx, &AdjustInput{
		AdminID: env.admin.ID,
		OwnerID: env.member.ID,
		Amount:  tooMuch,
	}); !domain.IsValidation(err) {
		t.Errorf("kind = %v, want validation", domain.KindOf(err))
	}
	stored, err := env.accounts.GetByOwnerID(ctx, env.member.ID)
	if err != nil {
		t.Fatalf("GetByOwnerID: %v", err)
	}
	if !stored.Balance.Equal(want150) {
		t.Errorf("balance after failed debit = %s, want %s", stored.Balance, want150)
	}
	if len(env.accounts.ledger) != 1 {
		t.Errorf("ledger entries = %d, want 1", len(env.accounts.ledger))
	}
}

func TestAdjustUnknownOwner(t *testing.T) {
	env := newAccountEnv(t)

	amount, _ := domain.NewISUFromFloat(10)
	_, err := env.svc.Adjust(context.Background(), &AdjustInput{
		AdminID: env.admin.ID,
		OwnerID: "nobody",
		Amount:  amount,
		Credit:  true,
	})
	if !domain.IsNotFound(err) {
		t.Errorf("kind = %v, want not found", domain.KindOf(err))
	}
	if len(env.accounts.ledger) != 0 {
		t.Errorf("ledger entries = %d, want 0", len(env.accounts.ledger))
	}
}

func TestGetHistoryVisibility(t *testing.T) {
	env := newAccountEnv(t)
	ctx := context.Background()

	other := domain.NewMember("other@example.com", "other", "hash")
	_ = env.members.Create(ctx, other)

	amount, _ := domain.NewISUFromFloat(100)
	_ = env.accounts.CreateLedgerEntry(ctx, domain.NewLedgerEntry(env.account.ID, env.account.ID, amount, domain.LedgerInitialBalance, "initial balance grant"))

	// Own history is visible.
	entries, total, err := env.svc.GetHistory(ctx, env.member.ID, env.member.ID, 0, 20)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Errorf("total = %d, entries = %d", total, len(entries))
	}

	// Another member's history is not.
	if _, _, err := env.svc.GetHistory(ctx, other.ID, env.member.ID, 0, 20); !domain.IsForbidden(err) {
		t.Errorf("kind = %v, want forbidden", domain.KindOf(err))
	}

	// Admins can read any history.
	if _, _, err := env.svc.GetHistory(ctx, env.admin.ID, env.member.ID, 0, 20); err != nil {
		t.Errorf("admin GetHistory: %v", err)
	}
}
