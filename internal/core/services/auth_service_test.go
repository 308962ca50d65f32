package services

import (
	"context"
	"testing"

	"isuhub/internal/config"
	"isuhub/internal/core/domain"
)

type authEnv struct {
	members  *fakeMemberRepo
	accounts *fakeAccountRepo
	tokens   *fakeRefreshTokenRepo
	svc      *AuthService
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()

	env := &authEnv{
		members:  newFakeMemberRepo(),
		accounts: newFakeAccountRepo(),
		tokens:   newFakeRefreshTokenRepo(),
	}
	cfg := &config.Config{
		AppMode:        "dev",
		InitialBalance: 100,
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	env.svc = NewAuthService(env.members, env.accounts, env.tokens, cfg)
	return env
}

func TestRegisterProvisionsAccount(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	result, err := env.svc.Register(ctx, &RegisterInput{
		Email:    "Alice@Example.com",
		Username: "alice",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("registration should issue a token pair")
	}
	if result.Member.Email != "alice@example.com" {
		t.Errorf("email = %s, want lowercased", result.Member.Email)
	}
	if result.Member.Role != domain.RoleRegular {
		t.Errorf("role = %s, want regular", result.Member.Role)
	}

	// The member gets an account with the configured starting balance,
	// recorded as an initial_balance grant.
	account, err := env.accounts.GetByOwnerID(ctx, result.Member.ID)
	if err != nil {
		t.Fatalf("GetByOwnerID: %v", err)
	}
	want100, _ := domain.NewISUFromFloat(100)
	if !account.Balance.Equal(want100) {
		t.Errorf("balance = %s, want %s", account.Balance, want100)
	}
	if len(env.accounts.ledger) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(env.accounts.ledger))
	}
	entry := env.accounts.ledger[0]
	if entry.Kind != domain.LedgerInitialBalance {
		t.Errorf("kind = %s, want %s", entry.Kind, domain.LedgerInitialBalance)
	}
	if entry.FromAccountID != account.ID || entry.ToAccountID != account.ID {
		t.Errorf("endpoints %s -> %s, want self-referential", entry.FromAccountID, entry.ToAccountID)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input *RegisterInput
	}{
		{"bad email", &RegisterInput{Email: "not-an-email", Username: "alice", Password: "long enough"}},
		{"short username", &RegisterInput{Email: "a@b.com", Username: "ab", Password: "long enough"}},
		{"short password", &RegisterInput{Email: "a@b.com", Username: "alice", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Register(ctx, tt.input)
			if !domain.IsValidation(err) {
				t.Errorf("kind = %v, want validation", domain.KindOf(err))
			}
		})
	}
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	if _, err := env.svc.Register(ctx, &RegisterInput{
		Email: "alice@example.com", Username: "alice", Password: "long enough",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := env.svc.Register(ctx, &RegisterInput{
		Email: "alice@example.com", Username: "alice2", Password: "long enough",
	}); !domain.IsValidation(err) {
		t.Errorf("duplicate email: kind = %v, want validation", domain.KindOf(err))
	}

	if _, err := env.svc.Register(ctx, &RegisterInput{
		Email: "alice2@example.com", Username: "alice", Password: "long enough",
	}); !domain.IsValidation(err) {
		t.Errorf("duplicate username: kind = %v, want validation", domain.KindOf(err))
	}
}

func TestLogin(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	if _, err := env.svc.Register(ctx, &RegisterInput{
		Email: "alice@example.com", Username: "alice", Password: "long enough",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	result, err := env.svc.Login(ctx, &LoginInput{Email: "alice@example.com", Password: "long enough"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("login should issue an access token")
	}

	if _, err := env.svc.Login(ctx, &LoginInput{Email: "alice@example.com", Password: "wrong password"}); !domain.IsUnauthorized(err) {
		t.Errorf("wrong password: kind = %v, want unauthorized", domain.KindOf(err))
	}
	if _, err := env.svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "long enough"}); !domain.IsUnauthorized(err) {
		t.Errorf("unknown email: kind = %v, want unauthorized", domain.KindOf(err))
	}

	// Deactivated members cannot log in.
	member, _ := env.members.GetByEmail(ctx, "alice@example.com")
	member.Deactivate()
	_ = env.members.Update(ctx, member)
	if _, err := env.svc.Login(ctx, &LoginInput{Email: "alice@example.com", Password: "long enough"}); !domain.IsForbidden(err) {
		t.Errorf("inactive member: kind = %v, want forbidden", domain.KindOf(err))
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	registered, err := env.svc.Register(ctx, &RegisterInput{
		Email: "alice@example.com", Username: "alice", Password: "long enough",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	refreshed, err := env.svc.Refresh(ctx, registered.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Error("refresh should rotate the token")
	}

	// The old token is revoked and cannot be replayed.
	if _, err := env.svc.Refresh(ctx, registered.RefreshToken); !domain.IsUnauthorized(err) {
		t.Errorf("replayed token: kind = %v, want unauthorized", domain.KindOf(err))
	}
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	registered, err := env.svc.Register(ctx, &RegisterInput{
		Email: "alice@example.com", Username: "alice", Password: "long enough",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := env.svc.Logout(ctx, registered.Member.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := env.svc.Refresh(ctx, registered.RefreshToken); !domain.IsUnauthorized(err) {
		t.Errorf("after logout: kind = %v, want unauthorized", domain.KindOf(err))
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	env := newAuthEnv(t)

	if _, err := env.svc.Refresh(context.Background(), "not-a-jwt"); !domain.IsUnauthorized(err) {
		t.Errorf("kind = %v, want unauthorized", domain.KindOf(err))
	}
}
