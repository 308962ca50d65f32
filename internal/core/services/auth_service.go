package services

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"isuhub/internal/adapters/persistence/models"
	"isuhub/internal/adapters/persistence/repositories"
	"isuhub/internal/config"
	"isuhub/internal/core/domain"
	"isuhub/internal/pkg/jwt"
	"isuhub/internal/pkg/password"
)

// AuthService handles registration, login and token lifecycle. Registration
// also provisions the member's ISU account with the configured starting
// balance, recorded as an initial_balance ledger entry.
type AuthService struct {
	memberRepo       repositories.MemberRepository
	accountRepo      repositories.AccountRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(
	memberRepo repositories.MemberRepository,
	accountRepo repositories.AccountRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		memberRepo:       memberRepo,
		accountRepo:      accountRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input.
type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginInput represents login input.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult carries the authenticated member and its token pair.
type AuthResult struct {
	Member       *domain.Member
	AccessToken  string
	RefreshToken string
}

// Register creates a member and its ISU account.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	username := strings.TrimSpace(input.Username)

	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("invalid email address")
	}
	if len(username) < 3 || len(username) > 50 {
		return nil, domain.NewValidationError("username must be between 3 and 50 characters")
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.NewValidationError("password must be at least 8 characters")
	}

	exists, err := s.memberRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewValidationError("email is already registered")
	}
	exists, err = s.memberRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewValidationError("username is already taken")
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	member := domain.NewMember(email, username, hash)
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	initialBalance, err := domain.NewISUFromFloat(s.cfg.InitialBalance)
	if err != nil {
		return nil, err
	}
	account := domain.NewAccount(member.ID, initialBalance)
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	if !initialBalance.IsZero() {
		entry := domain.NewLedgerEntry(account.ID, account.ID, initialBalance, domain.LedgerInitialBalance, "initial balance grant")
		if err := s.accountRepo.CreateLedgerEntry(ctx, entry); err != nil {
			return nil, err
		}
	}

	tokens, err := s.issueTokens(ctx, member)
	if err != nil {
		return nil, err
	}

	log.Printf("member registered: %s (%s)", member.Username, member.ID)
	return &AuthResult{Member: member, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

// Login authenticates a member by email and password.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	member, err := s.memberRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(input.Email)))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}
	if !member.IsActive() {
		return nil, domain.NewForbiddenError("member account is not active")
	}
	if !password.Verify(input.Password, member.PasswordHash) {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}

	tokens, err := s.issueTokens(ctx, member)
	if err != nil {
		return nil, err
	}

	log.Printf("member logged in: %s", member.Username)
	return &AuthResult{Member: member, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

// Refresh rotates a refresh token and issues a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		return nil, domain.NewUnauthorizedError("invalid refresh token")
	}

	stored, err := s.refreshTokenRepo.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("refresh token not recognized")
		}
		return nil, err
	}
	if stored.IsRevoked() || stored.IsExpired() {
		return nil, domain.NewUnauthorizedError("refresh token expired or revoked")
	}

	member, err := s.memberRepo.GetByID(ctx, claims.MemberID)
	if err != nil {
		return nil, err
	}
	if !member.IsActive() {
		return nil, domain.NewForbiddenError("member account is not active")
	}

	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, stored.TokenHash); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, member)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Member: member, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

// Logout revokes a member's refresh tokens.
func (s *AuthService) Logout(ctx context.Context, memberID string) error {
	return s.refreshTokenRepo.RevokeAllByMemberID(ctx, memberID)
}

// GetMember returns a member by ID.
func (s *AuthService) GetMember(ctx context.Context, memberID string) (*domain.Member, error) {
	return s.memberRepo.GetByID(ctx, memberID)
}

type tokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) issueTokens(ctx context.Context, member *domain.Member) (*tokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(member.ID, member.Username, string(member.Role), s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, domain.NewInternalError("failed to sign access token", err)
	}

	tokenID := uuid.NewString()
	refreshToken, err := jwt.GenerateRefreshToken(member.ID, tokenID, s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshTokenDays)
	if err != nil {
		return nil, domain.NewInternalError("failed to sign refresh token", err)
	}

	stored := &models.RefreshToken{
		ID:        tokenID,
		MemberID:  member.ID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	if err := s.refreshTokenRepo.Create(ctx, stored); err != nil {
		return nil, err
	}

	return &tokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
