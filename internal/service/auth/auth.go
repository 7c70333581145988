// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"time"

	"shopauth-service/internal/domain/account"
	xerrors "shopauth-service/internal/pkg/errors"
	"shopauth-service/internal/pkg/ratelimit"
	"shopauth-service/internal/pkg/roles"
	"shopauth-service/internal/pkg/token"
	"shopauth-service/internal/repository/postgres"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	accountRepo *postgres.AccountRepository
	tokens      *token.Service
	rateLimiter *ratelimit.LoginLimiter
	logger      *zap.Logger
}

func NewAuthService(
	accountRepo *postgres.AccountRepository,
	tokens *token.Service,
	rateLimiter *ratelimit.LoginLimiter,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		tokens:      tokens,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// ========== Login ==========

// Login authenticates an account with email/password and issues a session
// token. The server keeps no session record; the signed token plus the
// returned identity snapshot are everything the client needs to cache.
func (s *AuthService) Login(ctx context.Context, req *account.LoginRequest, ip string) (*account.LoginResponse, error) {
	allowed, remaining, err := s.rateLimiter.Check(ctx, ip, req.Email)
	if err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}
	if !allowed {
		return nil, xerrors.ErrRateLimited
	}

	acct, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same outcome as a wrong password; never reveal which.
		return nil, xerrors.ErrUnauthorized
	}

	if acct.Status != "active" {
		return nil, xerrors.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("failed login attempt",
			zap.String("email", req.Email),
			zap.Int64("attempts_remaining", remaining),
		)
		return nil, xerrors.ErrUnauthorized
	}

	if err := s.accountRepo.UpdateLastLogin(ctx, acct.ID); err != nil {
		s.logger.Error("failed to update last login", zap.Error(err))
	}
	if err := s.rateLimiter.Reset(ctx, ip, req.Email); err != nil {
		s.logger.Error("failed to reset login attempts", zap.Error(err))
	}

	signed, err := s.tokens.Issue(acct.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &account.LoginResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresIn: int(s.tokens.TTL().Seconds()),
		IssuedAt:  time.Now(),
		User:      account.IdentityOf(acct),
	}, nil
}

// ========== Token authentication ==========

// Authenticate verifies a candidate token and resolves it to the current
// stored account. Every verification failure collapses to ErrUnauthorized;
// the failure subtype is logged, never returned, so callers cannot branch on
// it.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*account.Account, error) {
	claims, failure := s.tokens.Verify(tokenString)
	if failure != nil {
		s.logger.Debug("token rejected", zap.String("reason", string(failure.Reason)))
		return nil, xerrors.ErrUnauthorized
	}

	acct, err := s.accountRepo.FindByID(ctx, claims.IdentityID)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}
	if acct.Status != "active" {
		return nil, xerrors.ErrUnauthorized
	}

	return acct, nil
}

// GetAccount returns the account for an authenticated identity.
func (s *AuthService) GetAccount(ctx context.Context, id int64) (*account.Account, error) {
	acct, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acct, nil
}

// ListAccounts enumerates all accounts for the admin listing.
func (s *AuthService) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ========== Role management ==========

// UpdateRole sets an account's role together with the hierarchy-canonical
// level. This is the only mutation path for the pair besides the repair tool.
func (s *AuthService) UpdateRole(ctx context.Context, id int64, targetRole string) (*account.Account, error) {
	level, ok := roles.LevelOf(targetRole)
	if !ok {
		return nil, xerrors.ErrUnknownRole
	}

	affected, err := s.accountRepo.UpdateRolePair(ctx, id, targetRole, level)
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	if affected == 0 {
		return nil, xerrors.ErrNotFound
	}

	s.logger.Info("role updated",
		zap.Int64("account_id", id),
		zap.String("role", targetRole),
		zap.Int("role_level", level),
	)

	return s.accountRepo.FindByID(ctx, id)
}

// ========== Bootstrap ==========

// EnsureSuperAdminExists creates the super admin account on first start.
func (s *AuthService) EnsureSuperAdminExists(ctx context.Context, email, password, fullName string) error {
	exists, err := s.accountRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check super admin: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	level, _ := roles.LevelOf(roles.SuperAdmin)
	acct := &account.Account{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         roles.SuperAdmin,
		RoleLevel:    level,
		Status:       "active",
	}
	if fullName != "" {
		acct.FullName.String = fullName
		acct.FullName.Valid = true
	}

	if err := s.accountRepo.Create(ctx, acct); err != nil {
		return fmt.Errorf("failed to create super admin: %w", err)
	}

	s.logger.Info("super admin created", zap.String("email", email))
	return nil
}
