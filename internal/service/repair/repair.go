// internal/service/repair/repair.go
package repair

import (
	"context"
	"fmt"
	"time"

	"shopauth-service/internal/domain/account"
	xerrors "shopauth-service/internal/pkg/errors"
	"shopauth-service/internal/pkg/roles"

	"go.uber.org/zap"
)

// AccountStore is the slice of the account repository the repair procedures
// need. Satisfied by postgres.AccountRepository.
type AccountStore interface {
	List(ctx context.Context) ([]*account.Account, error)
	UpdateRolePair(ctx context.Context, id int64, role string, level int) (int64, error)
	UpdateRolePairByEmail(ctx context.Context, email string, role string, level int) (int64, error)
}

// Predicate selects accounts for a bulk repair.
type Predicate func(a *account.Account) bool

// BelowFloor matches accounts whose role level sits at or below the
// privileged-operation floor.
func BelowFloor(floor int) Predicate {
	return func(a *account.Account) bool {
		return a.RoleLevel <= floor
	}
}

// MismatchedPair matches accounts whose stored (role, roleLevel) pair drifted
// from the hierarchy's canonical mapping.
func MismatchedPair() Predicate {
	return func(a *account.Account) bool {
		return !roles.IsValidPair(a.Role, a.RoleLevel)
	}
}

// Service detects and corrects role/role-level drift in stored accounts,
// using the role hierarchy as the policy oracle. All corrective operations
// are idempotent and safe to re-run; each account's pair is updated in one
// atomic statement and no cross-account transaction is held, so running
// against a live store is expected.
type Service struct {
	store  AccountStore
	floor  int
	logger *zap.Logger
}

func NewService(store AccountStore, floor int, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		floor:  floor,
		logger: logger,
	}
}

// Audit enumerates all stored accounts and flags every entry whose role pair
// violates the hierarchy or whose level sits at or below the privileged
// floor. It never mutates anything; drift is corrected only by the explicit
// repair operations.
func (s *Service) Audit(ctx context.Context) (*account.AuditSnapshot, error) {
	accounts, err := s.store.List(ctx)
	if err != nil {
		return nil, xerrors.Wrap(err, "audit failed")
	}

	snapshot := &account.AuditSnapshot{
		TakenAt: time.Now(),
		Floor:   s.floor,
		Entries: make([]account.AuditEntry, 0, len(accounts)),
	}

	for _, a := range accounts {
		snapshot.Entries = append(snapshot.Entries, account.AuditEntry{
			Email:        a.Email,
			Role:         a.Role,
			RoleLevel:    a.RoleLevel,
			Status:       a.Status,
			PairMismatch: !roles.IsValidPair(a.Role, a.RoleLevel),
			BelowFloor:   a.RoleLevel <= s.floor,
		})
	}

	return snapshot, nil
}

// RepairOne sets role and the hierarchy-canonical role level for the account
// matching the email. Zero matches reports zero affected, not an error.
func (s *Service) RepairOne(ctx context.Context, email, targetRole string) (*account.RepairResult, error) {
	level, ok := roles.LevelOf(targetRole)
	if !ok {
		return nil, fmt.Errorf("%w: %q", xerrors.ErrUnknownRole, targetRole)
	}

	affected, err := s.store.UpdateRolePairByEmail(ctx, email, targetRole, level)
	if err != nil {
		return nil, xerrors.Wrap(err, fmt.Sprintf("repair of %s failed", email))
	}

	s.logger.Info("repaired account role",
		zap.String("email", email),
		zap.String("role", targetRole),
		zap.Int("role_level", level),
		zap.Int64("affected", affected),
	)

	return &account.RepairResult{
		Email:     email,
		Role:      targetRole,
		RoleLevel: level,
		Affected:  affected,
	}, nil
}

// RepairMany applies the target role pair to every account matching the
// predicate. It works from a point-in-time listing that may be stale by the
// time each update commits; each individual update is still atomic.
func (s *Service) RepairMany(ctx context.Context, match Predicate, targetRole string) (int64, error) {
	level, ok := roles.LevelOf(targetRole)
	if !ok {
		return 0, fmt.Errorf("%w: %q", xerrors.ErrUnknownRole, targetRole)
	}

	accounts, err := s.store.List(ctx)
	if err != nil {
		return 0, xerrors.Wrap(err, "bulk repair failed")
	}

	var total int64
	for _, a := range accounts {
		if !match(a) {
			continue
		}
		affected, err := s.store.UpdateRolePair(ctx, a.ID, targetRole, level)
		if err != nil {
			return total, xerrors.Wrap(err, fmt.Sprintf("bulk repair stopped at %s", a.Email))
		}
		total += affected
	}

	s.logger.Info("bulk repair finished",
		zap.String("role", targetRole),
		zap.Int64("affected", total),
	)

	return total, nil
}
