// internal/repository/postgres/account_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"shopauth-service/internal/domain/account"
	xerrors "shopauth-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, email, full_name, password_hash, role, role_level, status, last_login, created_at, updated_at`

func scanAccount(row pgx.Row) (*account.Account, error) {
	var a account.Account
	err := row.Scan(
		&a.ID, &a.Email, &a.FullName, &a.PasswordHash,
		&a.Role, &a.RoleLevel, &a.Status,
		&a.LastLogin, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &a, nil
}

// FindByEmail retrieves an account by email (case-insensitive).
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE LOWER(email) = LOWER($1)
	`
	return scanAccount(r.db.QueryRow(ctx, query, email))
}

// FindByID retrieves an account by id.
func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*account.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`
	return scanAccount(r.db.QueryRow(ctx, query, id))
}

// List enumerates every account ordered by email. Used by the admin listing
// and the audit path.
func (r *AccountRepository) List(ctx context.Context) ([]*account.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY email
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// Create inserts a new account with its role pair.
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (email, full_name, password_hash, role, role_level, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		a.Email, a.FullName, a.PasswordHash, a.Role, a.RoleLevel, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// UpdateRolePair sets role and role_level together in one statement. The pair
// is never written separately; a half-applied update cannot be observed.
func (r *AccountRepository) UpdateRolePair(ctx context.Context, id int64, role string, level int) (int64, error) {
	query := `
		UPDATE accounts
		SET role = $2, role_level = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, role, level)
	if err != nil {
		return 0, fmt.Errorf("failed to update role pair: %w", err)
	}

	return tag.RowsAffected(), nil
}

// UpdateRolePairByEmail is the email-keyed variant used by the repair tool.
// Zero matched rows is not an error.
func (r *AccountRepository) UpdateRolePairByEmail(ctx context.Context, email string, role string, level int) (int64, error) {
	query := `
		UPDATE accounts
		SET role = $2, role_level = $3, updated_at = NOW()
		WHERE LOWER(email) = LOWER($1)
	`

	tag, err := r.db.Exec(ctx, query, email, role, level)
	if err != nil {
		return 0, fmt.Errorf("failed to update role pair by email: %w", err)
	}

	return tag.RowsAffected(), nil
}

// UpdateLastLogin stamps the last successful login.
func (r *AccountRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE accounts SET last_login = NOW(), updated_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}

// ExistsByEmail checks whether an account with the email already exists.
func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1))`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}
