// internal/domain/account/entity.go
package account

import (
	"database/sql"
	"time"
)

// Account is the authenticated principal record. Role and RoleLevel must stay
// mutually consistent per the role hierarchy; drifted pairs are detected by
// the audit path and corrected only through the repair path.
type Account struct {
	ID           int64          `json:"id" db:"id"`
	Email        string         `json:"email" db:"email"`
	FullName     sql.NullString `json:"full_name" db:"full_name"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Role         string         `json:"role" db:"role"`
	RoleLevel    int            `json:"role_level" db:"role_level"`
	Status       string         `json:"status" db:"status"` // active, inactive, suspended
	LastLogin    sql.NullTime   `json:"last_login" db:"last_login"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// Identity is the minimal principal snapshot the client caches alongside its
// token (the "userData" slot). It carries no credentials.
type Identity struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name,omitempty"`
	Role      string `json:"role"`
	RoleLevel int    `json:"role_level"`
}

// IdentityOf projects an account into the snapshot shape the client stores.
func IdentityOf(a *Account) Identity {
	return Identity{
		ID:        a.ID,
		Email:     a.Email,
		FullName:  a.FullName.String,
		Role:      a.Role,
		RoleLevel: a.RoleLevel,
	}
}
