// internal/domain/account/dto.go
package account

import "time"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresIn int       `json:"expires_in"`
	IssuedAt  time.Time `json:"issued_at"`
	User      Identity  `json:"user"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AuditEntry is one account's row in an audit snapshot.
type AuditEntry struct {
	Email        string `json:"email"`
	Role         string `json:"role"`
	RoleLevel    int    `json:"role_level"`
	Status       string `json:"status"`
	PairMismatch bool   `json:"pair_mismatch"`
	BelowFloor   bool   `json:"below_floor"`
}

// AuditSnapshot is a point-in-time listing of all accounts with the entries
// that violate role policy flagged.
type AuditSnapshot struct {
	TakenAt time.Time    `json:"taken_at"`
	Floor   int          `json:"floor"`
	Entries []AuditEntry `json:"entries"`
}

// Flagged returns only the entries that violate the pair invariant or sit at
// or below the privileged-operation floor.
func (s *AuditSnapshot) Flagged() []AuditEntry {
	var out []AuditEntry
	for _, e := range s.Entries {
		if e.PairMismatch || e.BelowFloor {
			out = append(out, e)
		}
	}
	return out
}

// RepairResult reports the outcome of a corrective role update.
type RepairResult struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	RoleLevel int    `json:"role_level"`
	Affected  int64  `json:"affected"`
}
