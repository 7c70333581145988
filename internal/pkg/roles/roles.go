// internal/pkg/roles/roles.go
package roles

// Role name constants for the closed role set
const (
	Guest      = "guest"
	Member     = "member"
	Support    = "support"
	Moderator  = "moderator"
	Admin      = "admin"
	SuperAdmin = "super_admin"
)

// hierarchy maps each role to its ordinal level (higher number = more
// privileges). The scale is monotonic; distances between levels carry no
// meaning beyond ordering.
var hierarchy = map[string]int{
	Guest:      0,
	Member:     1,
	Support:    2,
	Moderator:  3,
	Admin:      5,
	SuperAdmin: 7,
}

// DefaultPrivilegedFloor is the role level at or below which an account
// cannot perform admin actions. The effective floor is policy and comes from
// configuration; this is only the fallback.
const DefaultPrivilegedFloor = 1

// ValidRoles returns all roles in the hierarchy.
func ValidRoles() []string {
	return []string{Guest, Member, Support, Moderator, Admin, SuperAdmin}
}

// IsValidRole checks if a role is part of the hierarchy.
func IsValidRole(role string) bool {
	_, exists := hierarchy[role]
	return exists
}

// LevelOf returns the canonical ordinal level for a role.
func LevelOf(role string) (int, bool) {
	level, exists := hierarchy[role]
	return level, exists
}

// MeetsMinimum reports whether an actual level satisfies a required level.
func MeetsMinimum(actual, required int) bool {
	return actual >= required
}

// IsValidPair reports whether a stored (role, level) pair matches the
// hierarchy's canonical level for that role. Unknown roles never form a
// valid pair.
func IsValidPair(role string, level int) bool {
	canonical, exists := hierarchy[role]
	if !exists {
		return false
	}
	return canonical == level
}

// HasMinimumRole checks if a role has at least the privileges of another role.
func HasMinimumRole(role, requiredRole string) bool {
	actual, ok := LevelOf(role)
	if !ok {
		return false
	}
	required, ok := LevelOf(requiredRole)
	if !ok {
		return false
	}
	return MeetsMinimum(actual, required)
}
