package roles

import "testing"

func TestLevelOf(t *testing.T) {
	tests := []struct {
		role  string
		level int
		ok    bool
	}{
		{Guest, 0, true},
		{Member, 1, true},
		{Support, 2, true},
		{Moderator, 3, true},
		{Admin, 5, true},
		{SuperAdmin, 7, true},
		{"owner", 0, false},
		{"", 0, false},
		{"ADMIN", 0, false},
	}

	for _, tt := range tests {
		level, ok := LevelOf(tt.role)
		if ok != tt.ok {
			t.Errorf("LevelOf(%q) ok = %v, want %v", tt.role, ok, tt.ok)
			continue
		}
		if ok && level != tt.level {
			t.Errorf("LevelOf(%q) = %d, want %d", tt.role, level, tt.level)
		}
	}
}

func TestMeetsMinimumBoundary(t *testing.T) {
	for _, role := range ValidRoles() {
		level, ok := LevelOf(role)
		if !ok {
			t.Fatalf("LevelOf(%q) not found", role)
		}
		if !MeetsMinimum(level, level) {
			t.Errorf("MeetsMinimum(%d, %d) = false, want true", level, level)
		}
		if MeetsMinimum(level-1, level) {
			t.Errorf("MeetsMinimum(%d, %d) = true, want false", level-1, level)
		}
	}
}

func TestMeetsMinimumTransitive(t *testing.T) {
	admin, _ := LevelOf(Admin)
	moderator, _ := LevelOf(Moderator)
	member, _ := LevelOf(Member)

	if !MeetsMinimum(admin, moderator) || !MeetsMinimum(moderator, member) {
		t.Fatal("expected admin >= moderator >= member")
	}
	if !MeetsMinimum(admin, member) {
		t.Fatal("expected ordering to be transitive")
	}
}

func TestIsValidPair(t *testing.T) {
	tests := []struct {
		name  string
		role  string
		level int
		want  bool
	}{
		{"canonical admin", Admin, 5, true},
		{"canonical member", Member, 1, true},
		{"drifted admin", Admin, 1, false},
		{"drifted member", Member, 5, false},
		{"unknown role", "owner", 5, false},
		{"unknown role at zero", "owner", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPair(tt.role, tt.level); got != tt.want {
				t.Errorf("IsValidPair(%q, %d) = %v, want %v", tt.role, tt.level, got, tt.want)
			}
		})
	}
}

func TestHasMinimumRole(t *testing.T) {
	if !HasMinimumRole(SuperAdmin, Admin) {
		t.Error("super_admin should satisfy admin")
	}
	if HasMinimumRole(Member, Admin) {
		t.Error("member should not satisfy admin")
	}
	if HasMinimumRole("owner", Member) {
		t.Error("unknown role should never satisfy a minimum")
	}
	if HasMinimumRole(Admin, "owner") {
		t.Error("unknown required role should never be satisfied")
	}
}
