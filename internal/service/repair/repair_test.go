package repair

import (
	"context"
	"errors"
	"testing"

	"shopauth-service/internal/domain/account"
	xerrors "shopauth-service/internal/pkg/errors"
	"shopauth-service/internal/pkg/roles"

	"go.uber.org/zap"
)

// fakeStore is an in-memory AccountStore.
type fakeStore struct {
	accounts []*account.Account
	failList bool
}

func (f *fakeStore) List(ctx context.Context) ([]*account.Account, error) {
	if f.failList {
		return nil, xerrors.ErrStoreUnavailable
	}
	out := make([]*account.Account, len(f.accounts))
	copy(out, f.accounts)
	return out, nil
}

func (f *fakeStore) UpdateRolePair(ctx context.Context, id int64, role string, level int) (int64, error) {
	var affected int64
	for _, a := range f.accounts {
		if a.ID == id {
			a.Role = role
			a.RoleLevel = level
			affected++
		}
	}
	return affected, nil
}

func (f *fakeStore) UpdateRolePairByEmail(ctx context.Context, email string, role string, level int) (int64, error) {
	var affected int64
	for _, a := range f.accounts {
		if a.Email == email {
			a.Role = role
			a.RoleLevel = level
			affected++
		}
	}
	return affected, nil
}

func newTestService(store *fakeStore, floor int) *Service {
	return NewService(store, floor, zap.NewNop())
}

func TestAuditFlagsDriftAndFloor(t *testing.T) {
	store := &fakeStore{accounts: []*account.Account{
		{ID: 1, Email: "a@x.com", Role: roles.Member, RoleLevel: 1, Status: "active"},
		{ID: 2, Email: "b@x.com", Role: roles.Admin, RoleLevel: 5, Status: "active"},
		{ID: 3, Email: "c@x.com", Role: roles.Admin, RoleLevel: 1, Status: "active"},
	}}
	svc := newTestService(store, 1)

	snapshot, err := svc.Audit(context.Background())
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(snapshot.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(snapshot.Entries))
	}

	byEmail := map[string]account.AuditEntry{}
	for _, e := range snapshot.Entries {
		byEmail[e.Email] = e
	}

	// a@x.com: valid pair but at the floor.
	if byEmail["a@x.com"].PairMismatch {
		t.Error("a@x.com: pair should be valid")
	}
	if !byEmail["a@x.com"].BelowFloor {
		t.Error("a@x.com: should be flagged at the floor")
	}

	// b@x.com: clean.
	if byEmail["b@x.com"].PairMismatch || byEmail["b@x.com"].BelowFloor {
		t.Error("b@x.com: should not be flagged")
	}

	// c@x.com: admin stored with member's level — drifted and below floor.
	if !byEmail["c@x.com"].PairMismatch {
		t.Error("c@x.com: pair drift not detected")
	}
	if !byEmail["c@x.com"].BelowFloor {
		t.Error("c@x.com: floor violation not detected")
	}

	if got := len(snapshot.Flagged()); got != 2 {
		t.Errorf("flagged = %d, want 2", got)
	}
}

func TestRepairOnePromotesAndClearsFlag(t *testing.T) {
	store := &fakeStore{accounts: []*account.Account{
		{ID: 1, Email: "a@x.com", Role: roles.Member, RoleLevel: 1, Status: "active"},
	}}
	svc := newTestService(store, 1)

	result, err := svc.RepairOne(context.Background(), "a@x.com", roles.Admin)
	if err != nil {
		t.Fatalf("repair one: %v", err)
	}
	if result.Affected != 1 {
		t.Errorf("affected = %d, want 1", result.Affected)
	}
	if store.accounts[0].Role != roles.Admin || store.accounts[0].RoleLevel != 5 {
		t.Errorf("stored pair = (%s, %d), want (admin, 5)",
			store.accounts[0].Role, store.accounts[0].RoleLevel)
	}

	// Re-running the audit must no longer flag the account.
	snapshot, err := svc.Audit(context.Background())
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if got := len(snapshot.Flagged()); got != 0 {
		t.Errorf("flagged after repair = %d, want 0", got)
	}
}

func TestRepairOneIsIdempotent(t *testing.T) {
	store := &fakeStore{accounts: []*account.Account{
		{ID: 1, Email: "a@x.com", Role: roles.Member, RoleLevel: 1, Status: "active"},
	}}
	svc := newTestService(store, 1)

	if _, err := svc.RepairOne(context.Background(), "a@x.com", roles.Admin); err != nil {
		t.Fatalf("first repair: %v", err)
	}
	first := *store.accounts[0]

	if _, err := svc.RepairOne(context.Background(), "a@x.com", roles.Admin); err != nil {
		t.Fatalf("second repair: %v", err)
	}
	second := *store.accounts[0]

	if first.Role != second.Role || first.RoleLevel != second.RoleLevel {
		t.Errorf("repair not idempotent: first (%s, %d), second (%s, %d)",
			first.Role, first.RoleLevel, second.Role, second.RoleLevel)
	}
}

func TestRepairOneZeroMatches(t *testing.T) {
	store := &fakeStore{accounts: []*account.Account{
		{ID: 1, Email: "a@x.com", Role: roles.Member, RoleLevel: 1, Status: "active"},
	}}
	svc := newTestService(store, 1)

	result, err := svc.RepairOne(context.Background(), "nobody@x.com", roles.Admin)
	if err != nil {
		t.Fatalf("repair one: %v", err)
	}
	if result.Affected != 0 {
		t.Errorf("affected = %d, want 0", result.Affected)
	}
}

func TestRepairOneRejectsUnknownRole(t *testing.T) {
	svc := newTestService(&fakeStore{}, 1)

	if _, err := svc.RepairOne(context.Background(), "a@x.com", "owner"); !errors.Is(err, xerrors.ErrUnknownRole) {
		t.Fatalf("err = %v, want ErrUnknownRole", err)
	}
}

func TestRepairManyBelowFloor(t *testing.T) {
	store := &fakeStore{accounts: []*account.Account{
		{ID: 1, Email: "a@x.com", Role: roles.Member, RoleLevel: 1, Status: "active"},
		{ID: 2, Email: "b@x.com", Role: roles.Guest, RoleLevel: 0, Status: "active"},
		{ID: 3, Email: "c@x.com", Role: roles.Admin, RoleLevel: 5, Status: "active"},
	}}
	svc := newTestService(store, 1)

	count, err := svc.RepairMany(context.Background(), BelowFloor(1), roles.Admin)
	if err != nil {
		t.Fatalf("repair many: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	for _, a := range store.accounts {
		if a.Role != roles.Admin || a.RoleLevel != 5 {
			t.Errorf("%s: pair = (%s, %d), want (admin, 5)", a.Email, a.Role, a.RoleLevel)
		}
	}
}

func TestRepairManyZeroMatches(t *testing.T) {
	store := &fakeStore{accounts: []*account.Account{
		{ID: 1, Email: "a@x.com", Role: roles.Admin, RoleLevel: 5, Status: "active"},
	}}
	svc := newTestService(store, 1)

	count, err := svc.RepairMany(context.Background(), MismatchedPair(), roles.Admin)
	if err != nil {
		t.Fatalf("repair many: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	if store.accounts[0].Role != roles.Admin || store.accounts[0].RoleLevel != 5 {
		t.Error("store mutated on zero-match bulk repair")
	}
}

func TestAuditStoreUnavailable(t *testing.T) {
	svc := newTestService(&fakeStore{failList: true}, 1)

	if _, err := svc.Audit(context.Background()); !errors.Is(err, xerrors.ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}
