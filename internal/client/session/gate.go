// internal/client/session/gate.go
package session

import (
	"shopauth-service/internal/client/credstore"
	"shopauth-service/internal/domain/account"
)

// Status is the session-gate state.
type Status int

const (
	// Unauthenticated means no usable credentials are held.
	Unauthenticated Status = iota
	// Checking means a token was found and the gate is resolving it against
	// the cached identity. Evaluate resolves this synchronously; consumers
	// only ever see it as the pre-evaluation state.
	Checking
	// Authenticated means a token and its cached identity are both present.
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Checking:
		return "checking"
	default:
		return "unauthenticated"
	}
}

// State is one evaluation of the gate. TokenPresent is carried separately
// from Status because the page-layout gate keys off token presence alone;
// both gates read the same store snapshot so they can never disagree within
// a render pass.
type State struct {
	Status       Status
	TokenPresent bool
	Identity     account.Identity
}

// Gate derives the session status from the credential store. It holds no
// state of its own beyond the store reference; every protected render calls
// Evaluate and acts on the returned State. The gate never returns an error:
// every path ends in one of the three statuses.
type Gate struct {
	store credstore.Store
}

func NewGate(store credstore.Store) *Gate {
	return &Gate{store: store}
}

// Evaluate reads the store once and resolves the session state. No network
// round trip happens here; the client trusts the identity it cached at
// login. A token without a cached identity resolves to Unauthenticated
// rather than staying in Checking.
func (g *Gate) Evaluate() State {
	creds, err := g.store.Load()
	if err != nil {
		return State{Status: Unauthenticated}
	}

	if !creds.HasToken() {
		return State{Status: Unauthenticated}
	}

	if creds.UserData == nil {
		return State{Status: Unauthenticated, TokenPresent: true}
	}

	return State{
		Status:       Authenticated,
		TokenPresent: true,
		Identity:     *creds.UserData,
	}
}

// Authorize evaluates the role-name allowlist against an authenticated
// identity. An empty allowlist means no restriction. This check is
// deliberately name-based, not level-based; the numeric hierarchy check
// lives in the roles package and the two are separate policies.
func Authorize(identity account.Identity, allowedRoles []string) bool {
	if len(allowedRoles) == 0 {
		return true
	}
	for _, role := range allowedRoles {
		if identity.Role == role {
			return true
		}
	}
	return false
}

// Login stores the issued token together with its identity snapshot. Both
// slots are written before the call returns.
func (g *Gate) Login(token string, identity account.Identity) error {
	return g.store.Save(token, identity)
}

// Logout clears the credential store. From any state the session is
// destroyed: token and cached identity are purged together and the next
// Evaluate reports Unauthenticated.
func (g *Gate) Logout() error {
	return g.store.Clear()
}
