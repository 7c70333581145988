// internal/client/guard/guard.go
package guard

import (
	"sync"

	"shopauth-service/internal/client/session"
)

// Decision is what the guarded subtree may do after a resolution.
type Decision int

const (
	// RenderNothing blocks the protected subtree. Used while the gate is
	// unresolved and after a denial, so protected content never flashes.
	RenderNothing Decision = iota
	// RenderChildren lets the protected subtree render unchanged.
	RenderChildren
)

// Navigator performs the redirect side effect. Resolution itself is pure;
// the navigation is the only observable effect of a denial.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Guard wraps a protected subtree with a required-role set. On denial it
// issues exactly one redirect to the login path; re-resolving the same
// denied state does not enqueue further navigations. A later successful
// authentication re-arms the redirect (last-state-wins).
type Guard struct {
	gate      *session.Gate
	nav       Navigator
	loginPath string

	mu         sync.Mutex
	redirected bool
}

func New(gate *session.Gate, nav Navigator, loginPath string) *Guard {
	return &Guard{
		gate:      gate,
		nav:       nav,
		loginPath: loginPath,
	}
}

// Resolve evaluates the session gate against the allowed roles and returns
// the render decision, firing the redirect side effect when the holder is
// unauthenticated or denied.
func (g *Guard) Resolve(allowedRoles []string) Decision {
	state := g.gate.Evaluate()

	if state.Status != session.Authenticated {
		g.deny()
		return RenderNothing
	}

	if !session.Authorize(state.Identity, allowedRoles) {
		g.deny()
		return RenderNothing
	}

	g.mu.Lock()
	g.redirected = false
	g.mu.Unlock()

	return RenderChildren
}

func (g *Guard) deny() {
	g.mu.Lock()
	already := g.redirected
	g.redirected = true
	g.mu.Unlock()

	if !already {
		g.nav.Navigate(g.loginPath)
	}
}

// Layout is the page-layout sibling of the route guard. It decides whether
// to present global chrome from token presence alone (not role), and sends
// unauthenticated holders away from non-public pages. It shares the route
// guard's gate, so both verdicts in a render pass come from the same
// credential-store read.
type Layout struct {
	gate      *session.Gate
	nav       Navigator
	loginPath string
}

func NewLayout(gate *session.Gate, nav Navigator, loginPath string) *Layout {
	return &Layout{gate: gate, nav: nav, loginPath: loginPath}
}

// ShowChrome reports whether the global header/sidebar should render for the
// given state.
func (l *Layout) ShowChrome(state session.State) bool {
	return state.TokenPresent
}

// Enforce redirects holders without a token away from a non-public page.
func (l *Layout) Enforce(state session.State, publicPage bool) {
	if publicPage || state.TokenPresent {
		return
	}
	l.nav.Navigate(l.loginPath)
}
