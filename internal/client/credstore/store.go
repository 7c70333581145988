// internal/client/credstore/store.go
package credstore

import (
	"shopauth-service/internal/domain/account"
)

// Storage slot names. They mirror the keys the web clients use so a stored
// payload is interchangeable across client implementations.
const (
	SlotToken    = "token"
	SlotUserData = "userData"
)

// Credentials is the pair a client persists across page loads: the session
// token and the cached identity snapshot it received at login.
type Credentials struct {
	Token    string            `json:"token"`
	UserData *account.Identity `json:"userData,omitempty"`
}

// HasToken reports whether a token is present, regardless of the cached
// identity. The page-layout gate keys off this alone.
func (c Credentials) HasToken() bool {
	return c.Token != ""
}

// Store persists the current credentials. Save writes both slots before
// returning and Clear removes both together; a reader can never observe a
// token without knowing whether its identity accompanies it.
type Store interface {
	Load() (Credentials, error)
	Save(token string, identity account.Identity) error
	Clear() error
}
