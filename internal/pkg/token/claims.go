// internal/pkg/token/claims.go
package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the fixed claim structure carried by a session token. Tokens that
// decode to anything else are rejected; partial matches are not accepted.
type Claims struct {
	IdentityID int64 `json:"identity_id"`
	jwt.RegisteredClaims
}

// valid reports whether the claim payload has the shape a session token must
// carry: a positive identity id. Registered claims (exp, signature) are
// checked by the parser.
func (c *Claims) valid() bool {
	return c.IdentityID > 0
}
