// internal/middleware/helpers.go
package middleware

import (
	"shopauth-service/internal/domain/account"

	"github.com/gin-gonic/gin"
)

// GetIdentity gets the authenticated identity from context.
func GetIdentity(c *gin.Context) (account.Identity, bool) {
	v, exists := c.Get("identity")
	if !exists {
		return account.Identity{}, false
	}

	identity, ok := v.(account.Identity)
	return identity, ok
}

// GetIdentityID gets the identity ID from context.
func GetIdentityID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("identity_id")
	if !exists {
		return 0, false
	}

	id, ok := v.(int64)
	return id, ok
}

// MustGetIdentityID gets identity ID from context or panics.
func MustGetIdentityID(c *gin.Context) int64 {
	id, exists := GetIdentityID(c)
	if !exists {
		panic("identity_id not found in context")
	}
	return id
}

// IsAuthenticated checks if request is authenticated.
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get("identity_id")
	return exists
}

// HasRole checks if the authenticated identity has a role.
func HasRole(c *gin.Context, role string) bool {
	identity, ok := GetIdentity(c)
	if !ok {
		return false
	}
	return identity.Role == role
}
