// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"net/http"

	"shopauth-service/internal/domain/account"
	"shopauth-service/internal/pkg/response"
	"shopauth-service/internal/pkg/roles"
	"shopauth-service/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// Authenticator resolves a candidate token to the current account.
// Implemented by the auth service.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*account.Account, error)
}

type AuthMiddleware struct {
	authService Authenticator
}

func NewAuthMiddleware(authService Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Auth is the base authentication middleware. It extracts the bearer
// credential, verifies it, and resolves the current account. A missing
// credential and a failed verification both end as 401; the verification
// subtype is never exposed to the request.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := token.DecodeBearer(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		acct, err := m.authService.Authenticate(c.Request.Context(), raw)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}

		identity := account.IdentityOf(acct)
		c.Set("identity", identity)
		c.Set("identity_id", identity.ID)

		c.Next()
	}
}

// RequireRole requires the account's role to be one of the allowed names.
// An empty allowlist means no restriction. This is the name-based check the
// UI gate uses; it deliberately ignores role levels — see RequireLevel for
// the ordinal variant. MUST be used after Auth().
func (m *AuthMiddleware) RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			response.Error(c, http.StatusForbidden, "authentication required", nil)
			return
		}

		if len(allowed) == 0 {
			c.Next()
			return
		}

		for _, role := range allowed {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "insufficient permissions", nil, map[string]interface{}{
			"required_roles": allowed,
		})
	}
}

// RequireLevel requires the account's role level to meet a minimum ordinal.
// This is the numeric-hierarchy check; it coexists with the name-based
// RequireRole and the two are intentionally not unified. MUST be used after
// Auth().
func (m *AuthMiddleware) RequireLevel(minimum int) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			response.Error(c, http.StatusForbidden, "authentication required", nil)
			return
		}

		if !roles.MeetsMinimum(identity.RoleLevel, minimum) {
			response.Error(c, http.StatusForbidden, "insufficient permissions", nil, map[string]interface{}{
				"required_level": minimum,
			})
			return
		}

		c.Next()
	}
}

// AdminOnly returns middlewares for admin-only routes (Auth + RequireRole).
func (m *AuthMiddleware) AdminOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireRole(roles.Admin, roles.SuperAdmin),
	}
}

// SuperAdminOnly returns middlewares for super admin-only routes.
func (m *AuthMiddleware) SuperAdminOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireRole(roles.SuperAdmin),
	}
}
