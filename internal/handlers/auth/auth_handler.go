// internal/handlers/auth/auth_handler.go
package auth

import (
	"errors"
	"net/http"

	"shopauth-service/internal/domain/account"
	"shopauth-service/internal/middleware"
	xerrors "shopauth-service/internal/pkg/errors"
	"shopauth-service/internal/pkg/response"
	authUsecase "shopauth-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *authUsecase.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *authUsecase.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req account.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid login request", err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrRateLimited):
			response.Error(c, http.StatusTooManyRequests, "too many login attempts", nil)
		case errors.Is(err, xerrors.ErrUnauthorized):
			response.Unauthorized(c, "invalid credentials")
		default:
			h.logger.Error("login failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "login failed", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, "login successful", resp)
}

// Logout handles POST /auth/logout. Tokens are self-contained and the server
// holds no session record, so there is nothing to revoke here; destruction
// is the client purging its credential store. The endpoint exists so clients
// have a uniform place to signal the logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	id := middleware.MustGetIdentityID(c)
	h.logger.Info("logout", zap.Int64("identity_id", id))

	response.Success(c, http.StatusOK, "logged out", nil)
}

// GetMe handles GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	id := middleware.MustGetIdentityID(c)

	acct, err := h.authService.GetAccount(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "account not found")
		return
	}

	response.Success(c, http.StatusOK, "ok", account.IdentityOf(acct))
}
