// internal/handlers/admin/admin_handler.go
package admin

import (
	"errors"
	"net/http"
	"strconv"

	"shopauth-service/internal/domain/account"
	xerrors "shopauth-service/internal/pkg/errors"
	"shopauth-service/internal/pkg/response"
	authUsecase "shopauth-service/internal/service/auth"
	repairUsecase "shopauth-service/internal/service/repair"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	authService   *authUsecase.AuthService
	repairService *repairUsecase.Service
	logger        *zap.Logger
}

func NewAdminHandler(authService *authUsecase.AuthService, repairService *repairUsecase.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		authService:   authService,
		repairService: repairService,
		logger:        logger,
	}
}

// ListAccounts handles GET /admin/accounts
func (h *AdminHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.authService.ListAccounts(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list accounts", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to list accounts", nil)
		return
	}

	out := make([]account.Identity, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, account.IdentityOf(a))
	}

	response.Success(c, http.StatusOK, "ok", out)
}

// AuditAccounts handles GET /admin/accounts/audit
func (h *AdminHandler) AuditAccounts(c *gin.Context) {
	snapshot, err := h.repairService.Audit(c.Request.Context())
	if err != nil {
		h.logger.Error("audit failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "audit failed", nil)
		return
	}

	response.Success(c, http.StatusOK, "ok", snapshot)
}

// UpdateAccountRole handles PUT /admin/accounts/:id/role
func (h *AdminHandler) UpdateAccountRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid account id", err)
		return
	}

	var req account.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid role update request", err)
		return
	}

	acct, err := h.authService.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrUnknownRole):
			response.ValidationError(c, "unknown role", err)
		case errors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "account not found")
		default:
			h.logger.Error("role update failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "role update failed", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, "role updated", account.IdentityOf(acct))
}
