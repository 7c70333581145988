// internal/app/router.go
package app

import (
	adminHandler "shopauth-service/internal/handlers/admin"
	authHandler "shopauth-service/internal/handlers/auth"
	"shopauth-service/internal/middleware"
	"shopauth-service/internal/pkg/roles"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler    *authHandler.AuthHandler
	AdminHandler   *adminHandler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.GET("/me", h.AuthHandler.GetMe)
	}

	// ==================== Admin Routes ====================
	admin := api.Group("/admin")
	{
		// Name-allowlist gate, same policy the admin UI's route guard uses.
		adminAuth := admin.Group("")
		adminAuth.Use(h.AuthMiddleware.AdminOnly()...)
		{
			adminAuth.GET("/accounts", h.AdminHandler.ListAccounts)
			adminAuth.GET("/accounts/audit", h.AdminHandler.AuditAccounts)
		}

		// Ordinal gate: role mutation additionally requires the admin level,
		// so a drifted admin account below the floor cannot grant roles.
		adminLevel := admin.Group("")
		adminLevel.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireLevel(mustLevel(roles.Admin)))
		{
			adminLevel.PUT("/accounts/:id/role", h.AdminHandler.UpdateAccountRole)
		}
	}
}

func mustLevel(role string) int {
	level, ok := roles.LevelOf(role)
	if !ok {
		panic("unknown role in route setup: " + role)
	}
	return level
}
