package routes

import (
	"apptnu_backend/internal/auth"
	"apptnu_backend/internal/handlers"
	"apptnu_backend/internal/middleware"
	"apptnu_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Register mounts the whole /api/v1 surface.
//
// Public:    auth, the Midtrans webhook and token downloads.
// Member:    profile, payments, documents (JWT).
// Admin:     user management, all payments, direct WhatsApp (JWT + role).
func Register(router *gin.Engine, h *handlers.AppHandlers, issuer *auth.TokenIssuer) {
	api := router.Group("/api/v1")

	// Public
	h.Auth.RegisterRoutes(api)
	h.Payment.RegisterWebhookRoutes(api)
	h.Document.RegisterPublicRoutes(api)

	// Authenticated members
	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware(issuer))
	{
		h.User.RegisterRoutes(authenticated)
		h.Payment.RegisterRoutes(authenticated)
		h.Document.RegisterRoutes(authenticated)
	}

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(issuer), middleware.RequireRoles(models.UserRoleAdmin))
	{
		h.User.RegisterAdminRoutes(admin)
		h.Payment.RegisterAdminRoutes(admin)
		h.Notification.RegisterAdminRoutes(admin)
	}
}
