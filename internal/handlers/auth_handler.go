package handlers

import (
	"apptnu_backend/internal/services"
	"apptnu_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	factory *services.Factory
}

func NewAuthHandler(base *BaseHandler, factory *services.Factory) *AuthHandler {
	return &AuthHandler{BaseHandler: base, factory: factory}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	svc := h.factory.For(h.GetDB(c))
	resp, err := svc.Auth.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, resp)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	svc := h.factory.For(h.GetDB(c))
	resp, err := svc.Auth.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, resp)
}
