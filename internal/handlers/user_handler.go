package handlers

import (
	"apptnu_backend/internal/services"
	"apptnu_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	factory *services.Factory
}

func NewUserHandler(base *BaseHandler, factory *services.Factory) *UserHandler {
	return &UserHandler{BaseHandler: base, factory: factory}
}

// RegisterRoutes mounts the self-service route; admin routes are mounted
// separately under the admin group.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("/me", h.GetMe)
	}
}

func (h *UserHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.List)
		users.GET("/:id", h.GetByID)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	svc := h.factory.For(h.GetDB(c))
	user, err := svc.User.GetProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"user": user})
}

// GetByID handles GET /admin/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	svc := h.factory.For(h.GetDB(c))
	user, err := svc.User.GetProfile(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"user": user})
}

// List handles GET /admin/users
func (h *UserHandler) List(c *gin.Context) {
	var q dto.UserListQuery
	if !h.BindAndValidateQuery(c, &q) {
		return
	}

	svc := h.factory.For(h.GetDB(c))
	users, err := svc.User.ListUsers(&q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"users": users, "count": len(users)})
}

// Update handles PUT /admin/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.AdminUpdateUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	svc := h.factory.For(h.GetDB(c))
	user, err := svc.User.UpdateUser(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"user": user})
}

// Delete handles DELETE /admin/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	svc := h.factory.For(h.GetDB(c))
	if err := svc.User.DeleteUser(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"message": "User deleted"})
}
