package handlers

import (
	"apptnu_backend/internal/services"
	"apptnu_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	factory *services.Factory
}

func NewNotificationHandler(base *BaseHandler, factory *services.Factory) *NotificationHandler {
	return &NotificationHandler{BaseHandler: base, factory: factory}
}

func (h *NotificationHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/notifications/whatsapp", h.SendWhatsApp)
}

// SendWhatsApp handles POST /admin/notifications/whatsapp
func (h *NotificationHandler) SendWhatsApp(c *gin.Context) {
	var req dto.SendWhatsAppRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	svc := h.factory.For(h.GetDB(c))
	result, err := svc.Notification.SendWhatsApp(c.Request.Context(), req.Phone, req.Message)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, result)
}
