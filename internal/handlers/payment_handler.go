package handlers

import (
	"net/http"

	"apptnu_backend/internal/services"
	"apptnu_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	factory *services.Factory
}

func NewPaymentHandler(base *BaseHandler, factory *services.Factory) *PaymentHandler {
	return &PaymentHandler{BaseHandler: base, factory: factory}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.Create)
		payments.GET("", h.ListOwn)
	}
}

// RegisterWebhookRoutes mounts the gateway callback. The signature in the
// body is the authentication, so this stays outside the JWT group.
func (h *PaymentHandler) RegisterWebhookRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/midtrans/webhook", h.Webhook)
}

func (h *PaymentHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/payments", h.ListAll)
}

// Create handles POST /payments
func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	svc := h.factory.For(h.GetDB(c))
	result, err := svc.Payment.CreatePayment(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// The pending row exists even when the gateway call failed; 502 tells
	// the client checkout is unavailable while the order id stays valid.
	if result.GatewayFailed {
		c.JSON(http.StatusBadGateway, result)
		return
	}

	h.Created(c, result)
}

// Webhook handles POST /payments/midtrans/webhook
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var payload dto.MidtransWebhookPayload
	if !h.BindAndValidateJSON(c, &payload) {
		return
	}

	svc := h.factory.For(h.GetDB(c))
	payment, err := svc.Payment.HandleWebhook(c.Request.Context(), &payload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"payment": payment})
}

// ListOwn handles GET /payments
func (h *PaymentHandler) ListOwn(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	svc := h.factory.For(h.GetDB(c))
	payments, err := svc.Payment.GetUserPayments(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"payments": payments})
}

// ListAll handles GET /admin/payments
func (h *PaymentHandler) ListAll(c *gin.Context) {
	svc := h.factory.For(h.GetDB(c))
	payments, err := svc.Payment.GetAllPayments()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"payments": payments})
}
