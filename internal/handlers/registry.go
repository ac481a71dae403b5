package handlers

import (
	"apptnu_backend/internal/services"
	appvalidator "apptnu_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Payment      *PaymentHandler
	Document     *DocumentHandler
	Notification *NotificationHandler
}

func NewAppHandlers(factory *services.Factory, v *appvalidator.Validator) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		Auth:         NewAuthHandler(base, factory),
		User:         NewUserHandler(base, factory),
		Payment:      NewPaymentHandler(base, factory),
		Document:     NewDocumentHandler(base, factory),
		Notification: NewNotificationHandler(base, factory),
	}
}
