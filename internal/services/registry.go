package services

import (
	"apptnu_backend/internal/auth"
	"apptnu_backend/internal/email"
	"apptnu_backend/internal/notification"
	"apptnu_backend/internal/payment/midtrans"
	"apptnu_backend/internal/repositories"
	"apptnu_backend/internal/storage"

	"gorm.io/gorm"
)

// ServiceContainer bundles every service for one request.
type ServiceContainer struct {
	Auth         AuthService
	User         UserService
	Payment      PaymentService
	Document     DocumentService
	Notification NotificationService
}

// Factory builds request-scoped service containers. Handlers call For with
// the DB handle from the request context, so a test can substitute a
// transaction for the pool without the services noticing.
type Factory struct {
	Issuer         *auth.TokenIssuer
	Gateway        *midtrans.Client
	StrictWebhooks bool
	Provider       notification.Provider
	Store          storage.Storage
	BaseURL        string
	Mailer         email.Sender // nil disables download-link mail
}

func (f *Factory) For(db *gorm.DB) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	webhookRepo := repositories.NewWebhookEventRepository(db)

	notificationSvc := NewNotificationService(f.Provider)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, f.Issuer),
		User:         NewUserService(userRepo),
		Payment:      NewPaymentService(db, paymentRepo, userRepo, webhookRepo, f.Gateway, f.StrictWebhooks, notificationSvc),
		Document:     NewDocumentService(docRepo, paymentRepo, userRepo, f.Store, f.BaseURL, f.Mailer),
		Notification: notificationSvc,
	}
}
