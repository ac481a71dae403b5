package app

import (
	"context"

	"apptnu_backend/internal/logger"
	"apptnu_backend/internal/notification"
)

// LoggingProvider is the WhatsApp provider used when no gateway is
// configured: it logs the message and reports success.
type LoggingProvider struct{}

func (LoggingProvider) Send(_ context.Context, phone, message string) notification.SendResult {
	logger.Info("WhatsApp (no gateway configured)", "phone", phone, "length", len(message))
	return notification.SendResult{Success: true, MessageID: "logged"}
}
