package services

import (
	"context"

	"apptnu_backend/internal/notification"
	"apptnu_backend/pkg/apperrors"
)

type NotificationService interface {
	// SendWhatsApp normalizes and validates the number, then delivers.
	SendWhatsApp(ctx context.Context, phone, message string) (notification.SendResult, error)
	// SendRaw is the fire-and-forget variant used by other services; all
	// failures are folded into the result instead of an error.
	SendRaw(ctx context.Context, phone, message string) notification.SendResult
}

type NotificationServiceImpl struct {
	provider notification.Provider
}

func NewNotificationService(provider notification.Provider) NotificationService {
	return &NotificationServiceImpl{provider: provider}
}

func (s *NotificationServiceImpl) SendWhatsApp(ctx context.Context, phone, message string) (notification.SendResult, error) {
	normalized, err := notification.NormalizePhoneNumber(phone)
	if err != nil {
		return notification.SendResult{}, apperrors.ErrInvalidPhoneNumber
	}
	if len(message) > notification.MaxMessageLength {
		return notification.SendResult{}, apperrors.ErrMessageTooLong
	}

	return s.provider.Send(ctx, normalized, message), nil
}

func (s *NotificationServiceImpl) SendRaw(ctx context.Context, phone, message string) notification.SendResult {
	result, err := s.SendWhatsApp(ctx, phone, message)
	if err != nil {
		return notification.SendResult{Error: err.Error()}
	}
	return result
}
