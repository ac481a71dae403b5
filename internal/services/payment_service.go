package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"apptnu_backend/internal/logger"
	"apptnu_backend/internal/models"
	"apptnu_backend/internal/payment/midtrans"
	"apptnu_backend/internal/repositories"
	"apptnu_backend/internal/services/dto"
	"apptnu_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// midtransTimeLayout is the timestamp format Midtrans uses in notifications.
const midtransTimeLayout = "2006-01-02 15:04:05"

type PaymentService interface {
	CreatePayment(ctx context.Context, userID string, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResult, error)
	HandleWebhook(ctx context.Context, payload *dto.MidtransWebhookPayload) (*models.Payment, error)
	GetUserPayments(userID string) ([]models.Payment, error)
	GetAllPayments() ([]models.Payment, error)
}

type PaymentServiceImpl struct {
	db           *gorm.DB
	paymentRepo  repositories.PaymentRepository
	userRepo     repositories.UserRepository
	webhookRepo  repositories.WebhookEventRepository
	gateway      *midtrans.Client
	strict       bool
	notification NotificationService
}

func NewPaymentService(
	db *gorm.DB,
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	webhookRepo repositories.WebhookEventRepository,
	gateway *midtrans.Client,
	strict bool,
	notification NotificationService,
) PaymentService {
	return &PaymentServiceImpl{
		db:           db,
		paymentRepo:  paymentRepo,
		userRepo:     userRepo,
		webhookRepo:  webhookRepo,
		gateway:      gateway,
		strict:       strict,
		notification: notification,
	}
}

// CreatePayment mints an order id, records the pending payment and then asks
// the gateway for a checkout handle. The pending row is written BEFORE the
// gateway call: when the gateway fails the caller gets the row back with
// GatewayFailed set, and the order id stays reconcilable.
func (s *PaymentServiceImpl) CreatePayment(ctx context.Context, userID string, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResult, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound(userID)
		}
		return nil, apperrors.InternalError(err)
	}

	orderID := fmt.Sprintf("ORDER-%d-%s", time.Now().UnixMilli(), userID)

	payment := &models.Payment{
		UserID:          userID,
		MidtransOrderID: orderID,
		Amount:          req.Amount,
		Status:          models.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if !s.gateway.Configured() {
		return &dto.CreatePaymentResult{
			Payment:       payment,
			GatewayFailed: true,
			GatewayError:  apperrors.ErrGatewayNotConfigured.Message,
		}, nil
	}

	snapReq := midtrans.SnapRequest{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:     orderID,
			GrossAmount: req.Amount.IntPart(),
		},
		CustomerDetails: midtrans.CustomerDetails{
			FirstName: user.PICName,
			Email:     user.Email,
			Phone:     user.PICPhone,
		},
		ItemDetails: []midtrans.ItemDetails{
			{
				ID:       "membership",
				Price:    req.Amount.IntPart(),
				Quantity: 1,
				Name:     "Membership - " + user.InstitutionName,
			},
		},
	}

	snapResp, err := s.gateway.CreateTransaction(ctx, snapReq)
	if err != nil {
		logger.CtxWarn(ctx, "Snap transaction failed, pending payment kept",
			"order_id", orderID, "error", err.Error())
		return &dto.CreatePaymentResult{
			Payment:       payment,
			GatewayFailed: true,
			GatewayError:  err.Error(),
		}, nil
	}

	return &dto.CreatePaymentResult{
		Payment:     payment,
		SnapToken:   snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseMidtransTime(s string) *time.Time {
	t, err := time.Parse(midtransTimeLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// mapTransactionStatus maps a Midtrans transaction_status to the internal
// payment status. Unknown statuses stay pending.
func mapTransactionStatus(transactionStatus string) models.PaymentStatus {
	switch transactionStatus {
	case "settlement", "capture":
		return models.PaymentStatusPaid
	case "deny", "cancel", "failure":
		return models.PaymentStatusFailed
	case "expire":
		return models.PaymentStatusExpired
	default:
		return models.PaymentStatusPending
	}
}

// HandleWebhook verifies and applies a Midtrans notification. The payment
// update and the membership activation happen in one transaction; nothing is
// mutated on a bad signature or an unknown order.
func (s *PaymentServiceImpl) HandleWebhook(ctx context.Context, payload *dto.MidtransWebhookPayload) (*models.Payment, error) {
	serverKey := s.gateway.ServerKey()
	if serverKey == "" {
		return nil, apperrors.ErrGatewayNotConfigured
	}

	if !midtrans.VerifySignature(payload.OrderID, payload.StatusCode, payload.GrossAmount, serverKey, payload.SignatureKey) {
		logger.CtxWarn(ctx, "Webhook signature mismatch", "order_id", payload.OrderID)
		return nil, apperrors.ErrInvalidWebhookSignature
	}

	newStatus := mapTransactionStatus(payload.TransactionStatus)

	var updated *models.Payment
	var settledUserID string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var payment *models.Payment
		var err error
		if s.strict {
			payment, err = s.paymentRepo.FindByOrderIDForUpdate(tx, payload.OrderID)
		} else {
			payment, err = s.paymentRepo.FindByOrderID(payload.OrderID)
		}
		if err != nil {
			if errors.Is(err, repositories.ErrPaymentNotFound) {
				return apperrors.ErrPaymentOrderNotFound(payload.OrderID)
			}
			return apperrors.InternalError(err)
		}

		apply := true
		if s.strict {
			// Replays of an already applied transaction and callbacks for a
			// payment that already left pending are recorded but not applied.
			replay, err := s.webhookRepo.HasAppliedTransaction(tx, payload.TransactionID)
			if err != nil {
				return apperrors.InternalError(err)
			}
			if replay || payment.Status != models.PaymentStatusPending {
				apply = false
			}
		}

		// A pending re-affirmation is not a state change: it must not count
		// as an applied transaction, or the terminal webhook arriving later
		// with the same transaction id would be refused as a replay.
		applied := apply && newStatus != models.PaymentStatusPending

		raw, _ := json.Marshal(payload)
		event := &models.WebhookEvent{
			OrderID:           payload.OrderID,
			TransactionID:     payload.TransactionID,
			TransactionStatus: payload.TransactionStatus,
			StatusCode:        payload.StatusCode,
			GrossAmount:       payload.GrossAmount,
			RawPayload:        datatypes.JSON(raw),
			Applied:           applied,
		}
		if err := s.webhookRepo.Create(tx, event); err != nil {
			return apperrors.InternalError(err)
		}

		if !apply {
			updated = payment
			return nil
		}

		// Nullable fields are copied verbatim: absent in the notification
		// means NULL in the row, never a stale value from an earlier one.
		updates := map[string]interface{}{
			"status":                  newStatus,
			"midtrans_transaction_id": nullableString(payload.TransactionID),
			"payment_type":            nullableString(payload.PaymentType),
			"transaction_time":        parseMidtransTime(payload.TransactionTime),
			"settlement_time":         parseMidtransTime(payload.SettlementTime),
			"updated_at":              time.Now(),
		}

		if err := s.paymentRepo.UpdateStatus(tx, payment.ID, updates); err != nil {
			return apperrors.InternalError(err)
		}

		// Membership only ever moves forward here; failed and expired
		// payments never demote an active member.
		if newStatus == models.PaymentStatusPaid {
			userRepo := repositories.NewUserRepository(tx)
			if err := userRepo.UpdateMembershipStatus(payment.UserID, models.MembershipStatusActive); err != nil {
				return apperrors.InternalError(err)
			}
			settledUserID = payment.UserID
		}

		paymentRepo := repositories.NewPaymentRepository(tx)
		updated, err = paymentRepo.FindByID(payment.ID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	if settledUserID != "" && s.notification != nil {
		s.notifySettled(ctx, settledUserID, updated)
	}

	return updated, nil
}

// notifySettled sends the activation message to the PIC. Best effort.
func (s *PaymentServiceImpl) notifySettled(ctx context.Context, userID string, payment *models.Payment) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		logger.CtxWarn(ctx, "Settled payment but user lookup failed", "user_id", userID, "error", err.Error())
		return
	}

	msg := fmt.Sprintf(
		"Pembayaran keanggotaan %s sebesar Rp %s telah kami terima. Keanggotaan Anda sekarang aktif.",
		user.InstitutionName,
		payment.Amount.StringFixed(0),
	)
	result := s.notification.SendRaw(ctx, user.PICPhone, msg)
	if !result.Success {
		logger.CtxWarn(ctx, "Activation WhatsApp failed", "user_id", userID, "error", result.Error)
	}
}

func (s *PaymentServiceImpl) GetUserPayments(userID string) ([]models.Payment, error) {
	payments, err := s.paymentRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return payments, nil
}

func (s *PaymentServiceImpl) GetAllPayments() ([]models.Payment, error) {
	payments, err := s.paymentRepo.ListAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return payments, nil
}
