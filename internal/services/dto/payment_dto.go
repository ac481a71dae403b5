package dto

import (
	"apptnu_backend/internal/models"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest starts a checkout. Amount is in IDR.
type CreatePaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// CreatePaymentResult distinguishes full success from the case where the
// pending payment row was written but the gateway call failed. The row
// survives either way, so the order id can be reconciled later.
type CreatePaymentResult struct {
	Payment       *models.Payment `json:"payment"`
	SnapToken     string          `json:"snap_token,omitempty"`
	RedirectURL   string          `json:"redirect_url,omitempty"`
	GatewayFailed bool            `json:"gateway_failed,omitempty"`
	GatewayError  string          `json:"gateway_error,omitempty"`
}

// MidtransWebhookPayload is the notification body Midtrans POSTs. Only the
// fields the reconciler needs are bound; the full payload is preserved raw
// in the webhook ledger.
type MidtransWebhookPayload struct {
	OrderID           string `json:"order_id" validate:"required"`
	StatusCode        string `json:"status_code" validate:"required"`
	GrossAmount       string `json:"gross_amount" validate:"required"`
	SignatureKey      string `json:"signature_key" validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	TransactionID     string `json:"transaction_id"`
	TransactionTime   string `json:"transaction_time"`
	SettlementTime    string `json:"settlement_time"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
}
