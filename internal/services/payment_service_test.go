package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"apptnu_backend/internal/models"
	"apptnu_backend/internal/payment/midtrans"
	"apptnu_backend/internal/services/dto"
	"apptnu_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerKey = "test-server-key"

func signedWebhook(orderID, transactionStatus, transactionID string) *dto.MidtransWebhookPayload {
	p := &dto.MidtransWebhookPayload{
		OrderID:           orderID,
		StatusCode:        "200",
		GrossAmount:       "130000.00",
		TransactionStatus: transactionStatus,
		TransactionID:     transactionID,
		TransactionTime:   "2026-08-01 10:00:00",
		SettlementTime:    "2026-08-01 10:05:00",
		PaymentType:       "bank_transfer",
	}
	p.SignatureKey = midtrans.Signature(p.OrderID, p.StatusCode, p.GrossAmount, testServerKey)
	return p
}

func newSnapTestServer(t *testing.T, status int, body interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Basic "))
		w.WriteHeader(status)
		if body != nil {
			json.NewEncoder(w).Encode(body)
		}
	}))
}

func TestMapTransactionStatus(t *testing.T) {
	cases := map[string]models.PaymentStatus{
		"settlement": models.PaymentStatusPaid,
		"capture":    models.PaymentStatusPaid,
		"deny":       models.PaymentStatusFailed,
		"cancel":     models.PaymentStatusFailed,
		"failure":    models.PaymentStatusFailed,
		"expire":     models.PaymentStatusExpired,
		"pending":    models.PaymentStatusPending,
		"authorize":  models.PaymentStatusPending,
		"":           models.PaymentStatusPending,
	}

	for in, want := range cases {
		assert.Equal(t, want, mapTransactionStatus(in), "status %q", in)
	}
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")
	svc := newTestPaymentService(db, midtrans.NewClient(testServerKey, "sandbox"), true, nil)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		_, err := svc.CreatePayment(context.Background(), user.ID, &dto.CreatePaymentRequest{Amount: amount})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPaymentAmount)
	}

	var count int64
	db.Model(&models.Payment{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreatePaymentUnknownUserInsertsNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(db, midtrans.NewClient(testServerKey, "sandbox"), true, nil)

	_, err := svc.CreatePayment(context.Background(), "missing-user", &dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(130000),
	})
	require.Error(t, err)

	var count int64
	db.Model(&models.Payment{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreatePaymentSuccess(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")

	srv := newSnapTestServer(t, http.StatusCreated, map[string]string{
		"token":        "snap-token-1",
		"redirect_url": "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token-1",
	})
	defer srv.Close()

	gateway := midtrans.NewClient(testServerKey, "sandbox")
	gateway.SetBaseURL(srv.URL)
	svc := newTestPaymentService(db, gateway, true, nil)

	result, err := svc.CreatePayment(context.Background(), user.ID, &dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(130000),
	})
	require.NoError(t, err)

	assert.False(t, result.GatewayFailed)
	assert.Equal(t, "snap-token-1", result.SnapToken)
	assert.NotEmpty(t, result.RedirectURL)
	assert.True(t, strings.HasPrefix(result.Payment.MidtransOrderID, "ORDER-"))
	assert.True(t, strings.HasSuffix(result.Payment.MidtransOrderID, user.ID))
	assert.Equal(t, models.PaymentStatusPending, result.Payment.Status)
	assert.Nil(t, result.Payment.MidtransTransactionID)
}

func TestCreatePaymentGatewayFailureKeepsPendingRow(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")

	srv := newSnapTestServer(t, http.StatusInternalServerError, map[string][]string{
		"error_messages": {"upstream broke"},
	})
	defer srv.Close()

	gateway := midtrans.NewClient(testServerKey, "sandbox")
	gateway.SetBaseURL(srv.URL)
	svc := newTestPaymentService(db, gateway, true, nil)

	result, err := svc.CreatePayment(context.Background(), user.ID, &dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(130000),
	})
	require.NoError(t, err)

	assert.True(t, result.GatewayFailed)
	assert.Contains(t, result.GatewayError, "upstream broke")
	assert.Empty(t, result.SnapToken)

	// The pending row survives the gateway failure.
	var stored models.Payment
	require.NoError(t, db.First(&stored, "id = ?", result.Payment.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, stored.Status)
}

func TestCreatePaymentWithoutServerKey(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")
	svc := newTestPaymentService(db, midtrans.NewClient("", "sandbox"), true, nil)

	result, err := svc.CreatePayment(context.Background(), user.ID, &dto.CreatePaymentRequest{
		Amount: decimal.NewFromInt(130000),
	})
	require.NoError(t, err)

	assert.True(t, result.GatewayFailed)

	var count int64
	db.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusPending).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestHandleWebhookBadSignatureNoMutation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")
	payment := createTestPayment(t, db, user.ID, "ORDER-1-"+user.ID, models.PaymentStatusPending)
	svc := newTestPaymentService(db, midtrans.NewClient(testServerKey, "sandbox"), true, nil)

	payload := signedWebhook(payment.MidtransOrderID, "settlement", "tx-1")
	payload.SignatureKey = "forged"

	_, err := svc.HandleWebhook(context.Background(), payload)
	assert.ErrorIs(t, err, apperrors.ErrInvalidWebhookSignature)

	var stored models.Payment
	require.NoError(t, db.First(&stored, "id = ?", payment.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, stored.Status)
	assert.Nil(t, stored.MidtransTransactionID)

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, models.MembershipStatusPending, fresh.MembershipStatus)

	var events int64
	db.Model(&models.WebhookEvent{}).Count(&events)
	assert.Zero(t, events)
}

func TestHandleWebhookUnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(db, midtrans.NewClient(testServerKey, "sandbox"), true, nil)

	_, err := svc.HandleWebhook(context.Background(), signedWebhook("ORDER-unknown", "settlement", "tx-1"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, "ORDER-unknown")
}

func TestHandleWebhookSettlementActivatesMembership(t *testing.T) {
	db := setupTestDB(t)
	provider := &recordingProvider{}
	user := createTestUser(t, db, "inst@test.ac.id")
	payment := createTestPayment(t, db, user.ID, "ORDER-1-"+user.ID, models.PaymentStatusPending)
	svc := newTestPaymentService(db, midtrans.NewClient(testServerKey, "sandbox"), true, provider)

	updated, err := svc.HandleWebhook(context.Background(), signedWebhook(payment.MidtransOrderID, "settlement", "tx-1"))
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, updated.Status)
	require.NotNil(t, updated.MidtransTransactionID)
	assert.Equal(t, "tx-1", *updated.MidtransTransactionID)
	require.NotNil(t, updated.PaymentType)
	assert.Equal(t, "bank_transfer", *updated.PaymentType)
	assert.NotNil(t, updated.TransactionTime)
	assert.NotNil(t, updated.SettlementTime)

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, models.MembershipStatusActive, fresh.MembershipStatus)

	assert.Equal(t, 1, provider.count())

	var event models.WebhookEvent
	require.NoError(t, db.First(&event, "transaction_id = ?", "tx-1").Error)
	assert.True(t, event.Applied)
}

func TestHandleWebhookFailureNeverDemotes(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("membership_status", models.MembershipStatusActive).Error)
	payment := createTestPayment(t, db, user.ID, "ORDER-2-"+user.ID, models.PaymentStatusPending)
	svc := newTestPaymentService(db, midtrans.NewClient(testServerKey, "sandbox"), true, nil)

	for i, status := range []string{"deny", "expire"} {
		if i > 0 {
			payment = createTestPayment(t, db, user.ID, "ORDER-3-"+user.ID, models.PaymentStatusPending)
		}
		_, err := svc.HandleWebhook(context.Background(), signedWebhook(payment.MidtransOrderID, status, ""))
		require.NoError(t, err)

		var fresh models.User
		require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)
		assert.Equal(t, models.MembershipStatusActive, fresh.MembershipStatus, "status %q demoted the member", status)
	}
}

func TestHandleWebhookStatusMappingPersisted(t *testing.T) {
	cases := []struct {
		transactionStatus string
		want              models.PaymentStatus
	}{
		{"settlement", models.PaymentStatusPaid},
		{"capture", models.PaymentStatusPaid},
		{"deny", models.PaymentStatusFailed},
		{"cancel", models.PaymentStatusFailed},
		{"failure", models.PaymentStatusFailed},
		{"expire", models.PaymentStatusExpired},
		{"authorize", models.PaymentStatusPending},
	}

	for _, tc := range cases {
		db := setupTestDB(t)
		user := createTestUser(t, db, "inst@test.ac.id")
		payment := createTestPayment(t, db, user.ID, "ORDER-1-"+user.ID, models.PaymentStatusPending)
		svc := newTestPaymentService(db, midtrans.NewClient(testServerKey, "sandbox"), true, nil)

		updated, err := svc.HandleWebhook(context.Background(), signedWebhook(payment.MidtransOrderID, tc.transactionStatus, "tx-"+tc.transactionStatus))
		require.NoError(t, err, "status %q", tc.transactionStatus)
		assert.Equal(t, tc.want, updated.Status, "status %q", tc.transactionStatus)
	}
}

func TestHandleWebhookStrictReplayIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")
	payment := createTestPayment(t, db, user.ID, "ORDER-1-"+user.ID, models.PaymentStatusPending)
	svc := newTestPaymentService(db, midtrans.NewClient(testServerKey, "sandbox"), true, nil)

	_, err := svc.HandleWebhook(context.Background(), signedWebhook(payment.MidtransOrderID, "settlement", "tx-1"))
	require.NoError(t, err)

	// Replay with the same transaction id but a contradictory status.
	replayed, err := svc.HandleWebhook(context.Background(), signedWebhook(payment.MidtransOrderID, "deny", "tx-1"))
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, replayed.Status)

	var events int64
	db.Model(&models.WebhookEvent{}).Where("applied = ?", true).Count(&events)
	assert.EqualValues(t, 1, events)
}

func TestHandleWebhookStrictIgnoresNonPending(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")
	payment := createTestPayment(t, db, user.ID, "ORDER-1-"+user.ID, models.PaymentStatusFailed)
	svc := newTestPaymentService(db, midtrans.NewClient(testServerKey, "sandbox"), true, nil)

	updated, err := svc.HandleWebhook(context.Background(), signedWebhook(payment.MidtransOrderID, "settlement", "tx-late"))
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusFailed, updated.Status)

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, models.MembershipStatusPending, fresh.MembershipStatus)
}

func TestHandleWebhookPendingThenSettlementSameTransaction(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")
	payment := createTestPayment(t, db, user.ID, "ORDER-1-"+user.ID, models.PaymentStatusPending)
	svc := newTestPaymentService(db, midtrans.NewClient(testServerKey, "sandbox"), true, nil)

	// Bank-transfer progression: the gateway first notifies "pending", then
	// "settlement" for the same transaction id.
	affirmed, err := svc.HandleWebhook(context.Background(), signedWebhook(payment.MidtransOrderID, "pending", "tx-1"))
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, affirmed.Status)

	var pendingEvent models.WebhookEvent
	require.NoError(t, db.First(&pendingEvent, "transaction_status = ?", "pending").Error)
	assert.False(t, pendingEvent.Applied, "a pending re-affirmation is not an applied transition")

	updated, err := svc.HandleWebhook(context.Background(), signedWebhook(payment.MidtransOrderID, "settlement", "tx-1"))
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, updated.Status)

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, models.MembershipStatusActive, fresh.MembershipStatus)
}

func TestHandleWebhookReplicaReplayClearsAbsentFields(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")
	payment := createTestPayment(t, db, user.ID, "ORDER-1-"+user.ID, models.PaymentStatusPending)
	svc := newTestPaymentService(db, midtrans.NewClient(testServerKey, "sandbox"), false, nil)

	settled, err := svc.HandleWebhook(context.Background(), signedWebhook(payment.MidtransOrderID, "settlement", "tx-1"))
	require.NoError(t, err)
	require.NotNil(t, settled.MidtransTransactionID)
	require.NotNil(t, settled.PaymentType)
	require.NotNil(t, settled.SettlementTime)

	// Replica mode copies the notification verbatim: a later callback
	// without the optional fields nulls them instead of keeping stale ones.
	bare := signedWebhook(payment.MidtransOrderID, "expire", "")
	bare.PaymentType = ""
	bare.TransactionTime = ""
	bare.SettlementTime = ""

	updated, err := svc.HandleWebhook(context.Background(), bare)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusExpired, updated.Status)
	assert.Nil(t, updated.MidtransTransactionID)
	assert.Nil(t, updated.PaymentType)
	assert.Nil(t, updated.TransactionTime)
	assert.Nil(t, updated.SettlementTime)
}

func TestHandleWebhookReplicaModeOverwrites(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")
	payment := createTestPayment(t, db, user.ID, "ORDER-1-"+user.ID, models.PaymentStatusFailed)
	svc := newTestPaymentService(db, midtrans.NewClient(testServerKey, "sandbox"), false, nil)

	updated, err := svc.HandleWebhook(context.Background(), signedWebhook(payment.MidtransOrderID, "settlement", "tx-1"))
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, updated.Status)

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, models.MembershipStatusActive, fresh.MembershipStatus)
}

func TestGetUserPaymentsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "inst@test.ac.id")
	other := createTestUser(t, db, "other@test.ac.id")
	createTestPayment(t, db, user.ID, "ORDER-1-"+user.ID, models.PaymentStatusPaid)
	createTestPayment(t, db, user.ID, "ORDER-2-"+user.ID, models.PaymentStatusPending)
	createTestPayment(t, db, other.ID, "ORDER-1-"+other.ID, models.PaymentStatusPending)
	svc := newTestPaymentService(db, midtrans.NewClient(testServerKey, "sandbox"), true, nil)

	payments, err := svc.GetUserPayments(user.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	for _, p := range payments {
		assert.Equal(t, user.ID, p.UserID)
	}

	all, err := svc.GetAllPayments()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
