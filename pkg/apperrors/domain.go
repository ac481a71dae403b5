package apperrors

import (
	"fmt"
	"net/http"
)

// Domain error variables and factories for membership, payments and
// documents. Login deliberately shares one message for "no such user" and
// "wrong password"; all other not-found paths name the missing identifier.

// --- Auth & Users ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"User with this email already exists",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrUserNotFound - user lookups name the missing identifier.
func ErrUserNotFound(userID string) *AppError {
	return New(CodeNotFound, "user", fmt.Sprintf("User with ID %s not found", userID), http.StatusNotFound)
}

// --- Payments ---

var ErrInvalidWebhookSignature = New(
	CodeInvalidSignature,
	"payment",
	"Invalid signature",
	http.StatusUnauthorized,
)

var ErrGatewayNotConfigured = New(
	CodeExternalServiceError,
	"payment",
	"Midtrans server key not configured",
	http.StatusServiceUnavailable,
)

var ErrInvalidPaymentAmount = New(
	CodeValidationFailed,
	"payment",
	"Payment amount must be positive",
	http.StatusBadRequest,
)

// ErrGatewayError - non-2xx answer from the payment gateway.
func ErrGatewayError(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "payment", "Payment provider error", http.StatusBadGateway)
}

// ErrPaymentOrderNotFound - webhook referenced an unknown order id.
func ErrPaymentOrderNotFound(orderID string) *AppError {
	return New(CodeNotFound, "payment", fmt.Sprintf("Payment with order_id %s not found", orderID), http.StatusNotFound)
}

var ErrPaymentNotPaid = New(
	CodeInvalidStatus,
	"payment",
	"Payment not found or not paid",
	http.StatusNotFound,
)

// --- Documents ---

var ErrInvalidDownloadToken = New(
	CodeInvalidToken,
	"document",
	"Invalid or expired download token",
	http.StatusNotFound,
)

var ErrDocumentFileMissing = New(
	CodeIOError,
	"document",
	"Document file not found on disk",
	http.StatusNotFound,
)

var ErrUnsupportedDocumentType = New(
	CodeValidationFailed,
	"document",
	"Unsupported document type",
	http.StatusBadRequest,
)

// --- Notifications ---

var ErrInvalidPhoneNumber = New(
	CodeValidationFailed,
	"notification",
	"Phone number is not a valid international number",
	http.StatusBadRequest,
)

var ErrMessageTooLong = New(
	CodeValidationFailed,
	"notification",
	"Message exceeds the 4096 character limit",
	http.StatusBadRequest,
)
