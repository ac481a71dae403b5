package midtrans

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// Signature computes the notification signature:
// sha512(order_id + status_code + gross_amount + server_key), hex encoded.
// gross_amount is the exact string Midtrans sent, typically "130000.00".
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	h := sha512.New()
	h.Write([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature checks a notification signature in constant time.
func VerifySignature(orderID, statusCode, grossAmount, serverKey, signatureKey string) bool {
	expected := Signature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signatureKey)) == 1
}
