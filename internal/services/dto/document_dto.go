package dto

import "apptnu_backend/internal/models"

// GenerateReceiptRequest names the settled payment a receipt is issued for.
type GenerateReceiptRequest struct {
	PaymentID string `json:"payment_id" validate:"required"`
}

// DocumentResponse is the issued-document view returned to clients. The
// download URL embeds the bearer token.
type DocumentResponse struct {
	Document    *models.Document `json:"document"`
	DownloadURL string           `json:"download_url,omitempty"`
}
