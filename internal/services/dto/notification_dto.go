package dto

// SendWhatsAppRequest is a direct message send, admin only.
type SendWhatsAppRequest struct {
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message" validate:"required"`
}
