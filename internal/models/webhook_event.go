package models

import (
	"gorm.io/datatypes"
)

// WebhookEvent is the ledger of inbound gateway callbacks. Every verified
// callback is recorded here regardless of whether it changed a Payment, so
// replays can be detected and audited.
type WebhookEvent struct {
	BaseModel
	OrderID           string         `gorm:"not null;index" json:"order_id"`
	TransactionID     string         `gorm:"index" json:"transaction_id"`
	TransactionStatus string         `gorm:"type:varchar(50);not null" json:"transaction_status"`
	StatusCode        string         `gorm:"type:varchar(10)" json:"status_code"`
	GrossAmount       string         `gorm:"type:varchar(50)" json:"gross_amount"`
	RawPayload        datatypes.JSON `gorm:"type:jsonb" json:"raw_payload"`
	Applied           bool           `gorm:"not null;default:false" json:"applied"`
}
