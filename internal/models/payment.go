package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one checkout attempt against the Midtrans gateway. The order id
// is minted locally (ORDER-<unixms>-<user_id>) before the gateway is called;
// the transaction id arrives later via webhook.
type Payment struct {
	BaseModel
	UserID                string          `gorm:"not null;index" json:"user_id"`
	MidtransOrderID       string          `gorm:"uniqueIndex;not null" json:"midtrans_order_id"`
	MidtransTransactionID *string         `json:"midtrans_transaction_id"`
	Amount                decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status                PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentType           *string         `gorm:"type:varchar(100)" json:"payment_type"`
	TransactionTime       *time.Time      `json:"transaction_time"`
	SettlementTime        *time.Time      `json:"settlement_time"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}
