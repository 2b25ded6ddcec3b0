package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentRecord is the append-only payment ledger. The composite unique
// index on (user_email, class_id, transaction_ref) is the settlement
// idempotency key: a retried or concurrent settle for the same selection
// fails the insert and is treated as already settled.
type PaymentRecord struct {
	gorm.Model
	UserEmail          string         `gorm:"uniqueIndex:idx_payment_settlement;not null" json:"userEmail"`
	ClassID            uint           `gorm:"uniqueIndex:idx_payment_settlement;not null" json:"classId"`
	TransactionRef     string         `gorm:"uniqueIndex:idx_payment_settlement;type:varchar(100);not null" json:"transactionRef"`
	ReceiptID          string         `gorm:"type:varchar(64)" json:"receiptId"`
	Price              float64        `gorm:"not null" json:"price"`
	Currency           string         `gorm:"type:varchar(10);default:'usd'" json:"currency"`
	GatewayResponseRaw datatypes.JSON `json:"-"`
	SettledAt          time.Time      `gorm:"not null" json:"settledAt"`
}

func (PaymentRecord) TableName() string {
	return "payments"
}
