package models

import "time"

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	PaymentOnline PaymentMethod = "Online"
)

// IsValid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentOnline:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

// Payment is created in the same transaction as its Order. Cash payments
// start Pending with no PaidAt; every other method starts Paid.
type Payment struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	OrderID        uint          `json:"order_id" gorm:"not null;uniqueIndex"`
	Method         PaymentMethod `json:"method" gorm:"not null"`
	Status         PaymentStatus `json:"status" gorm:"not null"`
	TransactionRef string        `json:"transaction_ref" gorm:"uniqueIndex"`
	PaidAt         *time.Time    `json:"paid_at"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
