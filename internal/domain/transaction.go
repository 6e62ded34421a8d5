package domain

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeRental   TransactionType = "rental"
	TransactionTypeExchange TransactionType = "exchange"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
)

type DeliveryStatus string

const (
	DeliveryStatusPending    DeliveryStatus = "pending"
	DeliveryStatusProcessing DeliveryStatus = "processing"
	DeliveryStatusShipped    DeliveryStatus = "shipped"
	DeliveryStatusDelivered  DeliveryStatus = "delivered"
	DeliveryStatusReturned   DeliveryStatus = "returned"
	DeliveryStatusCancelled  DeliveryStatus = "cancelled"
)

// Transaction is a purchase, rental, or exchange of a book between a buyer
// and a seller. Money fields are computed once at creation and stored;
// TotalAmount = CommissionAmount + SellerAmount holds exactly at two decimals.
type Transaction struct {
	ID               int32           `json:"id"`
	Code             string          `json:"code"`
	BuyerID          int32           `json:"buyer_id"`
	SellerID         int32           `json:"seller_id"`
	BookID           int32           `json:"book_id"`
	Type             TransactionType `json:"type"`
	Quantity         int32           `json:"quantity"`
	UnitPrice        float64         `json:"unit_price"`
	TotalAmount      float64         `json:"total_amount"`
	CommissionAmount float64         `json:"commission_amount"`
	SellerAmount     float64         `json:"seller_amount"`
	RentalDuration   *int32          `json:"rental_duration,omitempty"`
	RentalUnit       string          `json:"rental_unit,omitempty"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
	DeliveryStatus   DeliveryStatus  `json:"delivery_status"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	CreatedOn        time.Time       `json:"created_on"`
	UpdatedOn        time.Time       `json:"updated_on"`
}

func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeRental, TransactionTypeExchange:
		return true
	}
	return false
}

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusProcessing, PaymentStatusCompleted,
		PaymentStatusFailed, PaymentStatusRefunded, PaymentStatusCancelled:
		return true
	}
	return false
}

func ValidDeliveryStatus(s DeliveryStatus) bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusProcessing, DeliveryStatusShipped,
		DeliveryStatusDelivered, DeliveryStatusReturned, DeliveryStatusCancelled:
		return true
	}
	return false
}

const transactionCodePrefix = "BKM"

// NewTransactionCode generates a human-readable receipt code:
// BKM-20260901-a1b2c3d4. The suffix is 4 bytes of crypto/rand, so codes
// generated in the same millisecond do not collide in practice.
func NewTransactionCode() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform entropy source is broken;
		// nothing sensible to fall back to.
		panic("transaction code entropy unavailable: " + err.Error())
	}
	return transactionCodePrefix + "-" + time.Now().Format("20060102") + "-" + hex.EncodeToString(buf)
}
