package domain

import "time"

type DeliveryMethod string

const (
	DeliveryDirectCredit     DeliveryMethod = "direct-credit"
	DeliveryGamepassPurchase DeliveryMethod = "listing-purchase"
)

type PaymentStatus string

const (
	StatusPending  PaymentStatus = "pending"
	StatusPaid     PaymentStatus = "paid"
	StatusPaidOver PaymentStatus = "paid_over"
	StatusFailed   PaymentStatus = "fail"
	StatusCanceled PaymentStatus = "cancel"
)

// Settled reports whether the gateway considers the payment complete.
// paid_over means the payer sent more than requested; both settle the order.
func (s PaymentStatus) Settled() bool {
	return s == StatusPaid || s == StatusPaidOver
}

// DirectCreditDetails carries everything an operator needs to credit the
// recipient manually once the payment settles.
type DirectCreditDetails struct {
	RecipientID   int64
	RecipientName string
	SessionCookie string
}

type GamepassPurchaseDetails struct {
	GamepassURL string
}

// PendingOrder links a gateway order id to the fulfillment details needed
// once payment is confirmed. Exactly one of DirectCredit/GamepassPurchase is
// non-nil, matching Method.
type PendingOrder struct {
	ID               string
	Method           DeliveryMethod
	AmountRobux      int64
	ContactHandle    string
	DirectCredit     *DirectCreditDetails
	GamepassPurchase *GamepassPurchaseDetails
	CreatedAt        time.Time
}
