package model

import "time"

// OrderPaymentStatus describes settlement state of a completed purchase.
// Values are stored verbatim as shown to operators in the console.
type OrderPaymentStatus string

const (
	OrderPaymentPending        OrderPaymentStatus = "Pending"
	OrderPaymentPaid           OrderPaymentStatus = "Paid"
	OrderPaymentRefunded       OrderPaymentStatus = "Refunded"
	OrderPaymentPaidToMerchant OrderPaymentStatus = "Paid To Merchant"
	OrderPaymentPendingRefund  OrderPaymentStatus = "Pending Refund"
)

// OrderItem is a single purchased line.
type OrderItem struct {
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// PayoutAccount holds merchant bank details used for transfers.
type PayoutAccount struct {
	AccountName   string
	AccountNumber string
	BankCode      string
}

// Order describes a completed purchase requiring settlement.
type Order struct {
	ID                int64
	MerchantID        int64
	Payout            PayoutAccount
	CustomerName      string
	Items             []OrderItem
	TotalPrice        float64
	FulfillmentStatus string
	PaymentStatus     OrderPaymentStatus
	TxRef             string
	TransferRef       string
	RefundReason      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
