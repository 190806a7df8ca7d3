package model

import "time"

// AdPaymentStatus describes payment lifecycle of an ad placement.
type AdPaymentStatus string

const (
	AdPaymentPending AdPaymentStatus = "PENDING"
	AdPaymentPaid    AdPaymentStatus = "PAID"
	AdPaymentFailed  AdPaymentStatus = "FAILED"
)

// AdApprovalStatus describes moderation lifecycle of an ad placement.
type AdApprovalStatus string

const (
	AdApprovalPending  AdApprovalStatus = "PENDING"
	AdApprovalApproved AdApprovalStatus = "APPROVED"
	AdApprovalRejected AdApprovalStatus = "REJECTED"
)

// Ad describes a paid product placement at a geographic point.
// IsActive may only be true while ApprovalStatus is APPROVED and
// PaymentStatus is PAID.
type Ad struct {
	ID            int64
	ProductID     int64
	ProductName   string
	ProductPrice  float64
	MerchantID    int64
	MerchantName  string
	MerchantEmail string
	MerchantPhone string
	Price         float64
	Location      Point
	StartsAt      time.Time
	EndsAt        time.Time

	PaymentStatus  AdPaymentStatus
	ApprovalStatus AdApprovalStatus
	IsActive       bool
	RejectionCode  string
	RejectionNote  string

	TxRef     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
