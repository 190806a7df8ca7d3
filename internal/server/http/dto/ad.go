package dto

import "time"

// PointPayload is a WGS84 coordinate pair.
type PointPayload struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// PlacementRequest describes a paid placement submission.
type PlacementRequest struct {
	ProductID     int64        `json:"product_id"`
	ProductName   string       `json:"product_name"`
	ProductPrice  float64      `json:"product_price"`
	MerchantID    int64        `json:"merchant_id"`
	MerchantName  string       `json:"merchant_name"`
	MerchantEmail string       `json:"merchant_email"`
	MerchantPhone string       `json:"merchant_phone"`
	Price         float64      `json:"price"`
	Location      PointPayload `json:"location"`
	StartsAt      time.Time    `json:"starts_at"`
	EndsAt        time.Time    `json:"ends_at"`
}

// AdResponse represents a placement in API responses.
type AdResponse struct {
	ID             int64        `json:"id"`
	ProductID      int64        `json:"product_id"`
	ProductName    string       `json:"product_name"`
	MerchantID     int64        `json:"merchant_id"`
	MerchantName   string       `json:"merchant_name"`
	Price          float64      `json:"price"`
	Location       PointPayload `json:"location"`
	StartsAt       time.Time    `json:"starts_at"`
	EndsAt         time.Time    `json:"ends_at"`
	PaymentStatus  string       `json:"payment_status"`
	ApprovalStatus string       `json:"approval_status"`
	IsActive       bool         `json:"is_active"`
	RejectionCode  string       `json:"rejection_code,omitempty"`
	RejectionNote  string       `json:"rejection_note,omitempty"`
	TxRef          string       `json:"tx_ref"`
	CreatedAt      time.Time    `json:"created_at"`
}

// PlacementResponse wraps a freshly submitted placement with its checkout.
type PlacementResponse struct {
	Ad                AdResponse `json:"ad"`
	CheckoutURL       string     `json:"checkout_url,omitempty"`
	PaymentInitFailed bool       `json:"payment_init_failed,omitempty"`
}

// AdListResponse is one page of placements.
type AdListResponse struct {
	Items       []AdResponse `json:"items"`
	CurrentPage int          `json:"current_page"`
	TotalPages  int          `json:"total_pages"`
	TotalCount  int64        `json:"total_count"`
}

// RejectAdRequest carries the moderation verdict for a rejected placement.
type RejectAdRequest struct {
	Code   string   `json:"reason_code"`
	Note   string   `json:"reason_note"`
	Amount *float64 `json:"amount,omitempty"`
}

// RejectAdResponse reports the rejection together with the refund outcome.
type RejectAdResponse struct {
	Ad              AdResponse `json:"ad"`
	RefundFailed    bool       `json:"refund_failed,omitempty"`
	RefundSimulated bool       `json:"refund_simulated,omitempty"`
}

// PaymentCallbackRequest is the provider webhook payload for a checkout.
type PaymentCallbackRequest struct {
	TxRef  string `json:"tx_ref"`
	Status string `json:"status"`
}
