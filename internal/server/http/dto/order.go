package dto

// OrderPaymentStatusRequest updates the settlement state of an order.
type OrderPaymentStatusRequest struct {
	PaymentStatus string   `json:"payment_status"`
	Reason        string   `json:"reason,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
}

// RefundOrderRequest reverses an order payment addressed by transaction.
type RefundOrderRequest struct {
	TxRef  string   `json:"tx_ref"`
	Reason string   `json:"reason,omitempty"`
	Amount *float64 `json:"amount,omitempty"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID            int64   `json:"id"`
	MerchantID    int64   `json:"merchant_id"`
	CustomerName  string  `json:"customer_name,omitempty"`
	TotalPrice    float64 `json:"total_price"`
	PaymentStatus string  `json:"payment_status"`
	TxRef         string  `json:"tx_ref,omitempty"`
	TransferRef   string  `json:"transfer_ref,omitempty"`
	RefundReason  string  `json:"refund_reason,omitempty"`
}

// RefundOrderResponse reports the refund with reconciliation leftovers.
type RefundOrderResponse struct {
	Order           OrderResponse `json:"order"`
	SkippedProducts []int64       `json:"skipped_products,omitempty"`
	RefundSimulated bool          `json:"refund_simulated,omitempty"`
}
