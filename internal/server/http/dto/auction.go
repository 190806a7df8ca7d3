package dto

import "time"

// AuctionRequest describes a merchant auction submission.
type AuctionRequest struct {
	ProductID     int64     `json:"product_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	StartingPrice float64   `json:"starting_price"`
	ReservedPrice float64   `json:"reserved_price"`
	BidIncrement  float64   `json:"bid_increment"`
	TotalQuantity int       `json:"total_quantity"`
}

// AuctionResponse represents an auction in API responses.
type AuctionResponse struct {
	ID                int64     `json:"id"`
	MerchantID        int64     `json:"merchant_id"`
	ProductID         int64     `json:"product_id"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	StartingPrice     float64   `json:"starting_price"`
	ReservedPrice     float64   `json:"reserved_price"`
	BidIncrement      float64   `json:"bid_increment"`
	TotalQuantity     int       `json:"total_quantity"`
	RemainingQuantity int       `json:"remaining_quantity"`
	Status            string    `json:"status"`
	AdminApproval     string    `json:"admin_approval"`
}
