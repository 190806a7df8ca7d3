package model

import "time"

// AuctionStatus describes the running state of an auction.
type AuctionStatus string

const (
	AuctionStatusPending   AuctionStatus = "pending"
	AuctionStatusActive    AuctionStatus = "active"
	AuctionStatusEnded     AuctionStatus = "ended"
	AuctionStatusCancelled AuctionStatus = "cancelled"
)

// AuctionApproval describes the moderation decision on an auction.
type AuctionApproval string

const (
	AuctionApprovalPending  AuctionApproval = "pending"
	AuctionApprovalApproved AuctionApproval = "approved"
	AuctionApprovalRejected AuctionApproval = "rejected"
)

// Auction describes a merchant-submitted auction awaiting moderation.
// RemainingQuantity is initialized to TotalQuantity exactly once, at creation.
type Auction struct {
	ID                int64
	MerchantID        int64
	ProductID         int64
	StartTime         time.Time
	EndTime           time.Time
	StartingPrice     float64
	ReservedPrice     float64
	BidIncrement      float64
	TotalQuantity     int
	RemainingQuantity int
	Status            AuctionStatus
	AdminApproval     AuctionApproval
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DerivedStatus returns the status the auction should carry at the given
// moment. Status is a function of the moderation decision and the time
// window: rejected auctions stay cancelled, anything past its end time is
// ended, and an approved auction inside its window is active.
func (a Auction) DerivedStatus(now time.Time) AuctionStatus {
	switch {
	case a.Status == AuctionStatusCancelled || a.AdminApproval == AuctionApprovalRejected:
		return AuctionStatusCancelled
	case !now.Before(a.EndTime):
		return AuctionStatusEnded
	case a.AdminApproval == AuctionApprovalApproved && !now.Before(a.StartTime):
		return AuctionStatusActive
	default:
		return AuctionStatusPending
	}
}
