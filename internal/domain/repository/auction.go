package repository

import (
	"context"
	"time"

	"github.com/gebeyahq/marketadmin/internal/domain/model"
)

// AuctionRepository describes persistence operations with auctions.
type AuctionRepository interface {
	// Create persists a submitted auction, initializing the remaining
	// quantity from the total exactly once.
	Create(ctx context.Context, a *model.Auction) (*model.Auction, error)
	GetByID(ctx context.Context, id int64) (*model.Auction, error)
	// SetApproval records the moderation decision together with the status
	// it implies. ErrConflict when the decision was already made.
	SetApproval(ctx context.Context, id int64, approval model.AuctionApproval, status model.AuctionStatus) (*model.Auction, error)
	// SelectStatusLagged returns auctions whose stored status no longer
	// matches their time window.
	SelectStatusLagged(ctx context.Context, now time.Time, limit int) ([]model.Auction, error)
	UpdateStatus(ctx context.Context, id int64, status model.AuctionStatus) error
}
