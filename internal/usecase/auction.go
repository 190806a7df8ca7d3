package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/gebeyahq/marketadmin/internal/domain/errors"
	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/domain/repository"
)

// AuctionRequest is a merchant submission for a timed sale.
type AuctionRequest struct {
	ProductID     int64
	StartTime     time.Time
	EndTime       time.Time
	StartingPrice float64
	ReservedPrice float64
	BidIncrement  float64
	TotalQuantity int
}

// AuctionUseCase runs auction submission, moderation and status upkeep.
type AuctionUseCase struct {
	auctions repository.AuctionRepository
	gate     Gate
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuctionUseCase constructs AuctionUseCase.
func NewAuctionUseCase(auctions repository.AuctionRepository, gate Gate, logger *slog.Logger) *AuctionUseCase {
	return &AuctionUseCase{auctions: auctions, gate: gate, logger: logger, now: time.Now}
}

func validateAuction(req AuctionRequest) error {
	switch {
	case req.ProductID == 0:
		return fmt.Errorf("%w: product required", domainErrors.ErrValidation)
	case req.StartingPrice <= 0:
		return fmt.Errorf("%w: starting price must be positive", domainErrors.ErrValidation)
	case req.BidIncrement <= 0:
		return fmt.Errorf("%w: bid increment must be positive", domainErrors.ErrValidation)
	case req.ReservedPrice < req.StartingPrice:
		return fmt.Errorf("%w: reserve below starting price", domainErrors.ErrValidation)
	case req.TotalQuantity < 1:
		return fmt.Errorf("%w: quantity must be positive", domainErrors.ErrValidation)
	}
	return ValidateWindow(req.StartTime, req.EndTime)
}

// Submit registers a merchant auction awaiting moderation.
func (u *AuctionUseCase) Submit(ctx context.Context, identity *model.Identity, req AuctionRequest) (*model.Auction, error) {
	if err := u.gate.Require(identity, model.RoleMerchant, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateAuction(req); err != nil {
		return nil, err
	}

	return u.auctions.Create(ctx, &model.Auction{
		MerchantID:    identity.AdminID,
		ProductID:     req.ProductID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		StartingPrice: req.StartingPrice,
		ReservedPrice: req.ReservedPrice,
		BidIncrement:  req.BidIncrement,
		TotalQuantity: req.TotalQuantity,
	})
}

// Approve records the moderation approval. The resulting status follows the
// auction's time window at the moment of approval, never a fixed value.
func (u *AuctionUseCase) Approve(ctx context.Context, identity *model.Identity, auctionID int64) (*model.Auction, error) {
	if err := u.gate.Require(identity, model.RoleAdmin); err != nil {
		return nil, err
	}

	auction, err := u.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	auction.AdminApproval = model.AuctionApprovalApproved
	status := auction.DerivedStatus(u.now())
	return u.auctions.SetApproval(ctx, auctionID, model.AuctionApprovalApproved, status)
}

// Reject records the moderation rejection and cancels the auction.
func (u *AuctionUseCase) Reject(ctx context.Context, identity *model.Identity, auctionID int64) (*model.Auction, error) {
	if err := u.gate.Require(identity, model.RoleAdmin); err != nil {
		return nil, err
	}
	return u.auctions.SetApproval(ctx, auctionID, model.AuctionApprovalRejected, model.AuctionStatusCancelled)
}

// AuctionsForResolution returns auctions whose stored status has fallen
// behind their time window, for the background sweeper.
func (u *AuctionUseCase) AuctionsForResolution(ctx context.Context, limit int) ([]model.Auction, error) {
	return u.auctions.SelectStatusLagged(ctx, u.now(), limit)
}

// ResolveAuctionStatus recomputes one auction's status from its window and
// persists it when it moved.
func (u *AuctionUseCase) ResolveAuctionStatus(ctx context.Context, auction model.Auction) error {
	derived := auction.DerivedStatus(u.now())
	if derived == auction.Status {
		return nil
	}
	if err := u.auctions.UpdateStatus(ctx, auction.ID, derived); err != nil {
		return err
	}
	u.logger.Info("auction status resolved",
		slog.Int64("auction_id", auction.ID),
		slog.String("from", string(auction.Status)),
		slog.String("to", string(derived)),
	)
	return nil
}
