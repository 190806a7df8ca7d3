package handlers

import (
	"context"

	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/usecase"
)

// IdentityFacade describes authentication capabilities required by handlers.
type IdentityFacade interface {
	Login(ctx context.Context, login, password string) (string, error)
	ResolveIdentity(ctx context.Context, token string) (*model.Identity, error)
}

// AdFacade encapsulates placement operations exposed via HTTP.
type AdFacade interface {
	SubmitPlacement(ctx context.Context, identity *model.Identity, req usecase.PlacementRequest) (*usecase.PlacementResult, error)
	ListPlacements(ctx context.Context, q usecase.AdQuery) (*usecase.AdListing, error)
	ApprovePlacement(ctx context.Context, identity *model.Identity, adID int64) (*model.Ad, error)
	RejectPlacement(ctx context.Context, identity *model.Identity, adID int64, req usecase.RejectAdRequest) (*usecase.RejectAdResult, error)
	ConfirmPlacementPayment(ctx context.Context, txRef string, status model.AdPaymentStatus) (*model.Ad, error)
}

// OrderFacade provides order settlement operations.
type OrderFacade interface {
	MarkOrderPaidToMerchant(ctx context.Context, identity *model.Identity, orderID int64) (*model.Order, error)
	RefundOrder(ctx context.Context, identity *model.Identity, req usecase.RefundOrderRequest) (*usecase.RefundResult, error)
	RefundOrderByID(ctx context.Context, identity *model.Identity, orderID int64, reason string, amount *float64) (*usecase.RefundResult, error)
}

// AuctionFacade provides auction moderation operations.
type AuctionFacade interface {
	SubmitAuction(ctx context.Context, identity *model.Identity, req usecase.AuctionRequest) (*model.Auction, error)
	ApproveAuction(ctx context.Context, identity *model.Identity, auctionID int64) (*model.Auction, error)
	RejectAuction(ctx context.Context, identity *model.Identity, auctionID int64) (*model.Auction, error)
}

// HealthFacade reports storage availability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// ConsoleFacade aggregates the full set of operations used across handlers.
type ConsoleFacade interface {
	IdentityFacade
	AdFacade
	OrderFacade
	AuctionFacade
	HealthFacade
}
