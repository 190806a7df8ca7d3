package app

import (
	"context"

	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/usecase"
)

// HealthChecker reports storage availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ConsoleFacade aggregates the console workflows behind one surface used by
// the HTTP layer and the background sweeper.
type ConsoleFacade struct {
	identity *usecase.IdentityUseCase
	ads      *usecase.AdUseCase
	orders   *usecase.OrderUseCase
	auctions *usecase.AuctionUseCase
	health   HealthChecker
}

// NewConsoleFacade constructs ConsoleFacade.
func NewConsoleFacade(identity *usecase.IdentityUseCase, ads *usecase.AdUseCase, orders *usecase.OrderUseCase, auctions *usecase.AuctionUseCase, health HealthChecker) *ConsoleFacade {
	return &ConsoleFacade{identity: identity, ads: ads, orders: orders, auctions: auctions, health: health}
}

func (f *ConsoleFacade) Login(ctx context.Context, login, password string) (string, error) {
	return f.identity.Login(ctx, login, password)
}

func (f *ConsoleFacade) ResolveIdentity(ctx context.Context, token string) (*model.Identity, error) {
	return f.identity.Resolve(ctx, token)
}

func (f *ConsoleFacade) EnsureSuperAdmin(ctx context.Context, login, password string) error {
	return f.identity.EnsureSuperAdmin(ctx, login, password)
}

func (f *ConsoleFacade) SubmitPlacement(ctx context.Context, identity *model.Identity, req usecase.PlacementRequest) (*usecase.PlacementResult, error) {
	return f.ads.SubmitPlacement(ctx, identity, req)
}

func (f *ConsoleFacade) ListPlacements(ctx context.Context, q usecase.AdQuery) (*usecase.AdListing, error) {
	return f.ads.List(ctx, q)
}

func (f *ConsoleFacade) ApprovePlacement(ctx context.Context, identity *model.Identity, adID int64) (*model.Ad, error) {
	return f.ads.Approve(ctx, identity, adID)
}

func (f *ConsoleFacade) RejectPlacement(ctx context.Context, identity *model.Identity, adID int64, req usecase.RejectAdRequest) (*usecase.RejectAdResult, error) {
	return f.ads.Reject(ctx, identity, adID, req)
}

func (f *ConsoleFacade) ConfirmPlacementPayment(ctx context.Context, txRef string, status model.AdPaymentStatus) (*model.Ad, error) {
	return f.ads.ConfirmPayment(ctx, txRef, status)
}

func (f *ConsoleFacade) MarkOrderPaidToMerchant(ctx context.Context, identity *model.Identity, orderID int64) (*model.Order, error) {
	return f.orders.MarkPaidToMerchant(ctx, identity, orderID)
}

func (f *ConsoleFacade) RefundOrder(ctx context.Context, identity *model.Identity, req usecase.RefundOrderRequest) (*usecase.RefundResult, error) {
	return f.orders.Refund(ctx, identity, req)
}

func (f *ConsoleFacade) RefundOrderByID(ctx context.Context, identity *model.Identity, orderID int64, reason string, amount *float64) (*usecase.RefundResult, error) {
	return f.orders.RefundByOrderID(ctx, identity, orderID, reason, amount)
}

func (f *ConsoleFacade) SubmitAuction(ctx context.Context, identity *model.Identity, req usecase.AuctionRequest) (*model.Auction, error) {
	return f.auctions.Submit(ctx, identity, req)
}

func (f *ConsoleFacade) ApproveAuction(ctx context.Context, identity *model.Identity, auctionID int64) (*model.Auction, error) {
	return f.auctions.Approve(ctx, identity, auctionID)
}

func (f *ConsoleFacade) RejectAuction(ctx context.Context, identity *model.Identity, auctionID int64) (*model.Auction, error) {
	return f.auctions.Reject(ctx, identity, auctionID)
}

func (f *ConsoleFacade) AuctionsForResolution(ctx context.Context, limit int) ([]model.Auction, error) {
	return f.auctions.AuctionsForResolution(ctx, limit)
}

func (f *ConsoleFacade) ResolveAuctionStatus(ctx context.Context, auction model.Auction) error {
	return f.auctions.ResolveAuctionStatus(ctx, auction)
}

func (f *ConsoleFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
