// Package facade holds stubs for the workflow-level facade interfaces. They
// live apart from the base stubs because they speak usecase request/result
// types, which the base package must not import: the usecase tests themselves
// depend on the base stubs.
package facade

import (
	"context"

	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/test"
	"github.com/gebeyahq/marketadmin/internal/usecase"
)

// AdFacadeStub provides controllable behaviour for placement endpoints.
type AdFacadeStub struct {
	SubmitFn  func(context.Context, *model.Identity, usecase.PlacementRequest) (*usecase.PlacementResult, error)
	ListFn    func(context.Context, usecase.AdQuery) (*usecase.AdListing, error)
	ApproveFn func(context.Context, *model.Identity, int64) (*model.Ad, error)
	RejectFn  func(context.Context, *model.Identity, int64, usecase.RejectAdRequest) (*usecase.RejectAdResult, error)
	ConfirmFn func(context.Context, string, model.AdPaymentStatus) (*model.Ad, error)
}

// SubmitPlacement delegates to the override or returns a created placement.
func (s AdFacadeStub) SubmitPlacement(ctx context.Context, identity *model.Identity, req usecase.PlacementRequest) (*usecase.PlacementResult, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, identity, req)
	}
	return &usecase.PlacementResult{Ad: &model.Ad{ID: 1, TxRef: "ad-stub"}, CheckoutURL: "https://checkout.test/ad-stub"}, nil
}

// ListPlacements delegates to the override or returns an empty page.
func (s AdFacadeStub) ListPlacements(ctx context.Context, q usecase.AdQuery) (*usecase.AdListing, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, q)
	}
	return &usecase.AdListing{CurrentPage: q.Page}, nil
}

// ApprovePlacement delegates to the override or approves in place.
func (s AdFacadeStub) ApprovePlacement(ctx context.Context, identity *model.Identity, adID int64) (*model.Ad, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, identity, adID)
	}
	return &model.Ad{ID: adID, ApprovalStatus: model.AdApprovalApproved}, nil
}

// RejectPlacement delegates to the override or rejects cleanly.
func (s AdFacadeStub) RejectPlacement(ctx context.Context, identity *model.Identity, adID int64, req usecase.RejectAdRequest) (*usecase.RejectAdResult, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, identity, adID, req)
	}
	return &usecase.RejectAdResult{Ad: &model.Ad{ID: adID, ApprovalStatus: model.AdApprovalRejected}}, nil
}

// ConfirmPlacementPayment delegates to the override or settles the payment.
func (s AdFacadeStub) ConfirmPlacementPayment(ctx context.Context, txRef string, status model.AdPaymentStatus) (*model.Ad, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, txRef, status)
	}
	return &model.Ad{ID: 1, TxRef: txRef, PaymentStatus: status}, nil
}

// OrderFacadeStub provides controllable behaviour for settlement endpoints.
type OrderFacadeStub struct {
	PayoutFn     func(context.Context, *model.Identity, int64) (*model.Order, error)
	RefundFn     func(context.Context, *model.Identity, usecase.RefundOrderRequest) (*usecase.RefundResult, error)
	RefundByIDFn func(context.Context, *model.Identity, int64, string, *float64) (*usecase.RefundResult, error)
}

// MarkOrderPaidToMerchant delegates to the override or settles the payout.
func (s OrderFacadeStub) MarkOrderPaidToMerchant(ctx context.Context, identity *model.Identity, orderID int64) (*model.Order, error) {
	if s.PayoutFn != nil {
		return s.PayoutFn(ctx, identity, orderID)
	}
	return &model.Order{ID: orderID, PaymentStatus: model.OrderPaymentPaidToMerchant}, nil
}

// RefundOrder delegates to the override or refunds cleanly.
func (s OrderFacadeStub) RefundOrder(ctx context.Context, identity *model.Identity, req usecase.RefundOrderRequest) (*usecase.RefundResult, error) {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, identity, req)
	}
	return &usecase.RefundResult{Order: &model.Order{ID: 1, TxRef: req.TxRef, PaymentStatus: model.OrderPaymentRefunded}}, nil
}

// RefundOrderByID delegates to the override or refunds cleanly.
func (s OrderFacadeStub) RefundOrderByID(ctx context.Context, identity *model.Identity, orderID int64, reason string, amount *float64) (*usecase.RefundResult, error) {
	if s.RefundByIDFn != nil {
		return s.RefundByIDFn(ctx, identity, orderID, reason, amount)
	}
	return &usecase.RefundResult{Order: &model.Order{ID: orderID, PaymentStatus: model.OrderPaymentRefunded, RefundReason: reason}}, nil
}

// AuctionFacadeStub provides controllable behaviour for auction endpoints.
type AuctionFacadeStub struct {
	SubmitFn  func(context.Context, *model.Identity, usecase.AuctionRequest) (*model.Auction, error)
	ApproveFn func(context.Context, *model.Identity, int64) (*model.Auction, error)
	RejectFn  func(context.Context, *model.Identity, int64) (*model.Auction, error)
}

// SubmitAuction delegates to the override or returns a pending auction.
func (s AuctionFacadeStub) SubmitAuction(ctx context.Context, identity *model.Identity, req usecase.AuctionRequest) (*model.Auction, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, identity, req)
	}
	return &model.Auction{ID: 1, Status: model.AuctionStatusPending, AdminApproval: model.AuctionApprovalPending}, nil
}

// ApproveAuction delegates to the override or activates the auction.
func (s AuctionFacadeStub) ApproveAuction(ctx context.Context, identity *model.Identity, auctionID int64) (*model.Auction, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, identity, auctionID)
	}
	return &model.Auction{ID: auctionID, Status: model.AuctionStatusActive, AdminApproval: model.AuctionApprovalApproved}, nil
}

// RejectAuction delegates to the override or cancels the auction.
func (s AuctionFacadeStub) RejectAuction(ctx context.Context, identity *model.Identity, auctionID int64) (*model.Auction, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, identity, auctionID)
	}
	return &model.Auction{ID: auctionID, Status: model.AuctionStatusCancelled, AdminApproval: model.AuctionApprovalRejected}, nil
}

// ConsoleFacadeStub aggregates facade dependencies for HTTP layer tests.
type ConsoleFacadeStub struct {
	test.IdentityFacadeStub
	AdFacadeStub
	OrderFacadeStub
	AuctionFacadeStub
	test.HealthFacadeStub
}
