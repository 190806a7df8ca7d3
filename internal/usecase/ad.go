package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gebeyahq/marketadmin/internal/adapter/chapa"
	domainErrors "github.com/gebeyahq/marketadmin/internal/domain/errors"
	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/domain/repository"
)

// PlacementRequest is a merchant submission for a paid placement.
type PlacementRequest struct {
	ProductID     int64
	ProductName   string
	ProductPrice  float64
	MerchantID    int64
	MerchantName  string
	MerchantEmail string
	MerchantPhone string
	Price         float64
	Location      model.Point
	StartsAt      time.Time
	EndsAt        time.Time
}

// PlacementResult reports the created placement. PaymentInitFailed is set when
// the checkout could not be registered with the provider; the placement still
// exists and payment can be retried.
type PlacementResult struct {
	Ad                *model.Ad
	CheckoutURL       string
	PaymentInitFailed bool
}

// AdQuery narrows and pages a placement listing.
type AdQuery struct {
	ApprovalStatus *model.AdApprovalStatus
	Center         *model.Point
	RadiusMeters   float64
	Page           int
	Limit          int
}

// AdListing is one page of placements.
type AdListing struct {
	Items       []model.Ad
	CurrentPage int
	TotalPages  int
	TotalCount  int64
}

// RejectAdRequest carries the moderation verdict for a rejected placement.
type RejectAdRequest struct {
	Code   string
	Note   string
	Amount *float64
}

// RejectAdResult distinguishes a clean rejection from one whose refund must be
// retried out of band.
type RejectAdResult struct {
	Ad              *model.Ad
	RefundFailed    bool
	RefundSimulated bool
}

// AdUseCase runs placement admission and the approval workflow.
type AdUseCase struct {
	ads     repository.AdRepository
	gateway chapa.Client
	gate    Gate
	logger  *slog.Logger
}

// NewAdUseCase constructs AdUseCase.
func NewAdUseCase(ads repository.AdRepository, gateway chapa.Client, gate Gate, logger *slog.Logger) *AdUseCase {
	return &AdUseCase{ads: ads, gateway: gateway, gate: gate, logger: logger}
}

func validatePlacement(req PlacementRequest) error {
	switch {
	case req.ProductID == 0 || strings.TrimSpace(req.ProductName) == "":
		return fmt.Errorf("%w: product descriptor required", domainErrors.ErrValidation)
	case req.MerchantID == 0 || strings.TrimSpace(req.MerchantName) == "" || strings.TrimSpace(req.MerchantEmail) == "":
		return fmt.Errorf("%w: merchant descriptor required", domainErrors.ErrValidation)
	case req.Price <= 0:
		return fmt.Errorf("%w: price must be positive", domainErrors.ErrValidation)
	}
	if err := ValidatePoint(req.Location); err != nil {
		return err
	}
	return ValidateWindow(req.StartsAt, req.EndsAt)
}

// SubmitPlacement persists a new pending placement and registers its checkout
// with the payment provider. The admission check runs before the insert, so a
// placement that could never activate is refused outright.
func (u *AdUseCase) SubmitPlacement(ctx context.Context, identity *model.Identity, req PlacementRequest) (*PlacementResult, error) {
	if err := u.gate.Require(identity, model.RoleMerchant, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validatePlacement(req); err != nil {
		return nil, err
	}

	ad := &model.Ad{
		ProductID:     req.ProductID,
		ProductName:   req.ProductName,
		ProductPrice:  req.ProductPrice,
		MerchantID:    req.MerchantID,
		MerchantName:  req.MerchantName,
		MerchantEmail: req.MerchantEmail,
		MerchantPhone: req.MerchantPhone,
		Price:         req.Price,
		Location:      req.Location,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		TxRef:         "ad-" + uuid.NewString(),
	}

	created, err := u.ads.CreateAdmitted(ctx, ad)
	if err != nil {
		return nil, err
	}

	result := &PlacementResult{Ad: created}
	init, err := u.gateway.InitializeTransaction(ctx, chapa.InitRequest{
		Amount:    created.Price,
		TxRef:     created.TxRef,
		Email:     created.MerchantEmail,
		FirstName: created.MerchantName,
	})
	if err != nil {
		// The placement stands; payment initialization is retried separately.
		u.logger.Warn("payment initialization failed",
			slog.Int64("ad_id", created.ID),
			slog.String("tx_ref", created.TxRef),
			slog.String("error", err.Error()),
		)
		result.PaymentInitFailed = true
		return result, nil
	}
	result.CheckoutURL = init.CheckoutURL
	return result, nil
}

// List returns placements ordered by distance-then-recency when a center is
// given and by recency otherwise.
func (u *AdUseCase) List(ctx context.Context, q AdQuery) (*AdListing, error) {
	if q.Page < 1 || q.Limit < 1 {
		return nil, fmt.Errorf("%w: page and limit must be positive", domainErrors.ErrValidation)
	}
	if q.Center != nil {
		if err := ValidatePoint(*q.Center); err != nil {
			return nil, err
		}
		if q.RadiusMeters <= 0 {
			q.RadiusMeters = model.AdCapacityRadiusMeters
		}
	}

	page, err := u.ads.List(ctx, repository.AdFilter{
		ApprovalStatus: q.ApprovalStatus,
		Center:         q.Center,
		RadiusMeters:   q.RadiusMeters,
	}, q.Page, q.Limit)
	if err != nil {
		return nil, err
	}

	return &AdListing{
		Items:       page.Items,
		CurrentPage: q.Page,
		TotalPages:  int(math.Ceil(float64(page.TotalCount) / float64(q.Limit))),
		TotalCount:  page.TotalCount,
	}, nil
}

// Approve moves a pending placement to APPROVED. Activation happens in the
// same serialized transition when the payment is already settled.
func (u *AdUseCase) Approve(ctx context.Context, identity *model.Identity, adID int64) (*model.Ad, error) {
	if err := u.gate.Require(identity, model.RoleAdmin); err != nil {
		return nil, err
	}
	return u.ads.Approve(ctx, adID)
}

// Reject moves a pending placement to REJECTED and refunds its transaction.
// The rejection is persisted before the refund attempt, so a provider failure
// never reverts the moderation decision.
func (u *AdUseCase) Reject(ctx context.Context, identity *model.Identity, adID int64, req RejectAdRequest) (*RejectAdResult, error) {
	if err := u.gate.Require(identity, model.RoleAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Note) == "" {
		return nil, fmt.Errorf("%w: rejection reason required", domainErrors.ErrValidation)
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	ad, err := u.ads.Reject(ctx, adID, req.Code, req.Note)
	if err != nil {
		return nil, err
	}

	result := &RejectAdResult{Ad: ad}

	amount := req.Amount
	if amount == nil {
		full := ad.Price
		amount = &full
	}

	outcome, err := u.gateway.Refund(ctx, ad.TxRef, chapa.RefundRequest{Amount: amount, Reason: req.Code + ": " + req.Note})
	if err != nil {
		u.logger.Error("refund after rejection failed",
			slog.Int64("ad_id", ad.ID),
			slog.String("tx_ref", ad.TxRef),
			slog.String("error", err.Error()),
		)
		result.RefundFailed = true
		return result, nil
	}
	result.RefundSimulated = outcome == chapa.RefundSimulated
	return result, nil
}

// ConfirmPayment records the provider verdict for a placement transaction.
func (u *AdUseCase) ConfirmPayment(ctx context.Context, txRef string, status model.AdPaymentStatus) (*model.Ad, error) {
	if status != model.AdPaymentPaid && status != model.AdPaymentFailed {
		return nil, fmt.Errorf("%w: unsupported payment status %q", domainErrors.ErrValidation, status)
	}

	ad, activated, err := u.ads.MarkPayment(ctx, txRef, status)
	if err != nil {
		return nil, err
	}
	if status == model.AdPaymentPaid && ad.ApprovalStatus == model.AdApprovalApproved && !activated {
		// Paid and approved but the area is full; the ad stays dormant.
		u.logger.Warn("placement left inactive at capacity",
			slog.Int64("ad_id", ad.ID),
			slog.String("tx_ref", ad.TxRef),
		)
	}
	return ad, nil
}
