package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gebeyahq/marketadmin/internal/adapter/chapa"
	domainErrors "github.com/gebeyahq/marketadmin/internal/domain/errors"
	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/domain/repository"
)

// RefundOrderRequest identifies the order and optionally caps the refund. A
// nil Amount refunds the full order total.
type RefundOrderRequest struct {
	TxRef  string
	Reason string
	Amount *float64
}

// RefundResult carries the refunded order plus reconciliation leftovers:
// products that vanished before their stock could be restored.
type RefundResult struct {
	Order           *model.Order
	SkippedProducts []int64
	Simulated       bool
}

// OrderUseCase runs order settlement: merchant payouts and refunds.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	gateway  chapa.Client
	gate     Gate
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, products repository.ProductRepository, gateway chapa.Client, gate Gate, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, products: products, gateway: gateway, gate: gate, logger: logger}
}

// MarkPaidToMerchant transfers the order total to the merchant account and
// records the payout. The transfer runs first: a provider failure leaves the
// order untouched so the operator can retry.
func (u *OrderUseCase) MarkPaidToMerchant(ctx context.Context, identity *model.Identity, orderID int64) (*model.Order, error) {
	if err := u.gate.Require(identity, model.RoleAdmin); err != nil {
		return nil, err
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	switch order.PaymentStatus {
	case model.OrderPaymentPaidToMerchant:
		return nil, fmt.Errorf("%w: order already paid to merchant", domainErrors.ErrConflict)
	case model.OrderPaymentRefunded:
		return nil, fmt.Errorf("%w: order already refunded", domainErrors.ErrConflict)
	}
	if order.Payout.AccountNumber == "" || order.Payout.BankCode == "" {
		return nil, fmt.Errorf("%w: merchant payout account missing", domainErrors.ErrValidation)
	}

	transfer, err := u.gateway.Transfer(ctx, chapa.TransferRequest{
		AccountName:   order.Payout.AccountName,
		AccountNumber: order.Payout.AccountNumber,
		BankCode:      order.Payout.BankCode,
		Amount:        order.TotalPrice,
		Reference:     fmt.Sprintf("payout-%d", order.ID),
	})
	if err != nil {
		return nil, err
	}

	return u.orders.MarkPaidToMerchant(ctx, order.ID, transfer.ProviderRef)
}

// Refund reverses an order payment, returns sold stock to the shelf and moves
// the order into its terminal refunded state. Stock reconciliation is best
// effort: products deleted since the purchase are skipped and reported.
func (u *OrderUseCase) Refund(ctx context.Context, identity *model.Identity, req RefundOrderRequest) (*RefundResult, error) {
	if err := u.gate.Require(identity, model.RoleAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.TxRef) == "" {
		return nil, fmt.Errorf("%w: transaction reference required", domainErrors.ErrValidation)
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	order, err := u.orders.GetByTxRef(ctx, req.TxRef)
	if err != nil {
		return nil, err
	}
	return u.refund(ctx, order, req.Reason, req.Amount)
}

// RefundByOrderID is the console-side entry, addressing the order directly.
func (u *OrderUseCase) RefundByOrderID(ctx context.Context, identity *model.Identity, orderID int64, reason string, amount *float64) (*RefundResult, error) {
	if err := u.gate.Require(identity, model.RoleAdmin); err != nil {
		return nil, err
	}
	if amount != nil && *amount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return u.refund(ctx, order, reason, amount)
}

func (u *OrderUseCase) refund(ctx context.Context, order *model.Order, reason string, amount *float64) (*RefundResult, error) {
	switch order.PaymentStatus {
	case model.OrderPaymentRefunded:
		return nil, fmt.Errorf("%w: order already refunded", domainErrors.ErrConflict)
	case model.OrderPaymentPaidToMerchant:
		return nil, fmt.Errorf("%w: order already paid to merchant", domainErrors.ErrConflict)
	}
	if order.TxRef == "" {
		return nil, fmt.Errorf("%w: order has no settled transaction", domainErrors.ErrValidation)
	}

	if reason == "" {
		reason = "order refund"
	}
	if amount == nil {
		full := order.TotalPrice
		amount = &full
	}

	outcome, err := u.gateway.Refund(ctx, order.TxRef, chapa.RefundRequest{Amount: amount, Reason: reason})
	if err != nil {
		return nil, err
	}

	result := &RefundResult{Simulated: outcome == chapa.RefundSimulated}

	for _, item := range order.Items {
		if err := u.products.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				u.logger.Warn("product gone, stock not restored",
					slog.Int64("order_id", order.ID),
					slog.Int64("product_id", item.ProductID),
				)
				result.SkippedProducts = append(result.SkippedProducts, item.ProductID)
				continue
			}
			return nil, err
		}
	}

	updated, err := u.orders.MarkRefunded(ctx, order.ID, reason)
	if err != nil {
		return nil, err
	}
	result.Order = updated
	return result, nil
}
