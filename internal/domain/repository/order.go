package repository

import (
	"context"

	"github.com/gebeyahq/marketadmin/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByTxRef(ctx context.Context, txRef string) (*model.Order, error)
	// MarkPaidToMerchant stores the transfer reference and moves the order
	// into its terminal payout state. ErrConflict when already there.
	MarkPaidToMerchant(ctx context.Context, id int64, transferRef string) (*model.Order, error)
	// MarkRefunded moves the order into its terminal refunded state and
	// stores the reason. ErrConflict when already refunded.
	MarkRefunded(ctx context.Context, id int64, reason string) (*model.Order, error)
}
