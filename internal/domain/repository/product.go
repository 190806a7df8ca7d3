package repository

import "context"

// ProductRepository describes stock reconciliation operations.
type ProductRepository interface {
	// RestoreStock returns quantity to the shelf and decrements the sold
	// counter, clamped at zero. ErrNotFound when the product is gone.
	RestoreStock(ctx context.Context, productID int64, quantity int) error
}
