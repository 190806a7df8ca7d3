package repository

import (
	"context"

	"github.com/gebeyahq/marketadmin/internal/domain/model"
)

// AdFilter narrows placement listings.
type AdFilter struct {
	ApprovalStatus *model.AdApprovalStatus
	Center         *model.Point
	RadiusMeters   float64
}

// AdPage is one page of a placement listing plus the unpaged total.
type AdPage struct {
	Items      []model.Ad
	TotalCount int64
}

// AdRepository describes persistence operations with ad placements.
// Every transition into an active placement is admission-guarded: the
// implementation must serialize the proximity count against concurrent
// activations and fail with ErrCapacityExceeded when the limit is reached.
type AdRepository interface {
	// CreateAdmitted inserts a new pending placement after verifying that
	// activating it later would not overshoot the capacity around its point.
	CreateAdmitted(ctx context.Context, ad *model.Ad) (*model.Ad, error)
	GetByID(ctx context.Context, id int64) (*model.Ad, error)
	GetByTxRef(ctx context.Context, txRef string) (*model.Ad, error)
	List(ctx context.Context, filter AdFilter, page, limit int) (*AdPage, error)
	CountActiveNear(ctx context.Context, p model.Point, radiusMeters float64) (int, error)
	// Approve transitions PENDING -> APPROVED and activates the placement
	// when its payment is settled and capacity allows.
	Approve(ctx context.Context, id int64) (*model.Ad, error)
	// Reject transitions PENDING -> REJECTED and stores the reason.
	Reject(ctx context.Context, id int64, code, note string) (*model.Ad, error)
	// MarkPayment records the provider verdict for the transaction reference
	// and activates an already approved placement when capacity allows.
	// The returned flag reports whether activation happened.
	MarkPayment(ctx context.Context, txRef string, status model.AdPaymentStatus) (*model.Ad, bool, error)
}
