package test

import (
	"context"
	"time"

	domainErrors "github.com/gebeyahq/marketadmin/internal/domain/errors"
	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/domain/repository"
)

// AdminRepositoryStub stores console accounts in-memory for tests.
type AdminRepositoryStub struct {
	Admins map[string]*model.Admin
	ByID   map[int64]*model.Admin
	Next   int64
	Err    error
}

// NewAdminRepositoryStub constructs stub repository with initialized maps.
func NewAdminRepositoryStub() *AdminRepositoryStub {
	return &AdminRepositoryStub{
		Admins: make(map[string]*model.Admin),
		ByID:   make(map[int64]*model.Admin),
		Next:   1,
	}
}

// Create registers an account unless already present or stub has explicit error.
func (s *AdminRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Admins == nil {
		s.Admins = make(map[string]*model.Admin)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.Admin)
	}
	if _, exists := s.Admins[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	admin := &model.Admin{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Admins[login] = admin
	s.ByID[admin.ID] = admin
	return admin, nil
}

// GetByLogin fetches account by login or returns not found.
func (s *AdminRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.Admins[login]; ok {
		return admin, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches account by identifier or returns not found.
func (s *AdminRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.ByID[id]; ok {
		return admin, nil
	}
	return nil, domainErrors.ErrNotFound
}

// AdRepositoryStub allows tests to customize placement persistence behaviour.
type AdRepositoryStub struct {
	CreateAdmittedFn  func(context.Context, *model.Ad) (*model.Ad, error)
	GetByIDFn         func(context.Context, int64) (*model.Ad, error)
	GetByTxRefFn      func(context.Context, string) (*model.Ad, error)
	ListFn            func(context.Context, repository.AdFilter, int, int) (*repository.AdPage, error)
	CountActiveNearFn func(context.Context, model.Point, float64) (int, error)
	ApproveFn         func(context.Context, int64) (*model.Ad, error)
	RejectFn          func(context.Context, int64, string, string) (*model.Ad, error)
	MarkPaymentFn     func(context.Context, string, model.AdPaymentStatus) (*model.Ad, bool, error)

	Created []model.Ad
	Ads     []model.Ad
}

// CreateAdmitted tracks invocations and returns configured responses.
func (s *AdRepositoryStub) CreateAdmitted(ctx context.Context, ad *model.Ad) (*model.Ad, error) {
	s.Created = append(s.Created, *ad)
	if s.CreateAdmittedFn != nil {
		return s.CreateAdmittedFn(ctx, ad)
	}
	created := *ad
	created.ID = int64(len(s.Created))
	created.PaymentStatus = model.AdPaymentPending
	created.ApprovalStatus = model.AdApprovalPending
	return &created, nil
}

// GetByID returns the override result or not found.
func (s *AdRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Ad, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// GetByTxRef returns the override result or not found.
func (s *AdRepositoryStub) GetByTxRef(ctx context.Context, txRef string) (*model.Ad, error) {
	if s.GetByTxRefFn != nil {
		return s.GetByTxRefFn(ctx, txRef)
	}
	return nil, domainErrors.ErrNotFound
}

// List returns the configured slice as a single page.
func (s *AdRepositoryStub) List(ctx context.Context, filter repository.AdFilter, page, limit int) (*repository.AdPage, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter, page, limit)
	}
	return &repository.AdPage{Items: s.Ads, TotalCount: int64(len(s.Ads))}, nil
}

// CountActiveNear delegates to the override or reports an empty area.
func (s *AdRepositoryStub) CountActiveNear(ctx context.Context, center model.Point, radiusMeters float64) (int, error) {
	if s.CountActiveNearFn != nil {
		return s.CountActiveNearFn(ctx, center, radiusMeters)
	}
	return 0, nil
}

// Approve delegates to the override or reports not found.
func (s *AdRepositoryStub) Approve(ctx context.Context, id int64) (*model.Ad, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// Reject delegates to the override or reports not found.
func (s *AdRepositoryStub) Reject(ctx context.Context, id int64, code, note string) (*model.Ad, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, id, code, note)
	}
	return nil, domainErrors.ErrNotFound
}

// MarkPayment delegates to the override or reports not found.
func (s *AdRepositoryStub) MarkPayment(ctx context.Context, txRef string, status model.AdPaymentStatus) (*model.Ad, bool, error) {
	if s.MarkPaymentFn != nil {
		return s.MarkPaymentFn(ctx, txRef, status)
	}
	return nil, false, domainErrors.ErrNotFound
}

// OrderRepositoryStub lets tests control settlement data.
type OrderRepositoryStub struct {
	GetByIDFn            func(context.Context, int64) (*model.Order, error)
	GetByTxRefFn         func(context.Context, string) (*model.Order, error)
	MarkPaidToMerchantFn func(context.Context, int64, string) (*model.Order, error)
	MarkRefundedFn       func(context.Context, int64, string) (*model.Order, error)

	Order       *model.Order
	PayoutCalls []string
	RefundCalls []string
}

// GetByID returns the configured order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Order != nil && s.Order.ID == id {
		order := *s.Order
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByTxRef returns the configured order or not found.
func (s *OrderRepositoryStub) GetByTxRef(ctx context.Context, txRef string) (*model.Order, error) {
	if s.GetByTxRefFn != nil {
		return s.GetByTxRefFn(ctx, txRef)
	}
	if s.Order != nil && s.Order.TxRef == txRef {
		order := *s.Order
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MarkPaidToMerchant records the transfer reference and settles the stub order.
func (s *OrderRepositoryStub) MarkPaidToMerchant(ctx context.Context, id int64, transferRef string) (*model.Order, error) {
	if s.MarkPaidToMerchantFn != nil {
		return s.MarkPaidToMerchantFn(ctx, id, transferRef)
	}
	s.PayoutCalls = append(s.PayoutCalls, transferRef)
	if s.Order == nil || s.Order.ID != id {
		return nil, domainErrors.ErrNotFound
	}
	order := *s.Order
	order.PaymentStatus = model.OrderPaymentPaidToMerchant
	order.TransferRef = transferRef
	return &order, nil
}

// MarkRefunded records the reason and moves the stub order to refunded.
func (s *OrderRepositoryStub) MarkRefunded(ctx context.Context, id int64, reason string) (*model.Order, error) {
	if s.MarkRefundedFn != nil {
		return s.MarkRefundedFn(ctx, id, reason)
	}
	s.RefundCalls = append(s.RefundCalls, reason)
	if s.Order == nil || s.Order.ID != id {
		return nil, domainErrors.ErrNotFound
	}
	order := *s.Order
	order.PaymentStatus = model.OrderPaymentRefunded
	order.RefundReason = reason
	return &order, nil
}

// ProductRepositoryStub records stock restoration calls.
type ProductRepositoryStub struct {
	RestoreStockFn func(context.Context, int64, int) error
	Restored       map[int64]int
	Missing        map[int64]bool
}

// RestoreStock tracks restored quantities and simulates missing products.
func (s *ProductRepositoryStub) RestoreStock(ctx context.Context, productID int64, quantity int) error {
	if s.RestoreStockFn != nil {
		return s.RestoreStockFn(ctx, productID, quantity)
	}
	if s.Missing[productID] {
		return domainErrors.ErrNotFound
	}
	if s.Restored == nil {
		s.Restored = make(map[int64]int)
	}
	s.Restored[productID] += quantity
	return nil
}

// AuctionRepositoryStub lets tests control auction persistence.
type AuctionRepositoryStub struct {
	CreateFn             func(context.Context, *model.Auction) (*model.Auction, error)
	GetByIDFn            func(context.Context, int64) (*model.Auction, error)
	SetApprovalFn        func(context.Context, int64, model.AuctionApproval, model.AuctionStatus) (*model.Auction, error)
	SelectStatusLaggedFn func(context.Context, time.Time, int) ([]model.Auction, error)
	UpdateStatusFn       func(context.Context, int64, model.AuctionStatus) error

	Auction     *model.Auction
	Lagged      []model.Auction
	StatusCalls []AuctionStatusCall
}

// AuctionStatusCall records an UpdateStatus invocation.
type AuctionStatusCall struct {
	ID     int64
	Status model.AuctionStatus
}

// Create initializes remaining quantity the way the real repository does.
func (s *AuctionRepositoryStub) Create(ctx context.Context, a *model.Auction) (*model.Auction, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, a)
	}
	created := *a
	created.ID = 1
	created.RemainingQuantity = created.TotalQuantity
	created.Status = model.AuctionStatusPending
	created.AdminApproval = model.AuctionApprovalPending
	return &created, nil
}

// GetByID returns the configured auction or not found.
func (s *AuctionRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Auction, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Auction != nil && s.Auction.ID == id {
		auction := *s.Auction
		return &auction, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetApproval applies the decision to the stub auction.
func (s *AuctionRepositoryStub) SetApproval(ctx context.Context, id int64, approval model.AuctionApproval, status model.AuctionStatus) (*model.Auction, error) {
	if s.SetApprovalFn != nil {
		return s.SetApprovalFn(ctx, id, approval, status)
	}
	if s.Auction == nil || s.Auction.ID != id {
		return nil, domainErrors.ErrNotFound
	}
	if s.Auction.AdminApproval != model.AuctionApprovalPending {
		return nil, domainErrors.ErrConflict
	}
	auction := *s.Auction
	auction.AdminApproval = approval
	auction.Status = status
	return &auction, nil
}

// SelectStatusLagged returns the configured backlog.
func (s *AuctionRepositoryStub) SelectStatusLagged(ctx context.Context, now time.Time, limit int) ([]model.Auction, error) {
	if s.SelectStatusLaggedFn != nil {
		return s.SelectStatusLaggedFn(ctx, now, limit)
	}
	if limit < len(s.Lagged) {
		return s.Lagged[:limit], nil
	}
	return s.Lagged, nil
}

// UpdateStatus records status transitions.
func (s *AuctionRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.AuctionStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	s.StatusCalls = append(s.StatusCalls, AuctionStatusCall{ID: id, Status: status})
	return nil
}

var (
	_ repository.AdminRepository   = (*AdminRepositoryStub)(nil)
	_ repository.AdRepository      = (*AdRepositoryStub)(nil)
	_ repository.OrderRepository   = (*OrderRepositoryStub)(nil)
	_ repository.ProductRepository = (*ProductRepositoryStub)(nil)
	_ repository.AuctionRepository = (*AuctionRepositoryStub)(nil)
)
