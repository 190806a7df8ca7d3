package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/gebeyahq/marketadmin/internal/domain/errors"
	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/domain/repository"
)

func newMockStorage(t *testing.T) (*Storage, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage := &Storage{pool: mock, logger: logger}
	return storage, mock
}

func expectationsMet(t *testing.T, mock pgxmockv3.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

var adColumnNames = []string{
	"id", "product_id", "product_name", "product_price", "merchant_id", "merchant_name",
	"merchant_email", "merchant_phone", "price", "longitude", "latitude", "starts_at", "ends_at",
	"payment_status", "approval_status", "is_active", "rejection_code", "rejection_note", "tx_ref",
	"created_at", "updated_at",
}

func adRow(now time.Time, approval model.AdApprovalStatus, payment model.AdPaymentStatus, active bool) *pgxmockv3.Rows {
	return pgxmockv3.NewRows(adColumnNames).AddRow(
		int64(1), int64(10), "billboard", 120.0, int64(20), "Alem Shop",
		"alem@example.com", "+251900000000", 150.0, 38.74, 9.03, now, now.Add(time.Hour),
		payment, approval, active, "", "", "ad-tx-1",
		now, now,
	)
}

func TestAdminCreateDuplicate(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectQuery("INSERT INTO admins").WithArgs("root", "hash", model.RoleSuperAdmin).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	if _, err := storage.Admins().Create(context.Background(), "root", "hash", model.RoleSuperAdmin); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestAdminGetByLoginNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectQuery("SELECT id, login, password_hash, role, created_at FROM admins WHERE login=").
		WithArgs("ghost").WillReturnError(pgx.ErrNoRows)

	if _, err := storage.Admins().GetByLogin(context.Background(), "ghost"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestCreateAdmittedCapacityExceeded(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(int64(adActivationLockKey)).
		WillReturnResult(pgxmockv3.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(38.74, 9.03, float64(model.AdCapacityRadiusMeters), model.AdApprovalApproved, model.AdPaymentPaid).
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	ad := &model.Ad{Location: model.Point{Longitude: 38.74, Latitude: 9.03}, TxRef: "ad-tx-9"}
	if _, err := storage.Ads().CreateAdmitted(context.Background(), ad); !errors.Is(err, domainErrors.ErrCapacityExceeded) {
		t.Fatalf("expected capacity error, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestCreateAdmittedInsertsPendingRecord(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Unix(1000, 0)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(int64(adActivationLockKey)).
		WillReturnResult(pgxmockv3.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(38.74, 9.03, float64(model.AdCapacityRadiusMeters), model.AdApprovalApproved, model.AdPaymentPaid).
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("INSERT INTO ads").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))
	mock.ExpectCommit()

	ad := &model.Ad{
		ProductID: 10, ProductName: "billboard", ProductPrice: 120,
		MerchantID: 20, MerchantName: "Alem Shop", MerchantEmail: "alem@example.com", MerchantPhone: "+2519",
		Price: 150, Location: model.Point{Longitude: 38.74, Latitude: 9.03},
		StartsAt: now, EndsAt: now.Add(time.Hour), TxRef: "ad-tx-5",
	}
	created, err := storage.Ads().CreateAdmitted(context.Background(), ad)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 5 {
		t.Fatalf("expected id 5, got %d", created.ID)
	}
	if created.ApprovalStatus != model.AdApprovalPending || created.PaymentStatus != model.AdPaymentPending || created.IsActive {
		t.Fatalf("expected pending inactive record, got %+v", created)
	}
	expectationsMet(t, mock)
}

func TestApproveActivatesPaidAd(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Unix(2000, 0)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(int64(adActivationLockKey)).
		WillReturnResult(pgxmockv3.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT .+ FROM ads WHERE id=.+ FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(adRow(now, model.AdApprovalPending, model.AdPaymentPaid, false))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(38.74, 9.03, float64(model.AdCapacityRadiusMeters), model.AdApprovalApproved, model.AdPaymentPaid).
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("UPDATE ads SET approval_status=").
		WithArgs(int64(1), model.AdApprovalApproved, true).
		WillReturnRows(pgxmockv3.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectCommit()

	ad, err := storage.Ads().Approve(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ad.ApprovalStatus != model.AdApprovalApproved || !ad.IsActive {
		t.Fatalf("expected approved active ad, got %+v", ad)
	}
	expectationsMet(t, mock)
}

func TestApproveConflictOnDecidedAd(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Unix(2000, 0)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(int64(adActivationLockKey)).
		WillReturnResult(pgxmockv3.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT .+ FROM ads WHERE id=.+ FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(adRow(now, model.AdApprovalRejected, model.AdPaymentPaid, false))
	mock.ExpectRollback()

	if _, err := storage.Ads().Approve(context.Background(), 1); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestApproveCapacityExceeded(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Unix(2000, 0)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(int64(adActivationLockKey)).
		WillReturnResult(pgxmockv3.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT .+ FROM ads WHERE id=.+ FOR UPDATE").WithArgs(int64(1)).
		WillReturnRows(adRow(now, model.AdApprovalPending, model.AdPaymentPaid, false))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(38.74, 9.03, float64(model.AdCapacityRadiusMeters), model.AdApprovalApproved, model.AdPaymentPaid).
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	if _, err := storage.Ads().Approve(context.Background(), 1); !errors.Is(err, domainErrors.ErrCapacityExceeded) {
		t.Fatalf("expected capacity error, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestRejectConflictAndNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("UPDATE ads SET approval_status=").
		WithArgs(int64(1), model.AdApprovalRejected, "policy", "prohibited item", model.AdApprovalPending).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows([]string{"exists"}).AddRow(true))

	if _, err := storage.Ads().Reject(context.Background(), 1, "policy", "prohibited item"); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	mock.ExpectQuery("UPDATE ads SET approval_status=").
		WithArgs(int64(2), model.AdApprovalRejected, "policy", "prohibited item", model.AdApprovalPending).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").WithArgs(int64(2)).
		WillReturnRows(pgxmockv3.NewRows([]string{"exists"}).AddRow(false))

	if _, err := storage.Ads().Reject(context.Background(), 2, "policy", "prohibited item"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestMarkPaymentActivatesApprovedAd(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Unix(3000, 0)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(int64(adActivationLockKey)).
		WillReturnResult(pgxmockv3.NewResult("SELECT", 1))
	mock.ExpectQuery("UPDATE ads SET payment_status=").
		WithArgs("ad-tx-1", model.AdPaymentPaid).
		WillReturnRows(adRow(now, model.AdApprovalApproved, model.AdPaymentPaid, false))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(38.74, 9.03, float64(model.AdCapacityRadiusMeters), model.AdApprovalApproved, model.AdPaymentPaid).
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE ads SET is_active=TRUE").WithArgs(int64(1)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	ad, activated, err := storage.Ads().MarkPayment(context.Background(), "ad-tx-1", model.AdPaymentPaid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !activated || !ad.IsActive {
		t.Fatalf("expected activation, got activated=%v ad=%+v", activated, ad)
	}
	expectationsMet(t, mock)
}

func TestMarkPaymentLeavesAdInactiveAtCapacity(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Unix(3000, 0)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WithArgs(int64(adActivationLockKey)).
		WillReturnResult(pgxmockv3.NewResult("SELECT", 1))
	mock.ExpectQuery("UPDATE ads SET payment_status=").
		WithArgs("ad-tx-1", model.AdPaymentPaid).
		WillReturnRows(adRow(now, model.AdApprovalApproved, model.AdPaymentPaid, false))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(38.74, 9.03, float64(model.AdCapacityRadiusMeters), model.AdApprovalApproved, model.AdPaymentPaid).
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectCommit()

	ad, activated, err := storage.Ads().MarkPayment(context.Background(), "ad-tx-1", model.AdPaymentPaid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if activated || ad.IsActive {
		t.Fatalf("expected ad to stay inactive at capacity")
	}
	expectationsMet(t, mock)
}

func TestListAdsWithoutCenter(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Unix(4000, 0)
	status := model.AdApprovalPending

	mock.ExpectQuery("SELECT COUNT").WithArgs(status).
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(int64(7)))
	mock.ExpectQuery("SELECT .+ FROM ads WHERE approval_status=.+ ORDER BY created_at DESC").
		WithArgs(status, 2, 2).
		WillReturnRows(adRow(now, status, model.AdPaymentPending, false))

	page, err := storage.Ads().List(context.Background(), repository.AdFilter{ApprovalStatus: &status}, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalCount != 7 {
		t.Fatalf("expected total 7, got %d", page.TotalCount)
	}
	if len(page.Items) != 1 || page.Items[0].TxRef != "ad-tx-1" {
		t.Fatalf("unexpected page items %+v", page.Items)
	}
	expectationsMet(t, mock)
}

var orderColumnNames = []string{
	"id", "merchant_id", "account_name", "account_number", "bank_code", "customer_name",
	"total_price", "fulfillment_status", "payment_status", "tx_ref", "transfer_ref", "refund_reason",
	"created_at", "updated_at",
}

func orderRow(now time.Time, status model.OrderPaymentStatus) *pgxmockv3.Rows {
	return pgxmockv3.NewRows(orderColumnNames).AddRow(
		int64(1), int64(20), "Alem Shop", "1000123", "880", "Meles",
		250.0, "Delivered", status, "order-tx-1", "", "",
		now, now,
	)
}

func TestOrderGetByTxRefLoadsItems(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Unix(5000, 0)

	mock.ExpectQuery("SELECT .+ FROM orders WHERE tx_ref=").WithArgs("order-tx-1").
		WillReturnRows(orderRow(now, model.OrderPaymentPaid))
	mock.ExpectQuery("SELECT product_id, product_name, quantity, unit_price FROM order_items").
		WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows([]string{"product_id", "product_name", "quantity", "unit_price"}).
			AddRow(int64(10), "coffee", 2, 100.0).
			AddRow(int64(11), "teff", 1, 50.0))

	order, err := storage.Orders().GetByTxRef(context.Background(), "order-tx-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order.Items) != 2 || order.Items[0].ProductID != 10 {
		t.Fatalf("unexpected items %+v", order.Items)
	}
	expectationsMet(t, mock)
}

func TestMarkPaidToMerchantConflict(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("UPDATE orders SET payment_status=").
		WithArgs(int64(1), model.OrderPaymentPaidToMerchant, "chapa-ref").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows([]string{"exists"}).AddRow(true))

	if _, err := storage.Orders().MarkPaidToMerchant(context.Background(), 1, "chapa-ref"); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestRestoreStock(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec("UPDATE products").WithArgs(int64(10), 2).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := storage.Products().RestoreStock(context.Background(), 10, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE products").WithArgs(int64(11), 1).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := storage.Products().RestoreStock(context.Background(), 11, 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	expectationsMet(t, mock)
}

var auctionColumnNames = []string{
	"id", "merchant_id", "product_id", "start_time", "end_time", "starting_price",
	"reserved_price", "bid_increment", "total_quantity", "remaining_quantity", "status",
	"admin_approval", "created_at", "updated_at",
}

func TestAuctionCreateInitializesRemainingQuantity(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Unix(6000, 0)

	mock.ExpectQuery("INSERT INTO auctions").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	auction, err := storage.Auctions().Create(context.Background(), &model.Auction{
		MerchantID: 20, ProductID: 10,
		StartTime: now, EndTime: now.Add(time.Hour),
		StartingPrice: 100, ReservedPrice: 200, BidIncrement: 10,
		TotalQuantity: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auction.RemainingQuantity != 5 {
		t.Fatalf("expected remaining quantity 5, got %d", auction.RemainingQuantity)
	}
	if auction.Status != model.AuctionStatusPending || auction.AdminApproval != model.AuctionApprovalPending {
		t.Fatalf("expected pending auction, got %+v", auction)
	}
	expectationsMet(t, mock)
}

func TestAuctionSetApprovalConflict(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("UPDATE auctions SET admin_approval=").
		WithArgs(int64(1), model.AuctionApprovalApproved, model.AuctionStatusActive, model.AuctionApprovalPending).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows([]string{"exists"}).AddRow(true))

	if _, err := storage.Auctions().SetApproval(context.Background(), 1, model.AuctionApprovalApproved, model.AuctionStatusActive); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestSelectStatusLagged(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Unix(7000, 0)

	mock.ExpectQuery("SELECT .+ FROM auctions").WithArgs(now, 10).
		WillReturnRows(pgxmockv3.NewRows(auctionColumnNames).AddRow(
			int64(1), int64(20), int64(10), now.Add(-2*time.Hour), now.Add(-time.Hour),
			100.0, 200.0, 10.0, 5, 5, model.AuctionStatusActive, model.AuctionApprovalApproved,
			now, now,
		))

	lagged, err := storage.Auctions().SelectStatusLagged(context.Background(), now, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lagged) != 1 || lagged[0].ID != 1 {
		t.Fatalf("unexpected result %+v", lagged)
	}
	expectationsMet(t, mock)
}

func TestWithinTransactionCommitAndRollback(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectCommit()
	if err := storage.WithinTransaction(context.Background(), func(pgx.Tx) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()
	boom := errors.New("boom")
	if err := storage.WithinTransaction(context.Background(), func(pgx.Tx) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestHealthCheck(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectPing()
	if err := storage.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectPing().WillReturnError(errors.New("ping"))
	if err := storage.HealthCheck(context.Background()); err == nil {
		t.Fatalf("expected ping error to propagate")
	}
	expectationsMet(t, mock)
}
