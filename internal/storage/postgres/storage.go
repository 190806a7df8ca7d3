package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/gebeyahq/marketadmin/internal/domain/errors"
	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool used by the storage layer.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type adminRepository struct {
	storage *Storage
}

type adRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type auctionRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Admins() repository.AdminRepository {
	return &adminRepository{storage: s}
}

func (s *Storage) Ads() repository.AdRepository {
	return &adRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Auctions() repository.AuctionRepository {
	return &auctionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS admins (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id BIGINT PRIMARY KEY,
            name TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL DEFAULT 0,
            quantity INTEGER NOT NULL DEFAULT 0,
            sold_quantity INTEGER NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS ads (
            id SERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL,
            product_name TEXT NOT NULL,
            product_price DOUBLE PRECISION NOT NULL,
            merchant_id BIGINT NOT NULL,
            merchant_name TEXT NOT NULL,
            merchant_email TEXT NOT NULL,
            merchant_phone TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            longitude DOUBLE PRECISION NOT NULL,
            latitude DOUBLE PRECISION NOT NULL,
            starts_at TIMESTAMPTZ NOT NULL,
            ends_at TIMESTAMPTZ NOT NULL,
            payment_status TEXT NOT NULL,
            approval_status TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT FALSE,
            rejection_code TEXT NOT NULL DEFAULT '',
            rejection_note TEXT NOT NULL DEFAULT '',
            tx_ref TEXT UNIQUE NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            merchant_id BIGINT NOT NULL,
            account_name TEXT NOT NULL DEFAULT '',
            account_number TEXT NOT NULL DEFAULT '',
            bank_code TEXT NOT NULL DEFAULT '',
            customer_name TEXT NOT NULL DEFAULT '',
            total_price DOUBLE PRECISION NOT NULL,
            fulfillment_status TEXT NOT NULL DEFAULT '',
            payment_status TEXT NOT NULL,
            tx_ref TEXT UNIQUE NOT NULL,
            transfer_ref TEXT NOT NULL DEFAULT '',
            refund_reason TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL,
            product_name TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS auctions (
            id SERIAL PRIMARY KEY,
            merchant_id BIGINT NOT NULL,
            product_id BIGINT NOT NULL,
            start_time TIMESTAMPTZ NOT NULL,
            end_time TIMESTAMPTZ NOT NULL,
            starting_price DOUBLE PRECISION NOT NULL,
            reserved_price DOUBLE PRECISION NOT NULL,
            bid_increment DOUBLE PRECISION NOT NULL,
            total_quantity INTEGER NOT NULL,
            remaining_quantity INTEGER NOT NULL,
            status TEXT NOT NULL,
            admin_approval TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_ads_listing ON ads(approval_status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_ads_active ON ads(is_active, latitude, longitude)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_auctions_window ON auctions(status, end_time)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- AdminRepository implementation ---

func (r *adminRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.Admin, error) {
	const query = `INSERT INTO admins (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var a model.Admin
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, role).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	a.Login = login
	a.PasswordHash = passwordHash
	a.Role = role
	return &a, nil
}

func (r *adminRepository) GetByLogin(ctx context.Context, login string) (*model.Admin, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM admins WHERE login=$1`
	return r.scanOne(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM admins WHERE id=$1`
	return r.scanOne(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *adminRepository) scanOne(row pgx.Row) (*model.Admin, error) {
	var a model.Admin
	err := row.Scan(&a.ID, &a.Login, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// --- AdRepository implementation ---

const adColumns = `id, product_id, product_name, product_price, merchant_id, merchant_name,
    merchant_email, merchant_phone, price, longitude, latitude, starts_at, ends_at,
    payment_status, approval_status, is_active, rejection_code, rejection_note, tx_ref,
    created_at, updated_at`

// adActivationLockKey serializes every transition into an active placement so
// concurrent activations cannot overshoot the proximity limit.
const adActivationLockKey int64 = 874_411_050

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func acquireActivationLock(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, adActivationLockKey)
	return err
}

// distanceExprAt renders the haversine distance in meters between the stored
// ad coordinates and the point bound at the given placeholder positions.
func distanceExprAt(lngParam, latParam int) string {
	return fmt.Sprintf(
		`6371000 * acos(least(1.0, greatest(-1.0, cos(radians($%d)) * cos(radians(latitude)) * cos(radians(longitude) - radians($%d)) + sin(radians($%d)) * sin(radians(latitude)))))`,
		latParam, lngParam, latParam,
	)
}

func countActiveNear(ctx context.Context, q rowQuerier, p model.Point, radiusMeters float64) (int, error) {
	query := fmt.Sprintf(
		`SELECT COUNT(*) FROM ads WHERE is_active AND approval_status=$4 AND payment_status=$5 AND %s <= $3`,
		distanceExprAt(1, 2),
	)
	var count int
	err := q.QueryRow(ctx, query, p.Longitude, p.Latitude, radiusMeters, model.AdApprovalApproved, model.AdPaymentPaid).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanAd(row pgx.Row) (*model.Ad, error) {
	var ad model.Ad
	err := row.Scan(
		&ad.ID, &ad.ProductID, &ad.ProductName, &ad.ProductPrice, &ad.MerchantID, &ad.MerchantName,
		&ad.MerchantEmail, &ad.MerchantPhone, &ad.Price, &ad.Location.Longitude, &ad.Location.Latitude,
		&ad.StartsAt, &ad.EndsAt, &ad.PaymentStatus, &ad.ApprovalStatus, &ad.IsActive,
		&ad.RejectionCode, &ad.RejectionNote, &ad.TxRef, &ad.CreatedAt, &ad.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &ad, nil
}

func (r *adRepository) CreateAdmitted(ctx context.Context, ad *model.Ad) (*model.Ad, error) {
	created := *ad
	created.PaymentStatus = model.AdPaymentPending
	created.ApprovalStatus = model.AdApprovalPending
	created.IsActive = false

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := acquireActivationLock(ctx, tx); err != nil {
			return err
		}

		count, err := countActiveNear(ctx, tx, created.Location, model.AdCapacityRadiusMeters)
		if err != nil {
			return err
		}
		if count >= model.AdCapacityLimit {
			return domainErrors.ErrCapacityExceeded
		}

		const query = `INSERT INTO ads (product_id, product_name, product_price, merchant_id, merchant_name,
                merchant_email, merchant_phone, price, longitude, latitude, starts_at, ends_at,
                payment_status, approval_status, is_active, tx_ref)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
            RETURNING id, created_at, updated_at`
		return tx.QueryRow(ctx, query,
			created.ProductID, created.ProductName, created.ProductPrice, created.MerchantID,
			created.MerchantName, created.MerchantEmail, created.MerchantPhone, created.Price,
			created.Location.Longitude, created.Location.Latitude, created.StartsAt, created.EndsAt,
			created.PaymentStatus, created.ApprovalStatus, created.IsActive, created.TxRef,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *adRepository) GetByID(ctx context.Context, id int64) (*model.Ad, error) {
	query := `SELECT ` + adColumns + ` FROM ads WHERE id=$1`
	return scanAd(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *adRepository) GetByTxRef(ctx context.Context, txRef string) (*model.Ad, error) {
	query := `SELECT ` + adColumns + ` FROM ads WHERE tx_ref=$1`
	return scanAd(r.storage.pool.QueryRow(ctx, query, txRef))
}

func (r *adRepository) CountActiveNear(ctx context.Context, p model.Point, radiusMeters float64) (int, error) {
	return countActiveNear(ctx, r.storage.pool, p, radiusMeters)
}

func (r *adRepository) List(ctx context.Context, filter repository.AdFilter, page, limit int) (*repository.AdPage, error) {
	var (
		conds    []string
		args     []any
		distance string
	)

	if filter.ApprovalStatus != nil {
		args = append(args, *filter.ApprovalStatus)
		conds = append(conds, fmt.Sprintf("approval_status=$%d", len(args)))
	}
	if filter.Center != nil {
		args = append(args, filter.Center.Longitude)
		lngParam := len(args)
		args = append(args, filter.Center.Latitude)
		latParam := len(args)
		distance = distanceExprAt(lngParam, latParam)
		args = append(args, filter.RadiusMeters)
		conds = append(conds, fmt.Sprintf("%s <= $%d", distance, len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.storage.pool.QueryRow(ctx, "SELECT COUNT(*) FROM ads"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	order := " ORDER BY created_at DESC, id DESC"
	if distance != "" {
		order = " ORDER BY " + distance + " ASC, created_at DESC, id DESC"
	}

	args = append(args, limit)
	limitParam := len(args)
	args = append(args, (page-1)*limit)
	offsetParam := len(args)

	query := fmt.Sprintf("SELECT %s FROM ads%s%s LIMIT $%d OFFSET $%d", adColumns, where, order, limitParam, offsetParam)
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &repository.AdPage{TotalCount: total}
	for rows.Next() {
		var ad model.Ad
		if err := rows.Scan(
			&ad.ID, &ad.ProductID, &ad.ProductName, &ad.ProductPrice, &ad.MerchantID, &ad.MerchantName,
			&ad.MerchantEmail, &ad.MerchantPhone, &ad.Price, &ad.Location.Longitude, &ad.Location.Latitude,
			&ad.StartsAt, &ad.EndsAt, &ad.PaymentStatus, &ad.ApprovalStatus, &ad.IsActive,
			&ad.RejectionCode, &ad.RejectionNote, &ad.TxRef, &ad.CreatedAt, &ad.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result.Items = append(result.Items, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *adRepository) Approve(ctx context.Context, id int64) (*model.Ad, error) {
	var approved *model.Ad
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := acquireActivationLock(ctx, tx); err != nil {
			return err
		}

		current, err := scanAd(tx.QueryRow(ctx, `SELECT `+adColumns+` FROM ads WHERE id=$1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if current.ApprovalStatus != model.AdApprovalPending {
			return domainErrors.ErrConflict
		}

		activate := current.PaymentStatus == model.AdPaymentPaid
		if activate {
			count, err := countActiveNear(ctx, tx, current.Location, model.AdCapacityRadiusMeters)
			if err != nil {
				return err
			}
			if count >= model.AdCapacityLimit {
				return domainErrors.ErrCapacityExceeded
			}
		}

		const update = `UPDATE ads SET approval_status=$2, is_active=$3, updated_at=NOW() WHERE id=$1 RETURNING updated_at`
		if err := tx.QueryRow(ctx, update, id, model.AdApprovalApproved, activate).Scan(&current.UpdatedAt); err != nil {
			return err
		}
		current.ApprovalStatus = model.AdApprovalApproved
		current.IsActive = activate
		approved = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

func (r *adRepository) Reject(ctx context.Context, id int64, code, note string) (*model.Ad, error) {
	query := `UPDATE ads SET approval_status=$2, is_active=FALSE, rejection_code=$3, rejection_note=$4, updated_at=NOW()
        WHERE id=$1 AND approval_status=$5
        RETURNING ` + adColumns
	ad, err := scanAd(r.storage.pool.QueryRow(ctx, query, id, model.AdApprovalRejected, code, note, model.AdApprovalPending))
	if err == nil {
		return ad, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	// No pending row matched: distinguish a missing ad from a decided one.
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM ads WHERE id=$1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, domainErrors.ErrConflict
	}
	return nil, domainErrors.ErrNotFound
}

func (r *adRepository) MarkPayment(ctx context.Context, txRef string, status model.AdPaymentStatus) (*model.Ad, bool, error) {
	var (
		updated   *model.Ad
		activated bool
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := acquireActivationLock(ctx, tx); err != nil {
			return err
		}

		ad, err := scanAd(tx.QueryRow(ctx,
			`UPDATE ads SET payment_status=$2, updated_at=NOW() WHERE tx_ref=$1 RETURNING `+adColumns,
			txRef, status,
		))
		if err != nil {
			return err
		}

		if status == model.AdPaymentPaid && ad.ApprovalStatus == model.AdApprovalApproved && !ad.IsActive {
			count, err := countActiveNear(ctx, tx, ad.Location, model.AdCapacityRadiusMeters)
			if err != nil {
				return err
			}
			if count < model.AdCapacityLimit {
				if _, err := tx.Exec(ctx, `UPDATE ads SET is_active=TRUE, updated_at=NOW() WHERE id=$1`, ad.ID); err != nil {
					return err
				}
				ad.IsActive = true
				activated = true
			}
		}

		updated = ad
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return updated, activated, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, merchant_id, account_name, account_number, bank_code, customer_name,
    total_price, fulfillment_status, payment_status, tx_ref, transfer_ref, refund_reason,
    created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.MerchantID, &o.Payout.AccountName, &o.Payout.AccountNumber, &o.Payout.BankCode,
		&o.CustomerName, &o.TotalPrice, &o.FulfillmentStatus, &o.PaymentStatus, &o.TxRef,
		&o.TransferRef, &o.RefundReason, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *model.Order) error {
	const query = `SELECT product_id, product_name, quantity, unit_price FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByTxRef(ctx context.Context, txRef string) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE tx_ref=$1`, txRef))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) MarkPaidToMerchant(ctx context.Context, id int64, transferRef string) (*model.Order, error) {
	query := `UPDATE orders SET payment_status=$2, transfer_ref=$3, updated_at=NOW()
        WHERE id=$1 AND payment_status<>$2
        RETURNING ` + orderColumns
	return r.markTerminal(ctx, id, query, model.OrderPaymentPaidToMerchant, transferRef)
}

func (r *orderRepository) MarkRefunded(ctx context.Context, id int64, reason string) (*model.Order, error) {
	query := `UPDATE orders SET payment_status=$2, refund_reason=$3, updated_at=NOW()
        WHERE id=$1 AND payment_status<>$2
        RETURNING ` + orderColumns
	return r.markTerminal(ctx, id, query, model.OrderPaymentRefunded, reason)
}

func (r *orderRepository) markTerminal(ctx context.Context, id int64, query string, status model.OrderPaymentStatus, extra string) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id, status, extra))
	if err == nil {
		if err := r.loadItems(ctx, order); err != nil {
			return nil, err
		}
		return order, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, domainErrors.ErrConflict
	}
	return nil, domainErrors.ErrNotFound
}

// --- ProductRepository implementation ---

func (r *productRepository) RestoreStock(ctx context.Context, productID int64, quantity int) error {
	const query = `UPDATE products
        SET quantity = quantity + $2,
            sold_quantity = GREATEST(sold_quantity - $2, 0)
        WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- AuctionRepository implementation ---

const auctionColumns = `id, merchant_id, product_id, start_time, end_time, starting_price,
    reserved_price, bid_increment, total_quantity, remaining_quantity, status, admin_approval,
    created_at, updated_at`

func scanAuction(row pgx.Row) (*model.Auction, error) {
	var a model.Auction
	err := row.Scan(
		&a.ID, &a.MerchantID, &a.ProductID, &a.StartTime, &a.EndTime, &a.StartingPrice,
		&a.ReservedPrice, &a.BidIncrement, &a.TotalQuantity, &a.RemainingQuantity,
		&a.Status, &a.AdminApproval, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *auctionRepository) Create(ctx context.Context, a *model.Auction) (*model.Auction, error) {
	created := *a
	created.Status = model.AuctionStatusPending
	created.AdminApproval = model.AuctionApprovalPending
	created.RemainingQuantity = created.TotalQuantity

	const query = `INSERT INTO auctions (merchant_id, product_id, start_time, end_time, starting_price,
            reserved_price, bid_increment, total_quantity, remaining_quantity, status, admin_approval)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		created.MerchantID, created.ProductID, created.StartTime, created.EndTime,
		created.StartingPrice, created.ReservedPrice, created.BidIncrement,
		created.TotalQuantity, created.RemainingQuantity, created.Status, created.AdminApproval,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *auctionRepository) GetByID(ctx context.Context, id int64) (*model.Auction, error) {
	return scanAuction(r.storage.pool.QueryRow(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE id=$1`, id))
}

func (r *auctionRepository) SetApproval(ctx context.Context, id int64, approval model.AuctionApproval, status model.AuctionStatus) (*model.Auction, error) {
	query := `UPDATE auctions SET admin_approval=$2, status=$3, updated_at=NOW()
        WHERE id=$1 AND admin_approval=$4
        RETURNING ` + auctionColumns
	auction, err := scanAuction(r.storage.pool.QueryRow(ctx, query, id, approval, status, model.AuctionApprovalPending))
	if err == nil {
		return auction, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM auctions WHERE id=$1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, domainErrors.ErrConflict
	}
	return nil, domainErrors.ErrNotFound
}

func (r *auctionRepository) SelectStatusLagged(ctx context.Context, now time.Time, limit int) ([]model.Auction, error) {
	const query = `SELECT ` + auctionColumns + ` FROM auctions
        WHERE (status IN ('pending', 'active') AND end_time <= $1)
           OR (status = 'pending' AND admin_approval = 'approved' AND start_time <= $1)
        ORDER BY end_time
        LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Auction
	for rows.Next() {
		var a model.Auction
		if err := rows.Scan(
			&a.ID, &a.MerchantID, &a.ProductID, &a.StartTime, &a.EndTime, &a.StartingPrice,
			&a.ReservedPrice, &a.BidIncrement, &a.TotalQuantity, &a.RemainingQuantity,
			&a.Status, &a.AdminApproval, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *auctionRepository) UpdateStatus(ctx context.Context, id int64, status model.AuctionStatus) error {
	_, err := r.storage.pool.Exec(ctx, `UPDATE auctions SET status=$2, updated_at=NOW() WHERE id=$1`, id, status)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
