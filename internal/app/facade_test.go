package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gebeyahq/marketadmin/internal/domain/model"
	testhelpers "github.com/gebeyahq/marketadmin/internal/test"
	"github.com/gebeyahq/marketadmin/internal/usecase"
)

type facadeFixture struct {
	facade   *ConsoleFacade
	admins   *testhelpers.AdminRepositoryStub
	ads      *testhelpers.AdRepositoryStub
	orders   *testhelpers.OrderRepositoryStub
	products *testhelpers.ProductRepositoryStub
	auctions *testhelpers.AuctionRepositoryStub
	gateway  *testhelpers.GatewayStub
}

func newFacade() facadeFixture {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	gate := usecase.NewRoleGate()

	admins := testhelpers.NewAdminRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 1, nil }}
	identityUC := usecase.NewIdentityUseCase(admins, testhelpers.HasherStub{}, strategy)

	ads := &testhelpers.AdRepositoryStub{}
	orders := &testhelpers.OrderRepositoryStub{}
	products := &testhelpers.ProductRepositoryStub{}
	auctions := &testhelpers.AuctionRepositoryStub{}
	gateway := &testhelpers.GatewayStub{}

	facade := NewConsoleFacade(
		identityUC,
		usecase.NewAdUseCase(ads, gateway, gate, logger),
		usecase.NewOrderUseCase(orders, products, gateway, gate, logger),
		usecase.NewAuctionUseCase(auctions, gate, logger),
		testhelpers.HealthFacadeStub{},
	)
	return facadeFixture{facade: facade, admins: admins, ads: ads, orders: orders, products: products, auctions: auctions, gateway: gateway}
}

func TestConsoleFacadeIdentity(t *testing.T) {
	f := newFacade()
	if err := f.facade.EnsureSuperAdmin(context.Background(), "root", "secret"); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	token, err := f.facade.Login(context.Background(), "root", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	identity, err := f.facade.ResolveIdentity(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if identity.Role != model.RoleSuperAdmin {
		t.Fatalf("unexpected role %s", identity.Role)
	}
}

func TestConsoleFacadePlacements(t *testing.T) {
	f := newFacade()
	admin := &model.Identity{AdminID: 1, Role: model.RoleAdmin}

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	result, err := f.facade.SubmitPlacement(context.Background(), admin, usecase.PlacementRequest{
		ProductID:     5,
		ProductName:   "Ceramic mug",
		MerchantID:    10,
		MerchantName:  "Abebe",
		MerchantEmail: "abebe@example.com",
		Price:         150,
		Location:      model.Point{Longitude: 38.7578, Latitude: 9.0054},
		StartsAt:      start,
		EndsAt:        start.Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.CheckoutURL == "" {
		t.Fatalf("expected checkout url")
	}

	listing, err := f.facade.ListPlacements(context.Background(), usecase.AdQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if listing.CurrentPage != 1 {
		t.Fatalf("unexpected page %d", listing.CurrentPage)
	}
}

func TestConsoleFacadeOrders(t *testing.T) {
	f := newFacade()
	admin := &model.Identity{AdminID: 1, Role: model.RoleAdmin}
	f.orders.Order = &model.Order{
		ID:            41,
		Payout:        model.PayoutAccount{AccountName: "Abebe Trading", AccountNumber: "1000123456", BankCode: "946"},
		Items:         []model.OrderItem{{ProductID: 5, Quantity: 2}},
		TotalPrice:    540,
		PaymentStatus: model.OrderPaymentPaid,
		TxRef:         "order-tx-41",
	}

	order, err := f.facade.MarkOrderPaidToMerchant(context.Background(), admin, 41)
	if err != nil {
		t.Fatalf("payout failed: %v", err)
	}
	if order.PaymentStatus != model.OrderPaymentPaidToMerchant {
		t.Fatalf("unexpected status %s", order.PaymentStatus)
	}

	refund, err := f.facade.RefundOrder(context.Background(), admin, usecase.RefundOrderRequest{TxRef: "order-tx-41", Reason: "damaged"})
	if err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if refund.Order.PaymentStatus != model.OrderPaymentRefunded {
		t.Fatalf("unexpected status %s", refund.Order.PaymentStatus)
	}
	if f.products.Restored[5] != 2 {
		t.Fatalf("stock not restored: %+v", f.products.Restored)
	}
}

func TestConsoleFacadeAuctions(t *testing.T) {
	f := newFacade()
	merchant := &model.Identity{AdminID: 10, Role: model.RoleMerchant}
	admin := &model.Identity{AdminID: 1, Role: model.RoleAdmin}

	start := time.Now().Add(-time.Hour)
	auction, err := f.facade.SubmitAuction(context.Background(), merchant, usecase.AuctionRequest{
		ProductID:     5,
		StartTime:     start,
		EndTime:       start.Add(48 * time.Hour),
		StartingPrice: 100,
		ReservedPrice: 200,
		BidIncrement:  10,
		TotalQuantity: 2,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	f.auctions.Auction = auction
	approved, err := f.facade.ApproveAuction(context.Background(), admin, auction.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != model.AuctionStatusActive {
		t.Fatalf("running auction must go active, got %s", approved.Status)
	}

	if _, err := f.facade.AuctionsForResolution(context.Background(), 5); err != nil {
		t.Fatalf("resolution batch failed: %v", err)
	}
	if err := f.facade.ResolveAuctionStatus(context.Background(), *approved); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
}

func TestConsoleFacadeHealth(t *testing.T) {
	f := newFacade()
	if err := f.facade.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected health error: %v", err)
	}
}
