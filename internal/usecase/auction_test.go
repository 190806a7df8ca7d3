package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/gebeyahq/marketadmin/internal/domain/errors"
	"github.com/gebeyahq/marketadmin/internal/domain/model"
	"github.com/gebeyahq/marketadmin/internal/test"
)

func validAuction() AuctionRequest {
	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	return AuctionRequest{
		ProductID:     5,
		StartTime:     start,
		EndTime:       start.Add(48 * time.Hour),
		StartingPrice: 100,
		ReservedPrice: 250,
		BidIncrement:  10,
		TotalQuantity: 3,
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestAuctionSubmitInitializesPendingState(t *testing.T) {
	uc := NewAuctionUseCase(&test.AuctionRepositoryStub{}, NewRoleGate(), testLogger())

	auction, err := uc.Submit(context.Background(), merchantIdentity, validAuction())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auction.Status != model.AuctionStatusPending || auction.AdminApproval != model.AuctionApprovalPending {
		t.Fatalf("unexpected initial state %+v", auction)
	}
	if auction.RemainingQuantity != auction.TotalQuantity {
		t.Fatalf("remaining quantity not initialized: %+v", auction)
	}
	if auction.MerchantID != merchantIdentity.AdminID {
		t.Fatalf("merchant not taken from identity: %+v", auction)
	}
}

func TestAuctionSubmitValidation(t *testing.T) {
	uc := NewAuctionUseCase(&test.AuctionRepositoryStub{
		CreateFn: func(context.Context, *model.Auction) (*model.Auction, error) {
			t.Fatal("create should not be called for invalid input")
			return nil, nil
		},
	}, NewRoleGate(), testLogger())

	cases := []struct {
		name   string
		mutate func(*AuctionRequest)
	}{
		{"missing product", func(r *AuctionRequest) { r.ProductID = 0 }},
		{"free start", func(r *AuctionRequest) { r.StartingPrice = 0 }},
		{"zero increment", func(r *AuctionRequest) { r.BidIncrement = 0 }},
		{"reserve below start", func(r *AuctionRequest) { r.ReservedPrice = 50 }},
		{"no quantity", func(r *AuctionRequest) { r.TotalQuantity = 0 }},
		{"inverted window", func(r *AuctionRequest) { r.EndTime = r.StartTime.Add(-time.Hour) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validAuction()
			tc.mutate(&req)
			if _, err := uc.Submit(context.Background(), merchantIdentity, req); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuctionApproveInsideWindowActivates(t *testing.T) {
	req := validAuction()
	repo := &test.AuctionRepositoryStub{Auction: &model.Auction{
		ID:            9,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        model.AuctionStatusPending,
		AdminApproval: model.AuctionApprovalPending,
	}}
	uc := NewAuctionUseCase(repo, NewRoleGate(), testLogger())
	uc.now = fixedClock(req.StartTime.Add(time.Hour))

	auction, err := uc.Approve(context.Background(), adminIdentity, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auction.Status != model.AuctionStatusActive || auction.AdminApproval != model.AuctionApprovalApproved {
		t.Fatalf("unexpected state %+v", auction)
	}
}

func TestAuctionApproveBeforeWindowStaysPending(t *testing.T) {
	req := validAuction()
	repo := &test.AuctionRepositoryStub{Auction: &model.Auction{
		ID:            9,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        model.AuctionStatusPending,
		AdminApproval: model.AuctionApprovalPending,
	}}
	uc := NewAuctionUseCase(repo, NewRoleGate(), testLogger())
	uc.now = fixedClock(req.StartTime.Add(-time.Hour))

	auction, err := uc.Approve(context.Background(), adminIdentity, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auction.Status != model.AuctionStatusPending {
		t.Fatalf("auction must not run before its window: %+v", auction)
	}
}

func TestAuctionApproveAfterWindowEnds(t *testing.T) {
	req := validAuction()
	repo := &test.AuctionRepositoryStub{Auction: &model.Auction{
		ID:            9,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        model.AuctionStatusPending,
		AdminApproval: model.AuctionApprovalPending,
	}}
	uc := NewAuctionUseCase(repo, NewRoleGate(), testLogger())
	uc.now = fixedClock(req.EndTime.Add(time.Hour))

	auction, err := uc.Approve(context.Background(), adminIdentity, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auction.Status != model.AuctionStatusEnded {
		t.Fatalf("late approval must land on ended: %+v", auction)
	}
}

func TestAuctionRejectCancels(t *testing.T) {
	req := validAuction()
	repo := &test.AuctionRepositoryStub{Auction: &model.Auction{
		ID:            9,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        model.AuctionStatusPending,
		AdminApproval: model.AuctionApprovalPending,
	}}
	uc := NewAuctionUseCase(repo, NewRoleGate(), testLogger())

	auction, err := uc.Reject(context.Background(), adminIdentity, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auction.Status != model.AuctionStatusCancelled || auction.AdminApproval != model.AuctionApprovalRejected {
		t.Fatalf("unexpected state %+v", auction)
	}
}

func TestAuctionDecisionConflict(t *testing.T) {
	req := validAuction()
	repo := &test.AuctionRepositoryStub{Auction: &model.Auction{
		ID:            9,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        model.AuctionStatusCancelled,
		AdminApproval: model.AuctionApprovalRejected,
	}}
	uc := NewAuctionUseCase(repo, NewRoleGate(), testLogger())

	if _, err := uc.Reject(context.Background(), adminIdentity, 9); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuctionModerationRequiresAdmin(t *testing.T) {
	uc := NewAuctionUseCase(&test.AuctionRepositoryStub{}, NewRoleGate(), testLogger())

	if _, err := uc.Approve(context.Background(), merchantIdentity, 9); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := uc.Reject(context.Background(), nil, 9); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestResolveAuctionStatusPersistsOnlyMoves(t *testing.T) {
	req := validAuction()
	repo := &test.AuctionRepositoryStub{}
	uc := NewAuctionUseCase(repo, NewRoleGate(), testLogger())
	uc.now = fixedClock(req.EndTime.Add(time.Minute))

	running := model.Auction{ID: 1, StartTime: req.StartTime, EndTime: req.EndTime, Status: model.AuctionStatusActive, AdminApproval: model.AuctionApprovalApproved}
	if err := uc.ResolveAuctionStatus(context.Background(), running); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.StatusCalls) != 1 || repo.StatusCalls[0].Status != model.AuctionStatusEnded {
		t.Fatalf("expected transition to ended, got %+v", repo.StatusCalls)
	}

	settled := model.Auction{ID: 2, StartTime: req.StartTime, EndTime: req.EndTime, Status: model.AuctionStatusEnded, AdminApproval: model.AuctionApprovalApproved}
	if err := uc.ResolveAuctionStatus(context.Background(), settled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.StatusCalls) != 1 {
		t.Fatalf("settled auction must not be rewritten")
	}
}

func TestAuctionsForResolutionHonorsLimit(t *testing.T) {
	repo := &test.AuctionRepositoryStub{Lagged: make([]model.Auction, 5)}
	uc := NewAuctionUseCase(repo, NewRoleGate(), testLogger())

	batch, err := uc.AuctionsForResolution(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("expected 3 auctions, got %d", len(batch))
	}
}
