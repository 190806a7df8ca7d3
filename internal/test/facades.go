package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gebeyahq/marketadmin/internal/domain/model"
)

// IdentityFacadeStub simulates authentication for HTTP layer tests.
type IdentityFacadeStub struct {
	LoginFn   func(context.Context, string, string) (string, error)
	ResolveFn func(context.Context, string) (*model.Identity, error)
}

// Login returns a token for successful authentication scenarios.
func (s IdentityFacadeStub) Login(ctx context.Context, login, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, login, password)
	}
	return "token", nil
}

// ResolveIdentity returns an admin identity unless overridden.
func (s IdentityFacadeStub) ResolveIdentity(ctx context.Context, token string) (*model.Identity, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	return &model.Identity{AdminID: 1, Role: model.RoleAdmin}, nil
}

// HealthFacadeStub reports configurable storage health.
type HealthFacadeStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthFacadeStub) HealthCheck(context.Context) error {
	return s.Err
}

// SweeperResolveCall records a ResolveAuctionStatus invocation.
type SweeperResolveCall struct {
	AuctionID int64
	Status    model.AuctionStatus
}

// SweeperFacadeStub mimics sweeper interactions with the console facade.
type SweeperFacadeStub struct {
	Batches        [][]model.Auction
	BatchesFn      func(context.Context, int) ([]model.Auction, error)
	ResolveFn      func(context.Context, model.Auction) error
	Resolved       []SweeperResolveCall
	mu             sync.Mutex
	batchCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *SweeperFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *SweeperFacadeStub) Unlock() { s.mu.Unlock() }

// AuctionsForResolution returns batches from configured queue.
func (s *SweeperFacadeStub) AuctionsForResolution(ctx context.Context, limit int) ([]model.Auction, error) {
	if s.BatchesFn != nil {
		return s.BatchesFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ResolveAuctionStatus records resolution requests.
func (s *SweeperFacadeStub) ResolveAuctionStatus(ctx context.Context, auction model.Auction) error {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, auction)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Resolved = append(s.Resolved, SweeperResolveCall{AuctionID: auction.ID, Status: auction.Status})
	return nil
}
