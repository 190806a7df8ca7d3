package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gebeyahq/marketadmin/internal/domain/model"
)

// ConsoleFacade exposes the subset of application functionality required by the sweeper.
type ConsoleFacade interface {
	AuctionsForResolution(ctx context.Context, limit int) ([]model.Auction, error)
	ResolveAuctionStatus(ctx context.Context, auction model.Auction) error
}

// AuctionSweeper periodically reconciles stored auction statuses with their
// time windows, fanning the backlog out over a worker pool.
type AuctionSweeper struct {
	facade        ConsoleFacade
	sweepInterval time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs   chan model.Auction
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewAuctionSweeper constructs the sweeper worker pool.
func NewAuctionSweeper(facade ConsoleFacade, sweepInterval time.Duration, batchSize, workers int, logger *slog.Logger) *AuctionSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &AuctionSweeper{
		facade:        facade,
		sweepInterval: sweepInterval,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan model.Auction, batchSize*workers),
	}
}

// Start launches background sweeping.
func (s *AuctionSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *AuctionSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *AuctionSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *AuctionSweeper) fetchAndDispatch(ctx context.Context) {
	auctions, err := s.facade.AuctionsForResolution(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("fetch auctions for resolution failed", slog.String("error", err.Error()))
		return
	}
	for _, auction := range auctions {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- auction:
		}
	}
}

func (s *AuctionSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case auction, ok := <-s.jobs:
			if !ok {
				return
			}
			if err := s.facade.ResolveAuctionStatus(ctx, auction); err != nil {
				s.logger.Error("resolve auction status failed",
					slog.Int64("auction_id", auction.ID),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
