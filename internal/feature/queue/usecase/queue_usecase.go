// Package usecase implements the in-memory work queues that allocate symbols
// to ingestion workers.
package usecase

import (
	"context"
	"log/slog"
	"sync"

	"incrementum/internal/shared/apperr"
	"incrementum/internal/shared/ratelimiter"
)

const (
	// DefaultBatchSize is how many symbols one worker takes per request when
	// it does not ask for a specific amount.
	DefaultBatchSize = 10
	// MaxBatchSize caps a single allocation so one worker cannot drain the
	// whole queue.
	MaxBatchSize = 100
)

// SymbolLister returns every known symbol, ascending. Satisfied by the stocks
// usecase.
type SymbolLister interface {
	ListSymbols(ctx context.Context) ([]string, error)
}

// Status describes how much work remains in both queues.
type Status struct {
	HistoryRemaining int `json:"history_remaining"`
	GapRemaining     int `json:"gap_remaining"`
}

// StockQueueService hands out batches of symbols to history-fetching and
// gap-detection workers. Each refresh loads the full symbol universe into
// both queues; workers drain them batch by batch, and no symbol is handed to
// two workers of the same kind within a round.
type StockQueueService struct {
	symbols SymbolLister
	limiter ratelimiter.RateLimiterInterface

	mu           sync.Mutex
	historyQueue []string
	gapQueue     []string
}

// NewStockQueueService creates a queue service. The limiter throttles
// refreshes so a misbehaving worker cannot rebuild the queues in a tight loop.
func NewStockQueueService(symbols SymbolLister, limiter ratelimiter.RateLimiterInterface) *StockQueueService {
	return &StockQueueService{symbols: symbols, limiter: limiter}
}

// Refresh rebuilds both queues from the current symbol universe, replacing
// whatever remained of the previous round.
func (s *StockQueueService) Refresh(ctx context.Context) (Status, error) {
	s.limiter.WaitIfNeeded()

	list, err := s.symbols.ListSymbols(ctx)
	if err != nil {
		return Status{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyQueue = append([]string(nil), list...)
	s.gapQueue = append([]string(nil), list...)
	slog.Info("stock queues refreshed", "symbols", len(list))
	return s.statusLocked(), nil
}

// NextHistoryBatch removes and returns up to n symbols from the history queue.
func (s *StockQueueService) NextHistoryBatch(n int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch, rest, err := takeBatch(s.historyQueue, n)
	if err != nil {
		return nil, err
	}
	s.historyQueue = rest
	return batch, nil
}

// NextGapBatch removes and returns up to n symbols from the gap queue.
func (s *StockQueueService) NextGapBatch(n int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch, rest, err := takeBatch(s.gapQueue, n)
	if err != nil {
		return nil, err
	}
	s.gapQueue = rest
	return batch, nil
}

// Status reports how many symbols remain in each queue.
func (s *StockQueueService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Reset empties both queues without refreshing them.
func (s *StockQueueService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyQueue = nil
	s.gapQueue = nil
	slog.Info("stock queues reset")
}

func (s *StockQueueService) statusLocked() Status {
	return Status{
		HistoryRemaining: len(s.historyQueue),
		GapRemaining:     len(s.gapQueue),
	}
}

func takeBatch(queue []string, n int) (batch, rest []string, err error) {
	if n < 0 {
		return nil, nil, apperr.Validationf("batch size must not be negative")
	}
	if n == 0 {
		n = DefaultBatchSize
	}
	if n > MaxBatchSize {
		n = MaxBatchSize
	}
	if n > len(queue) {
		n = len(queue)
	}
	return queue[:n], queue[n:], nil
}
