package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"incrementum/internal/feature/history/domain/entity"
	"incrementum/internal/shared/apperr"
)

const (
	// hourlyCoverage is how far back the hourly series is expected to reach.
	hourlyCoverage = 730 * 24 * time.Hour // 2 years
	// hourlyMaxStep is the largest tolerated jump between hourly rows before
	// the span counts as a gap. Wide enough to absorb weekends and holidays.
	hourlyMaxStep = 7 * 24 * time.Hour

	// dailyCoverage is how far back the non-hourly series is expected to reach.
	dailyCoverage = 30 * 24 * time.Hour
	// dailyMaxStep is the largest tolerated jump between non-hourly rows.
	dailyMaxStep = 24 * time.Hour

	// DefaultBlacklistExpiration is how long a blacklisted gap stays
	// suppressed before workers may retry it.
	DefaultBlacklistExpiration = 24 * time.Hour
)

// BarTimeReader lists the timestamps of one symbol's series, ascending.
type BarTimeReader interface {
	ListTimes(ctx context.Context, symbol string, isHourly bool) ([]time.Time, error)
}

// StockChecker reports whether a symbol exists in the stock table.
type StockChecker interface {
	SymbolExists(ctx context.Context, symbol string) (bool, error)
}

// BlacklistRepository abstracts the persistence of gap suppressions.
type BlacklistRepository interface {
	Add(ctx context.Context, e *entity.BlacklistEntry) error
	List(ctx context.Context, symbol string) ([]entity.BlacklistEntry, error)
	Clear(ctx context.Context, symbol string) (int64, error)
}

// GapDetector finds spans of missing data in a symbol's history so ingestion
// workers know what to backfill. Gaps that were blacklisted recently (e.g.
// spans the upstream provider simply has no data for) are suppressed until
// the blacklist entry expires.
type GapDetector struct {
	times      BarTimeReader
	stocks     StockChecker
	blacklist  BlacklistRepository
	expiration time.Duration
	nowFn      func() time.Time
}

// NewGapDetector creates a GapDetector. A non-positive expiration falls back
// to DefaultBlacklistExpiration.
func NewGapDetector(times BarTimeReader, stocks StockChecker, blacklist BlacklistRepository, expiration time.Duration) *GapDetector {
	if expiration <= 0 {
		expiration = DefaultBlacklistExpiration
	}
	return &GapDetector{
		times:      times,
		stocks:     stocks,
		blacklist:  blacklist,
		expiration: expiration,
		nowFn:      time.Now,
	}
}

// CheckForGaps returns the unsuppressed gaps in both granularities of a
// symbol's history. An unknown symbol yields no gaps: there is nothing to
// backfill for a stock the store has never heard of.
func (g *GapDetector) CheckForGaps(ctx context.Context, symbol string) ([]entity.Gap, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperr.Validationf("symbol must not be empty")
	}

	exists, err := g.stocks.SymbolExists(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if !exists {
		slog.Warn("gap check for unknown symbol", "symbol", symbol)
		return nil, nil
	}

	var gaps []entity.Gap

	hourly, err := g.checkSeries(ctx, symbol, true, hourlyCoverage, hourlyMaxStep)
	if err != nil {
		return nil, err
	}
	gaps = append(gaps, hourly...)

	daily, err := g.checkSeries(ctx, symbol, false, dailyCoverage, dailyMaxStep)
	if err != nil {
		return nil, err
	}
	gaps = append(gaps, daily...)

	gaps, err = g.filterBlacklisted(ctx, symbol, gaps)
	if err != nil {
		return nil, err
	}

	slog.Info("gap check complete", "symbol", symbol, "gaps", len(gaps))
	return gaps, nil
}

// checkSeries finds gaps in one granularity: an empty series is one gap over
// the whole expected coverage window; otherwise any step larger than maxStep,
// a late first row, or a stale last row each produce a gap.
func (g *GapDetector) checkSeries(ctx context.Context, symbol string, isHourly bool, coverage, maxStep time.Duration) ([]entity.Gap, error) {
	times, err := g.times.ListTimes(ctx, symbol, isHourly)
	if err != nil {
		return nil, err
	}

	now := g.nowFn()
	var gaps []entity.Gap

	if len(times) == 0 {
		gaps = append(gaps, entity.Gap{Start: now.Add(-coverage), End: now, IsHourly: isHourly})
		return gaps, nil
	}

	for i := 0; i < len(times)-1; i++ {
		if times[i+1].Sub(times[i]) > maxStep {
			gaps = append(gaps, entity.Gap{Start: times[i], End: times[i+1], IsHourly: isHourly})
		}
	}

	// Missing head: the series starts later than the coverage window.
	coverageStart := now.Add(-coverage)
	if times[0].After(coverageStart) {
		gaps = append(gaps, entity.Gap{Start: coverageStart, End: times[0], IsHourly: isHourly})
	}

	// Missing tail: the series has fallen behind.
	if times[len(times)-1].Before(now.Add(-maxStep)) {
		gaps = append(gaps, entity.Gap{Start: times[len(times)-1], End: now, IsHourly: isHourly})
	}

	return gaps, nil
}

// filterBlacklisted drops gaps whose start matches a blacklist entry added
// within the expiration window. Matching is second-granular, like the rows
// ingestion writes.
func (g *GapDetector) filterBlacklisted(ctx context.Context, symbol string, gaps []entity.Gap) ([]entity.Gap, error) {
	if len(gaps) == 0 {
		return gaps, nil
	}

	entries, err := g.blacklist.List(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return gaps, nil
	}

	cutoff := g.nowFn().Add(-g.expiration)
	active := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		if e.TimeAdded.Before(cutoff) {
			continue
		}
		active[e.Timestamp.Truncate(time.Second).Unix()] = struct{}{}
	}

	filtered := gaps[:0]
	for _, gap := range gaps {
		if _, ok := active[gap.Start.Truncate(time.Second).Unix()]; ok {
			slog.Info("gap suppressed by blacklist", "symbol", symbol, "start", gap.Start)
			continue
		}
		filtered = append(filtered, gap)
	}
	return filtered, nil
}

// Blacklist records a gap as unfillable so workers stop retrying it until
// the entry expires.
func (g *GapDetector) Blacklist(ctx context.Context, symbol string, ts time.Time, isHourly bool) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return apperr.Validationf("symbol must not be empty")
	}
	return g.blacklist.Add(ctx, &entity.BlacklistEntry{
		StockSymbol: symbol,
		Timestamp:   ts,
		TimeAdded:   g.nowFn(),
		IsHourly:    isHourly,
	})
}

// ListBlacklist returns blacklist entries, optionally filtered by symbol.
func (g *GapDetector) ListBlacklist(ctx context.Context, symbol string) ([]entity.BlacklistEntry, error) {
	return g.blacklist.List(ctx, strings.ToUpper(strings.TrimSpace(symbol)))
}

// ClearBlacklist removes blacklist entries, optionally filtered by symbol,
// and returns the number removed.
func (g *GapDetector) ClearBlacklist(ctx context.Context, symbol string) (int64, error) {
	return g.blacklist.Clear(ctx, strings.ToUpper(strings.TrimSpace(symbol)))
}
