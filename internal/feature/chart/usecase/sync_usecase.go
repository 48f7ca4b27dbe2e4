// Package usecase implements the market-data synchronization logic for the
// chart feature: deciding between serving the cached series, topping it up
// with the most recent upstream window, or backfilling the full history.
package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"kis_backend/internal/feature/chart/domain/entity"
)

// SyncMode selects how much of the series Sync maintains.
type SyncMode int

const (
	// WindowOnly performs a single bounded upstream call and touches no storage.
	WindowOnly SyncMode = iota
	// FullyCached consults the bar store and keeps the full series current.
	FullyCached
)

// BarRepository abstracts durable bar storage.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type BarRepository interface {
	// FindAll returns every stored bar for (symbol, interval), ascending by date.
	FindAll(ctx context.Context, symbol string, interval entity.Interval) ([]entity.Bar, error)
	// LatestDate returns the most recent stored date, or "" when the series is empty.
	LatestDate(ctx context.Context, symbol string, interval entity.Interval) (string, error)
	// UpsertBatch inserts bars, replacing stored values on (symbol, interval, date) collision.
	UpsertBatch(ctx context.Context, bars []entity.Bar) error
}

// MarketRepository abstracts the upstream chart endpoint.
type MarketRepository interface {
	// GetChart returns at most entity.WindowSize bars for the window ending at
	// end (a zero end means the most recent window), in upstream order
	// (descending by date). Symbol and interval fields are set by the caller.
	GetChart(ctx context.Context, token, symbol string, interval entity.Interval, end time.Time) ([]entity.Bar, error)
}

// CredentialProvider supplies a valid upstream bearer token.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// SyncConfig bounds the backfill walk. The iteration caps limit how far back
// the walk reaches (each call covers a fixed count of bars, not a calendar
// span) and are deliberately configurable rather than a retention policy.
type SyncConfig struct {
	MaxIterations map[entity.Interval]int
	FetchDelay    time.Duration // pause between backfill calls, upstream rate limit
}

// DefaultSyncConfig covers roughly three years of daily bars
// (40 windows x 30 trading days), and a bit more for weekly and monthly.
func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		MaxIterations: map[entity.Interval]int{
			entity.IntervalDay:   40,
			entity.IntervalWeek:  5,
			entity.IntervalMonth: 2,
		},
		FetchDelay: 200 * time.Millisecond,
	}
}

// SyncUsecase orchestrates cache checks, freshness checks, top-ups and
// backfills for one (symbol, interval) series per call. Concurrent calls for
// the same series are legal; the store's upsert-by-key semantics make the
// final persisted state consistent regardless of ordering.
type SyncUsecase struct {
	bars   BarRepository
	market MarketRepository
	creds  CredentialProvider
	cfg    SyncConfig
	now    func() time.Time // injectable for tests
}

// NewSyncUsecase creates a SyncUsecase. Zero-value config fields fall back to
// DefaultSyncConfig.
func NewSyncUsecase(bars BarRepository, market MarketRepository, creds CredentialProvider, cfg SyncConfig) *SyncUsecase {
	def := DefaultSyncConfig()
	if cfg.MaxIterations == nil {
		cfg.MaxIterations = def.MaxIterations
	}
	if cfg.FetchDelay <= 0 {
		cfg.FetchDelay = def.FetchDelay
	}
	return &SyncUsecase{bars: bars, market: market, creds: creds, cfg: cfg, now: time.Now}
}

// Sync returns the bar series for (symbol, interval), strictly ascending by
// date with no duplicate dates.
//
// WindowOnly fetches the single most recent upstream window and persists
// nothing; an empty upstream result is an empty series, not an error.
// FullyCached serves the stored series when its latest bar still covers the
// current open period, tops it up with one window when it lags, and walks the
// full history back when the store is empty.
func (u *SyncUsecase) Sync(ctx context.Context, symbol string, interval entity.Interval, mode SyncMode) ([]entity.Bar, error) {
	if mode == WindowOnly {
		return u.fetchWindow(ctx, symbol, interval)
	}

	cached, err := u.bars.FindAll(ctx, symbol, interval)
	if err != nil {
		return nil, err
	}
	if len(cached) == 0 {
		return u.backfill(ctx, symbol, interval)
	}

	latest, err := u.bars.LatestDate(ctx, symbol, interval)
	if err != nil {
		return nil, err
	}
	if u.seriesCurrent(latest, interval) {
		return cached, nil
	}
	return u.topUp(ctx, symbol, interval, cached)
}

// fetchWindow retrieves the latest upstream window without consulting storage.
func (u *SyncUsecase) fetchWindow(ctx context.Context, symbol string, interval entity.Interval) ([]entity.Bar, error) {
	token, err := u.creds.Token(ctx)
	if err != nil {
		return nil, err
	}
	page, err := u.market.GetChart(ctx, token, symbol, interval, time.Time{})
	if err != nil {
		return nil, err
	}
	setKeys(page, symbol, interval)
	sortByDate(page)
	return page, nil
}

// topUp extends a stale cached series with the most recent upstream window.
// Freshly fetched bars overwrite cached bars on date collision, since the
// upstream restates adjusted prices. Only the fetched subset is persisted.
func (u *SyncUsecase) topUp(ctx context.Context, symbol string, interval entity.Interval, cached []entity.Bar) ([]entity.Bar, error) {
	token, err := u.creds.Token(ctx)
	if err != nil {
		return nil, err
	}
	fetched, err := u.market.GetChart(ctx, token, symbol, interval, time.Time{})
	if err != nil {
		return nil, err
	}
	if len(fetched) == 0 {
		return cached, nil
	}
	setKeys(fetched, symbol, interval)
	if err := u.bars.UpsertBatch(ctx, fetched); err != nil {
		return nil, err
	}

	merged := make(map[string]entity.Bar, len(cached)+len(fetched))
	for _, b := range cached {
		merged[b.Date] = b
	}
	for _, b := range fetched {
		merged[b.Date] = b
	}
	return sortedValues(merged), nil
}

// backfill walks the upstream history backward window by window until the
// upstream returns no more data, a short page signals the listing date, or
// the iteration cap is hit. Nothing is persisted unless every call succeeds,
// so a failed walk never leaves a partial series behind.
func (u *SyncUsecase) backfill(ctx context.Context, symbol string, interval entity.Interval) ([]entity.Bar, error) {
	token, err := u.creds.Token(ctx)
	if err != nil {
		return nil, err
	}

	acc := make(map[string]entity.Bar)
	maxIter := u.cfg.MaxIterations[interval]
	var cursor time.Time // zero: start from the most recent window

	for i := 0; i < maxIter; i++ {
		page, err := u.market.GetChart(ctx, token, symbol, interval, cursor)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break // reached the symbol's listing date
		}

		oldest := page[0].Date
		for _, b := range page {
			b.Symbol = symbol
			b.Interval = interval
			acc[b.Date] = b // later fetch wins on duplicate dates
			if b.Date < oldest {
				oldest = b.Date
			}
		}

		if len(page) < entity.WindowSize {
			break // short page: no earlier data upstream
		}

		day, err := time.Parse("2006-01-02", oldest)
		if err != nil {
			return nil, fmt.Errorf("parse oldest date %q: %w", oldest, err)
		}
		cursor = day.AddDate(0, 0, -1)

		if i+1 < maxIter {
			if err := sleepContext(ctx, u.cfg.FetchDelay); err != nil {
				return nil, err
			}
		}
	}

	out := sortedValues(acc)
	if len(out) == 0 {
		return []entity.Bar{}, nil
	}
	if err := u.bars.UpsertBatch(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func setKeys(bars []entity.Bar, symbol string, interval entity.Interval) {
	for i := range bars {
		bars[i].Symbol = symbol
		bars[i].Interval = interval
	}
}

func sortByDate(bars []entity.Bar) {
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })
}

func sortedValues(m map[string]entity.Bar) []entity.Bar {
	out := make([]entity.Bar, 0, len(m))
	for _, b := range m {
		out = append(out, b)
	}
	sortByDate(out)
	return out
}

// sleepContext pauses for d but aborts early when ctx is cancelled, so an
// abandoned request does not keep a backfill walking the upstream.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
