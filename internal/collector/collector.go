package collector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"HSScanner/internal/model"
)

// MockFetcher returns fixed bars per symbol for development and testing.
type MockFetcher struct {
	Bars map[string][]model.OHLCV
	Errs map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, since time.Time) ([]model.OHLCV, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	bars, ok := m.Bars[symbol]
	if !ok {
		return nil, ErrNoData
	}
	out := make([]model.OHLCV, 0, len(bars))
	for _, b := range bars {
		if !b.Time.Before(since) {
			out = append(out, b)
		}
	}
	return out, nil
}

// Collector fetches and cleans one instrument's daily history.
type Collector struct {
	Fetcher     Fetcher
	HistoryDays int
	MinSessions int
	Retries     int
	RetryDelay  time.Duration
	Now         func() time.Time
	Logger      zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, historyDays, minSessions, retries int, logger zerolog.Logger) *Collector {
	return &Collector{
		Fetcher:     fetcher,
		HistoryDays: historyDays,
		MinSessions: minSessions,
		Retries:     retries,
		RetryDelay:  time.Second,
		Now:         time.Now,
		Logger:      logger,
	}
}

// Collect fetches the last HistoryDays of sessions for ticker and returns
// them cleaned. ErrNoData and ErrInsufficientHistory (and any FetchError)
// mean the instrument should be skipped.
func (c *Collector) Collect(ctx context.Context, ticker string) (*model.PriceSeries, error) {
	now := c.Now()
	since := now.AddDate(0, 0, -c.HistoryDays)

	var bars []model.OHLCV
	err := c.withRetry(ctx, ticker, func() error {
		var fetchErr error
		bars, fetchErr = c.Fetcher.FetchDailyBars(ctx, ticker, since)
		return fetchErr
	})
	if err != nil {
		if errors.Is(err, ErrNoData) || ctx.Err() != nil {
			return nil, err
		}
		return nil, &FetchError{Symbol: ticker, Source: c.Fetcher.Name(), Err: err}
	}

	bars = CleanBars(bars)
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	if len(bars) < c.MinSessions {
		return nil, fmt.Errorf("%s: %d sessions, need %d: %w", ticker, len(bars), c.MinSessions, ErrInsufficientHistory)
	}

	return &model.PriceSeries{
		Symbol:    ticker,
		DailyBars: bars,
		FetchedAt: now,
	}, nil
}

// withRetry retries fn with exponential backoff. ErrNoData is final.
func (c *Collector) withRetry(ctx context.Context, ticker string, fn func() error) error {
	var lastErr error
	for i := 0; i <= c.Retries; i++ {
		lastErr = fn()
		if lastErr == nil || errors.Is(lastErr, ErrNoData) {
			return lastErr
		}
		if i == c.Retries {
			break
		}
		backoff := c.RetryDelay * time.Duration(1<<uint(i))
		c.Logger.Warn().Err(lastErr).
			Str("ticker", ticker).
			Int("attempt", i+1).
			Dur("backoff", backoff).
			Msg("fetch failed, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return lastErr
}

// CleanBars drops partial or invalid sessions, removes duplicate dates
// (keeping the last) and sorts ascending by time.
func CleanBars(bars []model.OHLCV) []model.OHLCV {
	byDay := make(map[string]int, len(bars))
	out := make([]model.OHLCV, 0, len(bars))
	for _, b := range bars {
		if !validBar(b) {
			continue
		}
		day := b.Time.UTC().Format(model.DateFormat)
		if i, ok := byDay[day]; ok {
			out[i] = b
			continue
		}
		byDay[day] = len(out)
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

func validBar(b model.OHLCV) bool {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	if b.Time.IsZero() || b.Volume < 0 {
		return false
	}
	return b.Open > 0 && b.High > 0 && b.Low > 0 && b.Close > 0
}
