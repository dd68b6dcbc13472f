// Package scanner runs the per-instrument pipeline over a universe of
// tickers and assembles the report.
package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"HSScanner/internal/collector"
	"HSScanner/internal/logging"
	"HSScanner/internal/model"
	"HSScanner/internal/report"
	"HSScanner/internal/strategy"
)

// Outcome classifies what happened to one instrument.
type Outcome int

const (
	OutcomeSkipped   Outcome = iota // no or insufficient data
	OutcomeNoPattern                // nothing detected
	OutcomeNoSignal                 // patterns found, none recent and live
	OutcomeSignal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeNoPattern:
		return "no_pattern"
	case OutcomeNoSignal:
		return "no_signal"
	case OutcomeSignal:
		return "signal"
	default:
		return "unknown"
	}
}

// Result is the outcome for one ticker.
type Result struct {
	Ticker   string
	Outcome  Outcome
	Sessions int
	Patterns int
	Signal   *model.Signal
	Err      error
}

// Summary is the outcome of a full scan.
type Summary struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Results   []Result
	Scanned   int
	Skipped   int
	Report    *model.Report
}

// Scanner evaluates every ticker of a universe concurrently.
type Scanner struct {
	Collector *collector.Collector
	Params    model.Params
	Workers   int
	Now       func() time.Time
	Progress  Progress
	Logger    zerolog.Logger
}

// New creates a Scanner with a silent progress sink.
func New(c *collector.Collector, params model.Params, workers int, logger zerolog.Logger) *Scanner {
	return &Scanner{
		Collector: c,
		Params:    params,
		Workers:   workers,
		Now:       time.Now,
		Progress:  NopProgress{},
		Logger:    logger,
	}
}

// Run scans tickers and returns the report. Signals keep input ticker order.
func (s *Scanner) Run(ctx context.Context, tickers []string) (*model.Report, error) {
	sum, err := s.Scan(ctx, tickers)
	if err != nil {
		return nil, err
	}
	return sum.Report, nil
}

// Scan is Run with per-ticker results and run statistics.
func (s *Scanner) Scan(ctx context.Context, tickers []string) (*Summary, error) {
	logger := logging.WithOperation(s.Logger, "scan")
	started := s.Now()
	runID := uuid.NewString()

	logger.Info().Str("run_id", runID).Int("tickers", len(tickers)).Msg("scan started")
	s.Progress.Begin(len(tickers), started)

	workers := s.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(tickers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := s.scanOne(gctx, ticker, started)
			if res.Err != nil && !collector.IsSkippable(res.Err) {
				return res.Err
			}
			results[i] = res
			s.Progress.Step(res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn().Err(err).Str("run_id", runID).Msg("scan aborted")
		return nil, fmt.Errorf("scan: %w", err)
	}

	sum := &Summary{
		RunID:     runID,
		StartedAt: started,
		Results:   results,
	}
	var signals []model.Signal
	for _, r := range results {
		if r.Outcome == OutcomeSkipped {
			sum.Skipped++
			continue
		}
		sum.Scanned++
		if r.Signal != nil {
			signals = append(signals, *r.Signal)
		}
	}
	sum.Report = report.New(started, s.Params, signals)
	sum.Duration = s.Now().Sub(started)

	logger.Info().
		Str("run_id", runID).
		Int("scanned", sum.Scanned).
		Int("skipped", sum.Skipped).
		Int("signals", len(sum.Report.Signals)).
		Dur("duration", sum.Duration).
		Msg("scan finished")
	s.Progress.End(sum)
	return sum, nil
}

func (s *Scanner) scanOne(ctx context.Context, ticker string, now time.Time) Result {
	logger := logging.WithTicker(s.Logger, ticker)
	res := Result{Ticker: ticker}

	series, err := s.Collector.Collect(ctx, ticker)
	if err != nil {
		res.Outcome = OutcomeSkipped
		res.Err = err
		if collector.IsSkippable(err) {
			logger.Warn().Err(err).Msg("instrument skipped")
		}
		return res
	}
	res.Sessions = series.Len()

	patterns := strategy.Candidates(series.DailyBars, s.Params)
	res.Patterns = len(patterns)
	if len(patterns) == 0 {
		res.Outcome = OutcomeNoPattern
		logger.Debug().Int("sessions", res.Sessions).Msg("no pattern")
		return res
	}

	res.Signal = strategy.Select(ticker, patterns, series.DailyBars, s.Params, now)
	if res.Signal == nil {
		res.Outcome = OutcomeNoSignal
		logger.Debug().Int("patterns", res.Patterns).Msg("no active signal")
		return res
	}
	res.Outcome = OutcomeSignal
	logger.Info().
		Str("signal_type", string(res.Signal.SignalType)).
		Float64("entry_price", res.Signal.EntryPrice).
		Str("confidence", string(res.Signal.Confidence)).
		Str("break_date", res.Signal.BreakDate).
		Msg("signal")
	return res
}
