package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"HSScanner/internal/notifier"
	"HSScanner/internal/recorder"
	"HSScanner/internal/report"
	"HSScanner/internal/scanner"
)

// ErrScanRunning is returned when a scan is requested while one is active.
var ErrScanRunning = errors.New("scan already running")

// Job is one complete scan: load universe, scan, write the report, then
// record, publish and notify.
type Job struct {
	Scanner    *scanner.Scanner
	Universe   func() ([]string, error)
	OutputFile string
	Store      *report.Store
	Recorder   recorder.Recorder
	Notifier   notifier.Notifier
	Logger     zerolog.Logger

	running sync.Mutex
}

// Run executes the job. Universe, scan and report write failures are
// returned; recording and notification failures are only logged.
func (j *Job) Run(ctx context.Context) (*scanner.Summary, error) {
	if !j.running.TryLock() {
		return nil, ErrScanRunning
	}
	defer j.running.Unlock()
	return j.run(ctx)
}

// Start claims the job and runs it in the background, passing the result to
// done. It reports false without running when a scan is already active.
func (j *Job) Start(ctx context.Context, done func(*scanner.Summary, error)) bool {
	if !j.running.TryLock() {
		return false
	}
	go func() {
		defer j.running.Unlock()
		done(j.run(ctx))
	}()
	return true
}

func (j *Job) run(ctx context.Context) (*scanner.Summary, error) {
	tickers, err := j.Universe()
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}

	sum, err := j.Scanner.Scan(ctx, tickers)
	if err != nil {
		return nil, err
	}

	if err := report.Write(j.OutputFile, sum.Report); err != nil {
		return nil, err
	}
	j.Logger.Info().Str("path", j.OutputFile).Int("signals", len(sum.Report.Signals)).Msg("report written")

	if j.Store != nil {
		j.Store.Set(sum.Report)
	}

	if err := j.Recorder.RecordScan(&recorder.ScanRun{
		RunID:     sum.RunID,
		StartedAt: sum.StartedAt,
		Tickers:   len(tickers),
		Scanned:   sum.Scanned,
		Skipped:   sum.Skipped,
		Signals:   sum.Report.Signals,
		Duration:  sum.Duration,
	}); err != nil {
		j.Logger.Error().Err(err).Str("run_id", sum.RunID).Msg("record scan")
	}

	if err := j.Notifier.Notify(ctx, notifier.FormatScanReport(sum.Report)); err != nil {
		j.Logger.Error().Err(err).Msg("send notification")
	}
	return sum, nil
}
