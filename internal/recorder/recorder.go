package recorder

import (
	"time"

	"HSScanner/internal/model"
)

// ScanRun holds the outcome of one full scan.
type ScanRun struct {
	RunID     string
	StartedAt time.Time
	Tickers   int // instruments requested
	Scanned   int // instruments evaluated
	Skipped   int // instruments skipped for missing or short data
	Signals   []model.Signal
	Duration  time.Duration
}

// StoredSignal is a signal read back from history with its run metadata.
type StoredSignal struct {
	RunID     string
	Timestamp time.Time
	Signal    model.Signal
}

// Recorder persists scan history for later analysis.
type Recorder interface {
	RecordScan(run *ScanRun) error
	RecentSignals(limit int) ([]StoredSignal, error)
	Close() error
}
