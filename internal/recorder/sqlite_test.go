package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HSScanner/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "db", "history.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r := openTestRecorder(t)

	older := &ScanRun{
		RunID:     uuid.NewString(),
		StartedAt: time.Date(2025, 6, 27, 16, 30, 0, 0, time.UTC),
		Tickers:   2,
		Scanned:   2,
		Signals: []model.Signal{
			{Ticker: "ENI.MI", Symbol: "ENI", SignalType: model.SignalSell, EntryPrice: 14.2, Confidence: model.ConfidenceMedium},
		},
		Duration: 1500 * time.Millisecond,
	}
	newer := &ScanRun{
		RunID:     uuid.NewString(),
		StartedAt: time.Date(2025, 6, 30, 16, 30, 0, 0, time.UTC),
		Tickers:   3,
		Scanned:   2,
		Skipped:   1,
		Signals: []model.Signal{
			{Ticker: "ISP.MI", Symbol: "ISP", SignalType: model.SignalBuy, EntryPrice: 4.1, StopLoss: 3.9565,
				TakeProfit: 4.469, Neckline: 4.05, Confidence: model.ConfidenceHigh,
				BreakDate: "2025-06-26", EntryDate: "2025-06-27"},
			{Ticker: "UCG.MI", Symbol: "UCG", SignalType: model.SignalSell, EntryPrice: 38},
		},
		Duration: time.Second,
	}
	require.NoError(t, r.RecordScan(older))
	require.NoError(t, r.RecordScan(newer))

	got, err := r.RecentSignals(10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, newer.RunID, got[0].RunID)
	assert.Equal(t, newer.StartedAt, got[0].Timestamp)
	assert.Equal(t, newer.Signals[0], got[0].Signal)
	assert.Equal(t, "UCG.MI", got[1].Signal.Ticker)
	assert.Equal(t, older.RunID, got[2].RunID)

	limited, err := r.RecentSignals(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	var runs, skipped int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*), SUM(skipped) FROM scan_runs`).Scan(&runs, &skipped))
	assert.Equal(t, 2, runs)
	assert.Equal(t, 1, skipped)
}

func TestSQLiteRecorder_DuplicateRunRejected(t *testing.T) {
	r := openTestRecorder(t)
	run := &ScanRun{RunID: "fixed", StartedAt: time.Now(), Signals: []model.Signal{{Ticker: "ENI.MI"}}}
	require.NoError(t, r.RecordScan(run))
	assert.Error(t, r.RecordScan(run))

	// The failed transaction must not leave orphan signals behind.
	got, err := r.RecentSignals(10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordScan(&ScanRun{}))
	got, err := r.RecentSignals(5)
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, r.Close())
}
