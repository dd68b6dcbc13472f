package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"HSScanner/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger zerolog.Logger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so the API can read history while a scan writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL UNIQUE,
			timestamp   INTEGER NOT NULL,
			tickers     INTEGER,
			scanned     INTEGER,
			skipped     INTEGER,
			signals     INTEGER,
			duration_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON scan_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS signals (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			timestamp   INTEGER NOT NULL,
			ticker      TEXT NOT NULL,
			symbol      TEXT,
			signal_type TEXT,
			entry_price REAL,
			stop_loss   REAL,
			take_profit REAL,
			neckline    REAL,
			confidence  TEXT,
			break_date  TEXT,
			entry_date  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON signals(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ticker ON signals(ticker)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordScan stores the run and its signals in one transaction.
func (r *SQLiteRecorder) RecordScan(run *ScanRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := run.StartedAt.Unix()
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO scan_runs
		(run_id, timestamp, tickers, scanned, skipped, signals, duration_ms)
		VALUES (?,?,?,?,?,?,?)`,
		run.RunID, ts, run.Tickers, run.Scanned, run.Skipped,
		len(run.Signals), run.Duration.Milliseconds(),
	); err != nil {
		return fmt.Errorf("insert scan run: %w", err)
	}

	for _, s := range run.Signals {
		if _, err := tx.Exec(`INSERT INTO signals
			(run_id, timestamp, ticker, symbol, signal_type, entry_price,
			 stop_loss, take_profit, neckline, confidence, break_date, entry_date)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
			run.RunID, ts, s.Ticker, s.Symbol, string(s.SignalType), s.EntryPrice,
			s.StopLoss, s.TakeProfit, s.Neckline, string(s.Confidence),
			s.BreakDate, s.EntryDate,
		); err != nil {
			return fmt.Errorf("insert signal %s: %w", s.Ticker, err)
		}
	}
	return tx.Commit()
}

// RecentSignals returns up to limit signals, newest run first.
func (r *SQLiteRecorder) RecentSignals(limit int) ([]StoredSignal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT run_id, timestamp, ticker, symbol, signal_type,
		entry_price, stop_loss, take_profit, neckline, confidence, break_date, entry_date
		FROM signals ORDER BY timestamp DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	var out []StoredSignal
	for rows.Next() {
		var (
			st         StoredSignal
			ts         int64
			signalType string
			confidence string
		)
		s := &st.Signal
		if err := rows.Scan(&st.RunID, &ts, &s.Ticker, &s.Symbol, &signalType,
			&s.EntryPrice, &s.StopLoss, &s.TakeProfit, &s.Neckline, &confidence,
			&s.BreakDate, &s.EntryDate); err != nil {
			return nil, fmt.Errorf("scan signal row: %w", err)
		}
		st.Timestamp = time.Unix(ts, 0).UTC()
		s.SignalType = model.SignalType(signalType)
		s.Confidence = model.Confidence(confidence)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
