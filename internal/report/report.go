// Package report persists scan results as signals.json and keeps the latest
// one in memory for readers.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"HSScanner/internal/model"
)

// New assembles a report generated at now.
func New(now time.Time, params model.Params, signals []model.Signal) *model.Report {
	if signals == nil {
		signals = []model.Signal{}
	}
	return &model.Report{
		GeneratedAt: now.UTC().Format(model.ReportTimeFormat),
		Parameters:  params.Echo(),
		Signals:     signals,
	}
}

// Write stores the report as indented JSON, creating the parent directory.
// The file is written to a temporary sibling first and renamed into place.
func Write(path string, r *model.Report) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace report: %w", err)
	}
	return nil
}

// Load reads a report written by Write.
func Load(path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r model.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}

// Store holds the most recent report for concurrent readers.
type Store struct {
	mu     sync.RWMutex
	latest *model.Report
}

// NewStore creates an empty Store.
func NewStore() *Store { return &Store{} }

// Set replaces the latest report.
func (s *Store) Set(r *model.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = r
}

// Latest returns the most recent report, if any.
func (s *Store) Latest() (*model.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}
