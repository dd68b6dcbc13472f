package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"HSScanner/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, since time.Time) ([]model.OHLCV, error)
	Name() string
}

var (
	// ErrNoData means the provider has nothing for the symbol.
	ErrNoData = errors.New("no data available")
	// ErrInsufficientHistory means too few valid sessions remain after cleaning.
	ErrInsufficientHistory = errors.New("insufficient history")
)

// FetchError wraps a provider failure for one symbol.
type FetchError struct {
	Symbol string
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s fetch %s: %v", e.Source, e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsSkippable reports whether err means "skip this instrument and continue".
// Every per-symbol fetch outcome is skippable; only context cancellation is
// not.
func IsSkippable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var fe *FetchError
	return errors.Is(err, ErrNoData) || errors.Is(err, ErrInsufficientHistory) || errors.As(err, &fe)
}
