package strategy

import (
	"sort"
	"time"

	"HSScanner/internal/model"
)

// Candidates returns every confirmed pattern of both directions, most recent
// break first. Patterns breaking on the same day keep bearish-before-bullish
// detection order.
func Candidates(bars []model.OHLCV, params model.Params) []model.Pattern {
	patterns := DetectPatterns(bars, true, params)
	patterns = append(patterns, DetectPatterns(bars, false, params)...)
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].BreakDate.After(patterns[j].BreakDate)
	})
	return patterns
}

// Evaluate selects at most one signal for an instrument. It returns nil when
// no pattern qualifies.
func Evaluate(ticker string, bars []model.OHLCV, params model.Params, now time.Time) *model.Signal {
	return Select(ticker, Candidates(bars, params), bars, params, now)
}

// Select walks patterns in the given order and builds a signal from the
// first one whose break is recent, that has an entry session and whose
// simulated trade is still open.
func Select(ticker string, patterns []model.Pattern, bars []model.OHLCV, params model.Params, now time.Time) *model.Signal {
	for _, p := range patterns {
		if !IsRecent(p, now, params.RecentCutoffDays) {
			continue
		}
		entry, ok := SimulateEntry(p, bars)
		if !ok {
			continue
		}
		if !IsLive(p, entry, bars, params) {
			continue
		}
		signal := BuildSignal(ticker, p, entry, params)
		return &signal
	}
	return nil
}
