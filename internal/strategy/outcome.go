package strategy

import (
	"time"

	"HSScanner/internal/model"
)

// SimulateEntry fills the trade at the close of the session after the break.
// It reports false when that session does not exist yet.
func SimulateEntry(p model.Pattern, bars []model.OHLCV) (model.Entry, bool) {
	idx := p.BreakIndex + 1
	if idx >= len(bars) {
		return model.Entry{}, false
	}
	return model.Entry{
		Price: bars[idx].Close,
		Date:  bars[idx].Time,
		Index: idx,
	}, true
}

// IsRecent reports whether the break happened on or after the calendar day
// cutoffDays before now.
func IsRecent(p model.Pattern, now time.Time, cutoffDays int) bool {
	cutoff := truncateDay(now).AddDate(0, 0, -cutoffDays)
	return !truncateDay(p.BreakDate).Before(cutoff)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TradeLevels returns the stop-loss and take-profit prices for an entry.
// Long trades stop below and target above the entry; short trades mirror it.
func TradeLevels(entryPrice float64, bullish bool, params model.Params) (stop, target float64) {
	slDist := entryPrice * (params.StopLossPct / 100)
	tpDist := entryPrice * (params.TakeProfitPct / 100)
	if bullish {
		return entryPrice - slDist, entryPrice + tpDist
	}
	return entryPrice + slDist, entryPrice - tpDist
}

// IsLive replays every close after the entry session and reports whether the
// trade is still open, i.e. no close has reached the stop or the target.
// There is no maximum holding period: a trade that never trips either level
// stays live until the end of the available history.
func IsLive(p model.Pattern, entry model.Entry, bars []model.OHLCV, params model.Params) bool {
	bullish := p.Bullish()
	stop, target := TradeLevels(entry.Price, bullish, params)
	for idx := entry.Index + 1; idx < len(bars); idx++ {
		c := bars[idx].Close
		if bullish {
			if c <= stop || c >= target {
				return false
			}
		} else if c >= stop || c <= target {
			return false
		}
	}
	return true
}
