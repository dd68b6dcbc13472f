package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HSScanner/internal/model"
)

func flatCloses(n int, price float64) []model.OHLCV {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = price
	}
	return barsEndingAt(prices, testNow)
}

func TestSimulateEntry(t *testing.T) {
	bars := inverseHSBars()
	entry, ok := SimulateEntry(model.Pattern{BreakIndex: 52}, bars)
	require.True(t, ok)
	assert.Equal(t, 53, entry.Index)
	assert.Equal(t, 108.0, entry.Price)
	assert.Equal(t, bars[53].Time, entry.Date)

	_, ok = SimulateEntry(model.Pattern{BreakIndex: len(bars) - 1}, bars)
	assert.False(t, ok, "break on the last session has no entry yet")
}

func TestTradeLevels(t *testing.T) {
	params := model.DefaultParams()

	stop, target := TradeLevels(108, true, params)
	assert.InDelta(t, 104.22, stop, 1e-9)
	assert.InDelta(t, 117.72, target, 1e-9)

	stop, target = TradeLevels(100, false, params)
	assert.InDelta(t, 103.5, stop, 1e-9)
	assert.InDelta(t, 91.0, target, 1e-9)
}

func TestIsLive(t *testing.T) {
	params := model.DefaultParams()
	long := model.Pattern{Type: model.PatternBullish}
	short := model.Pattern{Type: model.PatternBearish}

	tests := []struct {
		name  string
		p     model.Pattern
		after float64
		want  bool
	}{
		{"long between levels", long, 105, true},
		{"long hits target next session", long, 110, false},
		{"long hits stop", long, 96, false},
		{"short between levels", short, 97, true},
		{"short hits target", short, 90, false},
		{"short hits stop", short, 104, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bars := flatCloses(10, 100)
			entry := model.Entry{Price: 100, Index: 5, Date: bars[5].Time}
			bars[6].Close = tt.after
			assert.Equal(t, tt.want, IsLive(tt.p, entry, bars, params))
		})
	}
}

func TestIsLive_OnlyLooksAfterEntry(t *testing.T) {
	params := model.DefaultParams()
	bars := flatCloses(10, 100)
	// Extremes up to and including the entry session are ignored.
	bars[3].Close = 200
	bars[5].Close = 100
	entry := model.Entry{Price: 100, Index: 5}
	assert.True(t, IsLive(model.Pattern{Type: model.PatternBullish}, entry, bars, params))

	// Entry on the final session has nothing to replay.
	entry = model.Entry{Price: 100, Index: 9}
	assert.True(t, IsLive(model.Pattern{Type: model.PatternBearish}, entry, bars, params))
}
