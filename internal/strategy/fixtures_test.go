package strategy

import (
	"time"

	"HSScanner/internal/model"
)

// testNow is the scan time used by the fixtures; the last bar falls on it.
var testNow = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

type anchor struct {
	idx   int
	price float64
}

// inverseHSAnchors draws lows at 8 (100), 16 (104), 24 (90), 32 (106) and
// 40 (100) with peaks in between, then a slow climb that closes above the
// 105 neckline at session 52 and fills at 108 on session 53.
var inverseHSAnchors = []anchor{
	{0, 120}, {8, 100}, {12, 115}, {16, 104}, {20, 112}, {24, 90},
	{28, 112}, {32, 106}, {36, 115}, {40, 100}, {51, 104.4},
	{52, 107}, {53, 108}, {54, 108.5}, {59, 111},
}

func interpolate(anchors []anchor) []float64 {
	n := anchors[len(anchors)-1].idx + 1
	prices := make([]float64, n)
	for k := 0; k+1 < len(anchors); k++ {
		a, b := anchors[k], anchors[k+1]
		for i := a.idx; i <= b.idx; i++ {
			prices[i] = a.price + (b.price-a.price)*float64(i-a.idx)/float64(b.idx-a.idx)
		}
	}
	return prices
}

// barsEndingAt builds flat bars (O=H=L=C) whose last session is on end.
func barsEndingAt(prices []float64, end time.Time) []model.OHLCV {
	day := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(prices))
	for i, p := range prices {
		bars[i] = model.OHLCV{
			Time:   day.AddDate(0, 0, i-(len(prices)-1)),
			Open:   p,
			High:   p,
			Low:    p,
			Close:  p,
			Volume: 1000,
		}
	}
	return bars
}

func inverseHSBars() []model.OHLCV {
	return barsEndingAt(interpolate(inverseHSAnchors), testNow)
}

// overlappingInverseAnchors draws six lows, 8 (100), 16 (104), 24 (90),
// 32 (92), 40 (102) and 48 (100), under equal 115 peaks. The windows
// 8..40 and 16..48 both qualify and break at sessions 41 and 49.
var overlappingInverseAnchors = []anchor{
	{0, 120}, {8, 100}, {12, 115}, {16, 104}, {20, 115}, {24, 90},
	{28, 115}, {32, 92}, {36, 115}, {40, 102}, {44, 115}, {48, 100},
	{52, 115}, {59, 112},
}

// mixedAnchors draws a head and shoulders top on the highs 8..40 that breaks
// its 105 neckline at session 45, followed by an inverse formation on the
// lows 48..80 that breaks its 105 neckline at session 92.
var mixedAnchors = []anchor{
	{0, 100}, {8, 110}, {12, 96}, {16, 104}, {20, 94}, {24, 125},
	{28, 98}, {32, 106}, {36, 99}, {40, 110}, {48, 100}, {52, 115},
	{56, 104}, {60, 115}, {64, 88}, {68, 115}, {72, 106}, {76, 115},
	{80, 100}, {91, 104.4}, {92, 107}, {93, 108}, {99, 111},
}
