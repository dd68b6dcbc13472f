package model

import "time"

// PatternType is the direction of a head and shoulders formation.
type PatternType string

const (
	// PatternBearish is a head and shoulders top, detected on swing highs.
	PatternBearish PatternType = "bearish"
	// PatternBullish is an inverse head and shoulders, detected on swing lows.
	PatternBullish PatternType = "bullish"
)

// SwingPoint is a local extremum of the high or low series.
type SwingPoint struct {
	Index int
	Price float64
	Date  time.Time
}

// Pattern is a geometrically valid formation whose neckline has been broken.
type Pattern struct {
	Type          PatternType
	LeftShoulder  SwingPoint
	LeftValley    SwingPoint
	Head          SwingPoint
	RightValley   SwingPoint
	RightShoulder SwingPoint
	Neckline      float64
	BreakIndex    int
	BreakDate     time.Time
	BreakPrice    float64
	PatternHeight float64
}

// Bullish reports whether the pattern implies a long trade.
func (p *Pattern) Bullish() bool { return p.Type == PatternBullish }

// Entry is the simulated fill on the session after the neckline break.
type Entry struct {
	Price float64
	Date  time.Time
	Index int
}
