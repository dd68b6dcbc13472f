package model

import "time"

// OHLCV represents a single daily session.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds one instrument's cleaned daily history.
type PriceSeries struct {
	Symbol    string
	DailyBars []OHLCV
	FetchedAt time.Time
}

// Len returns the number of sessions in the series.
func (p *PriceSeries) Len() int { return len(p.DailyBars) }
