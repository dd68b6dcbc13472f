package calculator

import "HSScanner/internal/model"

// FindSwingPoints returns the strict local extrema of the series in
// chronological order. Highs are used when findTops is set, lows otherwise.
// Index i qualifies only if its price beats every one of the 2*period
// neighbours; a tie anywhere in the window disqualifies it. The first and
// last period sessions never qualify.
func FindSwingPoints(bars []model.OHLCV, period int, findTops bool) []model.SwingPoint {
	n := len(bars)
	if period < 1 || n < 2*period+1 {
		return nil
	}
	prices := extractPrices(bars, findTops)

	var swings []model.SwingPoint
	for i := period; i < n-period; i++ {
		current := prices[i]
		isSwing := true
		for j := 1; j <= period; j++ {
			before, after := prices[i-j], prices[i+j]
			if findTops {
				if before >= current || after >= current {
					isSwing = false
					break
				}
			} else if before <= current || after <= current {
				isSwing = false
				break
			}
		}
		if isSwing {
			swings = append(swings, model.SwingPoint{
				Index: i,
				Price: current,
				Date:  bars[i].Time,
			})
		}
	}
	return swings
}

func extractPrices(bars []model.OHLCV, highs bool) []float64 {
	prices := make([]float64, len(bars))
	for i, b := range bars {
		if highs {
			prices[i] = b.High
		} else {
			prices[i] = b.Low
		}
	}
	return prices
}

// ExtractCloses returns the closing prices of bars.
func ExtractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
