package strategy

import (
	"math"

	"HSScanner/internal/calculator"
	"HSScanner/internal/model"
)

// Roles of the five consecutive swing points of a candidate, in order.
const (
	roleLeftShoulder = iota
	roleLeftValley
	roleHead
	roleRightValley
	roleRightShoulder
	windowSize
)

// DetectPatterns scans every window of five consecutive swing points of one
// kind (highs when bearish, lows otherwise) and returns each window that has
// valid shoulder/head geometry and a confirmed neckline break. Overlapping
// windows are reported independently.
func DetectPatterns(bars []model.OHLCV, bearish bool, params model.Params) []model.Pattern {
	swings := calculator.FindSwingPoints(bars, params.SwingPeriod, bearish)
	if len(swings) < windowSize {
		return nil
	}
	closes := calculator.ExtractCloses(bars)

	var patterns []model.Pattern
	for i := 0; i+windowSize <= len(swings); i++ {
		ls := swings[i+roleLeftShoulder]
		lv := swings[i+roleLeftValley]
		h := swings[i+roleHead]
		rv := swings[i+roleRightValley]
		rs := swings[i+roleRightShoulder]

		if !validGeometry(ls.Price, h.Price, rs.Price, bearish, params) {
			continue
		}

		neckline := (lv.Price + rv.Price) / 2.0
		breakIdx, ok := findNecklineBreak(closes, rs.Index, neckline, bearish, params.NecklineWindow)
		if !ok {
			continue
		}

		patternType := model.PatternBullish
		if bearish {
			patternType = model.PatternBearish
		}
		patterns = append(patterns, model.Pattern{
			Type:          patternType,
			LeftShoulder:  ls,
			LeftValley:    lv,
			Head:          h,
			RightValley:   rv,
			RightShoulder: rs,
			Neckline:      neckline,
			BreakIndex:    breakIdx,
			BreakDate:     bars[breakIdx].Time,
			BreakPrice:    closes[breakIdx],
			PatternHeight: math.Abs(h.Price - neckline),
		})
	}
	return patterns
}

// validGeometry checks that the head clears both shoulders by more than
// HeadMinDiff and that the shoulders agree within ShoulderTolerance.
func validGeometry(ls, head, rs float64, bearish bool, params model.Params) bool {
	if ls == 0 {
		return false
	}
	if math.Abs(ls-rs)/ls >= params.ShoulderTolerance {
		return false
	}
	if bearish {
		return head > ls*(1+params.HeadMinDiff) && head > rs*(1+params.HeadMinDiff)
	}
	return head < ls*(1-params.HeadMinDiff) && head < rs*(1-params.HeadMinDiff)
}

// findNecklineBreak returns the first session after the right shoulder, and
// within window sessions of it, whose close crosses the neckline.
func findNecklineBreak(closes []float64, rightShoulder int, neckline float64, bearish bool, window int) (int, bool) {
	end := rightShoulder + window
	if end > len(closes) {
		end = len(closes)
	}
	for j := rightShoulder + 1; j < end; j++ {
		if bearish && closes[j] < neckline {
			return j, true
		}
		if !bearish && closes[j] > neckline {
			return j, true
		}
	}
	return 0, false
}
