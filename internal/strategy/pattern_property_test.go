package strategy

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"HSScanner/internal/model"
)

// randomWalkGen produces positive price paths with enough swings for the
// detector to find candidate windows.
func randomWalkGen() gopter.Gen {
	return gen.SliceOfN(250, gen.Float64Range(-3, 3)).Map(func(steps []float64) []float64 {
		prices := make([]float64, len(steps))
		p := 100.0
		for i, s := range steps {
			p = math.Max(5, p+s)
			prices[i] = p
		}
		return prices
	})
}

func TestProperty_PatternInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 150
	params := model.DefaultParams()

	properties := gopter.NewProperties(parameters)

	properties.Property("emitted patterns satisfy shoulder/head geometry", prop.ForAll(
		func(prices []float64, bearish bool) bool {
			for _, p := range DetectPatterns(barsEndingAt(prices, testNow), bearish, params) {
				ls, h, rs := p.LeftShoulder.Price, p.Head.Price, p.RightShoulder.Price
				if math.Abs(ls-rs)/ls >= params.ShoulderTolerance {
					return false
				}
				if bearish && !(h > ls*(1+params.HeadMinDiff) && h > rs*(1+params.HeadMinDiff)) {
					return false
				}
				if !bearish && !(h < ls*(1-params.HeadMinDiff) && h < rs*(1-params.HeadMinDiff)) {
					return false
				}
				if !(p.LeftShoulder.Index < p.LeftValley.Index &&
					p.LeftValley.Index < p.Head.Index &&
					p.Head.Index < p.RightValley.Index &&
					p.RightValley.Index < p.RightShoulder.Index) {
					return false
				}
			}
			return true
		},
		randomWalkGen(),
		gen.Bool(),
	))

	properties.Property("break is the first neckline crossing inside the window", prop.ForAll(
		func(prices []float64, bearish bool) bool {
			bars := barsEndingAt(prices, testNow)
			for _, p := range DetectPatterns(bars, bearish, params) {
				rs := p.RightShoulder.Index
				if p.BreakIndex <= rs || p.BreakIndex >= rs+params.NecklineWindow {
					return false
				}
				crosses := func(c float64) bool {
					if bearish {
						return c < p.Neckline
					}
					return c > p.Neckline
				}
				if !crosses(bars[p.BreakIndex].Close) {
					return false
				}
				for j := rs + 1; j < p.BreakIndex; j++ {
					if crosses(bars[j].Close) {
						return false
					}
				}
				if p.Neckline != (p.LeftValley.Price+p.RightValley.Price)/2 {
					return false
				}
			}
			return true
		},
		randomWalkGen(),
		gen.Bool(),
	))

	properties.Property("evaluate yields a live, recent signal or nothing", prop.ForAll(
		func(prices []float64) bool {
			bars := barsEndingAt(prices, testNow)
			sig := Evaluate("RND.MI", bars, params, testNow)
			if sig == nil {
				return true
			}
			if sig.SignalType == model.SignalBuy {
				return sig.StopLoss < sig.EntryPrice && sig.TakeProfit > sig.EntryPrice
			}
			return sig.StopLoss > sig.EntryPrice && sig.TakeProfit < sig.EntryPrice
		},
		randomWalkGen(),
	))

	properties.TestingRun(t)
}
