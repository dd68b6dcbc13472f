package strategy

import (
	"strings"

	"github.com/shopspring/decimal"

	"HSScanner/internal/model"
)

// highConfidencePct is the pattern height, as a percentage of the head
// price, above which a signal is graded high confidence.
const highConfidencePct = 5.0

// marketSuffix is stripped from tickers to form the display symbol.
const marketSuffix = ".MI"

// BuildSignal turns a live pattern and its simulated entry into a signal.
// Values are computed at full precision and rounded only here.
func BuildSignal(ticker string, p model.Pattern, entry model.Entry, params model.Params) model.Signal {
	bullish := p.Bullish()
	stop, target := TradeLevels(entry.Price, bullish, params)

	signalType := model.SignalSell
	if bullish {
		signalType = model.SignalBuy
	}

	var heightPct float64
	if p.Head.Price != 0 {
		heightPct = p.PatternHeight / p.Head.Price * 100
	}
	confidence := model.ConfidenceMedium
	if heightPct > highConfidencePct {
		confidence = model.ConfidenceHigh
	}

	return model.Signal{
		Symbol:        SymbolFromTicker(ticker),
		Ticker:        ticker,
		SignalType:    signalType,
		EntryPrice:    roundPrice(entry.Price),
		StopLoss:      roundPrice(stop),
		TakeProfit:    roundPrice(target),
		Neckline:      roundPrice(p.Neckline),
		PatternHeight: roundPrice(p.PatternHeight),
		HeightPct:     roundPct(heightPct),
		Confidence:    confidence,
		BreakDate:     p.BreakDate.Format(model.DateFormat),
		EntryDate:     entry.Date.Format(model.DateFormat),
		HeadPrice:     roundPrice(p.Head.Price),
		LSPrice:       roundPrice(p.LeftShoulder.Price),
		RSPrice:       roundPrice(p.RightShoulder.Price),
		SLPct:         params.StopLossPct,
		TPPct:         params.TakeProfitPct,
		TrailingPct:   params.TrailingPct,
	}
}

// SymbolFromTicker strips the exchange suffix, e.g. "ENI.MI" -> "ENI".
func SymbolFromTicker(ticker string) string {
	return strings.ReplaceAll(ticker, marketSuffix, "")
}

func roundPrice(v float64) float64 { return round(v, 4) }

func roundPct(v float64) float64 { return round(v, 2) }

// exactExponent is low enough that NewFromFloatWithExponent keeps every
// binary digit of a float64.
const exactExponent = -1074

// round rounds half to even on the exact binary value of v, so 2.675
// (stored as 2.67499...) rounds to 2.67.
func round(v float64, places int32) float64 {
	return decimal.NewFromFloatWithExponent(v, exactExponent).RoundBank(places).InexactFloat64()
}
