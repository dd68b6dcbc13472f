package notifier

import (
	"fmt"
	"html"
	"strings"

	"HSScanner/internal/model"
	"HSScanner/internal/recorder"
)

// FormatScanReport formats a scan report into a Telegram message.
func FormatScanReport(r *model.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📐 <b>H&amp;S Scanner</b> | %s\n\n", html.EscapeString(r.GeneratedAt)))

	if len(r.Signals) == 0 {
		b.WriteString("No active signals.\n")
	} else {
		for _, s := range r.Signals {
			b.WriteString(FormatSignal(s))
			b.WriteString("\n")
		}
	}

	buys, sells := 0, 0
	for _, s := range r.Signals {
		if s.SignalType == model.SignalBuy {
			buys++
		} else {
			sells++
		}
	}
	b.WriteString(fmt.Sprintf("\n%d signals (%d BUY, %d SELL) | SL %.1f%% TP %.1f%%",
		len(r.Signals), buys, sells, r.Parameters.StopLossPct, r.Parameters.TakeProfitPct))
	return b.String()
}

// FormatSignal formats one signal as a single line.
func FormatSignal(s model.Signal) string {
	icon := "🟢"
	if s.SignalType == model.SignalSell {
		icon = "🔴"
	}
	return fmt.Sprintf("%s <b>%s %s</b> @ %s | SL %s | TP %s | %s | break %s",
		icon, s.SignalType, html.EscapeString(s.Symbol),
		formatPrice(s.EntryPrice), formatPrice(s.StopLoss), formatPrice(s.TakeProfit),
		s.Confidence, s.BreakDate)
}

// FormatHistory lists recently recorded signals, newest first.
func FormatHistory(entries []recorder.StoredSignal) string {
	if len(entries) == 0 {
		return "No signals recorded yet."
	}
	var b strings.Builder
	b.WriteString("🗂 <b>Recent signals</b>\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%s %s\n", e.Timestamp.Format(model.DateFormat), FormatSignal(e.Signal)))
	}
	return b.String()
}

// FormatHelp lists the supported bot commands.
func FormatHelp() string {
	return "Commands:\n/signals - latest scan result\n/history - recently recorded signals\n/scan - run a scan now\n/help - this message"
}

func formatPrice(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
