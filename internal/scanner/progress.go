package scanner

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"HSScanner/internal/model"
)

// Progress receives scan events for interactive display. Step may be called
// from several goroutines.
type Progress interface {
	Begin(total int, at time.Time)
	Step(r Result)
	End(sum *Summary)
}

// NopProgress discards all events.
type NopProgress struct{}

func (NopProgress) Begin(int, time.Time) {}
func (NopProgress) Step(Result)          {}
func (NopProgress) End(*Summary)         {}

// ConsoleProgress prints one coloured line per instrument.
type ConsoleProgress struct {
	Out        io.Writer
	OutputPath string

	mu    sync.Mutex
	total int
	done  int
}

var (
	bannerColor = color.New(color.FgCyan, color.Bold)
	buyColor    = color.New(color.FgGreen, color.Bold)
	sellColor   = color.New(color.FgRed, color.Bold)
	skipColor   = color.New(color.FgYellow)
	dimColor    = color.New(color.Faint)
)

func (p *ConsoleProgress) Begin(total int, at time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	p.done = 0
	rule := strings.Repeat("=", 60)
	bannerColor.Fprintln(p.Out, rule)
	bannerColor.Fprintln(p.Out, " H&S SCANNER - signal generation")
	bannerColor.Fprintf(p.Out, " %s\n", at.UTC().Format("2006-01-02 15:04 UTC"))
	bannerColor.Fprintln(p.Out, rule)
	fmt.Fprintf(p.Out, "\nScanning %d instruments...\n\n", total)
}

func (p *ConsoleProgress) Step(r Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	fmt.Fprintf(p.Out, "  [%3d/%d] [%-12s] ", p.done, p.total, r.Ticker)
	switch r.Outcome {
	case OutcomeSkipped:
		skipColor.Fprintln(p.Out, "skip (insufficient data)")
	case OutcomeNoPattern:
		dimColor.Fprintln(p.Out, "no pattern")
	case OutcomeNoSignal:
		dimColor.Fprintln(p.Out, "no active signal")
	case OutcomeSignal:
		c := buyColor
		if r.Signal.SignalType == model.SignalSell {
			c = sellColor
		}
		c.Fprintf(p.Out, "%s @ %v (conf: %s)\n", r.Signal.SignalType, r.Signal.EntryPrice, r.Signal.Confidence)
	}
}

func (p *ConsoleProgress) End(sum *Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rule := strings.Repeat("=", 60)
	dest := p.OutputPath
	if dest == "" {
		dest = "report"
	}
	bannerColor.Fprintf(p.Out, "\n%s\n", rule)
	bannerColor.Fprintf(p.Out, " OK %d active signals -> %s (%d skipped)\n", len(sum.Report.Signals), dest, sum.Skipped)
	bannerColor.Fprintf(p.Out, "%s\n\n", rule)
}
