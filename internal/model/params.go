package model

import "fmt"

// Params holds the detection and risk parameters shared by every stage of
// the pipeline. It is passed by value and never mutated after loading.
type Params struct {
	StopLossPct       float64 `yaml:"stop_loss_pct"`
	TakeProfitPct     float64 `yaml:"take_profit_pct"`
	TrailingPct       float64 `yaml:"trailing_pct"`
	SwingPeriod       int     `yaml:"swing_period"`
	NecklineWindow    int     `yaml:"neckline_window"`
	ShoulderTolerance float64 `yaml:"shoulder_tolerance"`
	HeadMinDiff       float64 `yaml:"head_min_diff"`
	RecentCutoffDays  int     `yaml:"recent_cutoff_days"`
}

// DefaultParams returns the medium/long-term scanner defaults. Zero is a
// meaningful value for several fields, so callers start from these and
// overwrite what they configure.
func DefaultParams() Params {
	return Params{
		StopLossPct:       3.5,
		TakeProfitPct:     9.0,
		TrailingPct:       2.5,
		SwingPeriod:       5,
		NecklineWindow:    20,
		ShoulderTolerance: 0.15,
		HeadMinDiff:       0.05,
		RecentCutoffDays:  7,
	}
}

// Validate rejects parameter sets the detector cannot work with.
func (p Params) Validate() error {
	switch {
	case p.StopLossPct <= 0:
		return fmt.Errorf("strategy.stop_loss_pct must be positive")
	case p.TakeProfitPct <= 0:
		return fmt.Errorf("strategy.take_profit_pct must be positive")
	case p.TrailingPct < 0:
		return fmt.Errorf("strategy.trailing_pct must not be negative")
	case p.SwingPeriod < 1:
		return fmt.Errorf("strategy.swing_period must be >= 1")
	case p.NecklineWindow < 1:
		return fmt.Errorf("strategy.neckline_window must be >= 1")
	case p.ShoulderTolerance <= 0:
		return fmt.Errorf("strategy.shoulder_tolerance must be positive")
	case p.HeadMinDiff < 0:
		return fmt.Errorf("strategy.head_min_diff must not be negative")
	case p.RecentCutoffDays < 0:
		return fmt.Errorf("strategy.recent_cutoff_days must not be negative")
	}
	return nil
}

// Echo returns the report view of the parameter set.
func (p Params) Echo() ReportParameters {
	return ReportParameters{
		StopLossPct:       p.StopLossPct,
		TakeProfitPct:     p.TakeProfitPct,
		TrailingPct:       p.TrailingPct,
		SwingPeriod:       p.SwingPeriod,
		NecklineWindow:    p.NecklineWindow,
		ShoulderTolerance: p.ShoulderTolerance,
		HeadMinDiff:       p.HeadMinDiff,
		RecentCutoffDays:  p.RecentCutoffDays,
	}
}
