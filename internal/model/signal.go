package model

// SignalType is the trade direction of a signal.
type SignalType string

const (
	SignalBuy  SignalType = "BUY"
	SignalSell SignalType = "SELL"
)

// Confidence grades a signal by pattern height relative to the head price.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
)

// Signal is the serialized, actionable output for one instrument.
type Signal struct {
	Symbol        string     `json:"symbol"`
	Ticker        string     `json:"ticker"`
	SignalType    SignalType `json:"signal_type"`
	EntryPrice    float64    `json:"entry_price"`
	StopLoss      float64    `json:"stop_loss"`
	TakeProfit    float64    `json:"take_profit"`
	Neckline      float64    `json:"neckline"`
	PatternHeight float64    `json:"pattern_height"`
	HeightPct     float64    `json:"height_pct"`
	Confidence    Confidence `json:"confidence"`
	BreakDate     string     `json:"break_date"`
	EntryDate     string     `json:"entry_date"`
	HeadPrice     float64    `json:"head_price"`
	LSPrice       float64    `json:"ls_price"`
	RSPrice       float64    `json:"rs_price"`
	SLPct         float64    `json:"sl_pct"`
	TPPct         float64    `json:"tp_pct"`
	TrailingPct   float64    `json:"trailing_pct"`
}

// ReportParameters echoes the parameter set a report was produced with.
type ReportParameters struct {
	StopLossPct       float64 `json:"stop_loss_pct"`
	TakeProfitPct     float64 `json:"take_profit_pct"`
	TrailingPct       float64 `json:"trailing_pct"`
	SwingPeriod       int     `json:"swing_period"`
	NecklineWindow    int     `json:"neckline_window"`
	ShoulderTolerance float64 `json:"shoulder_tolerance"`
	HeadMinDiff       float64 `json:"head_min_diff"`
	RecentCutoffDays  int     `json:"recent_cutoff_days"`
}

// Report is the persisted result of one scan.
type Report struct {
	GeneratedAt string           `json:"generated_at"`
	Parameters  ReportParameters `json:"parameters"`
	Signals     []Signal         `json:"signals"`
}

// ReportTimeFormat is the layout of Report.GeneratedAt.
const ReportTimeFormat = "2006-01-02 15:04 UTC"

// DateFormat is the layout of signal dates.
const DateFormat = "2006-01-02"
