package model

// Report is the structured per-run output record consumed by external
// renderers. It is fully deterministic: re-running the pipeline on identical
// input and configuration yields byte-identical JSON. Run identity and
// timestamps belong to the recorder layer, not here.
type Report struct {
	Symbol      string           `json:"symbol"`
	Config      RunConfig        `json:"config"`
	Latest      SnapshotReport   `json:"latest_snapshot"`
	Breaks      []BreakReport    `json:"break_events"`
	Horizons    []HorizonReport  `json:"horizons"`
	Streaks     []StreakReport   `json:"streaks"`
	Diagnostics []string         `json:"diagnostics"`
}

// RunConfig echoes the configuration the run was computed with.
type RunConfig struct {
	Window                int       `json:"window"`
	WidthMult             float64   `json:"width_mult"`
	Transform             Transform `json:"transform"`
	RatioHi               float64   `json:"ratio_hi"`
	RatioLo               float64   `json:"ratio_lo"`
	Horizons              []int     `json:"horizons"`
	MinNRequired          int       `json:"min_n_required"`
	PosThresholds         []float64 `json:"pos_thresholds"`
	DistToUpperThresholds []float64 `json:"dist_to_upper_thresholds"`
}

// SnapshotReport renders one BandSnapshot. Every null field carries a
// sibling *_reason entry so a reader can tell "insufficient window" from
// "degenerate standard deviation" without guessing.
type SnapshotReport struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`

	MA     Value  `json:"ma"`
	SD     Value  `json:"sd"`
	Upper  Value  `json:"upper"`
	Lower  Value  `json:"lower"`
	Reason string `json:"band_reason,omitempty"`

	Z          Value  `json:"z"`
	ZReason    string `json:"z_reason,omitempty"`
	PosRaw     Value  `json:"pos_raw"`
	PosClipped Value  `json:"pos_clipped"`
	PosReason  string `json:"pos_reason,omitempty"`

	BandWidth       Value  `json:"band_width"`
	BandWidthReason string `json:"band_width_reason,omitempty"`
	DistToUpper     Value  `json:"dist_to_upper"`
	DistToLower     Value  `json:"dist_to_lower"`

	Bucket        string `json:"bucket,omitempty"`
	BucketDisplay string `json:"bucket_display,omitempty"`
}

// BreakReport renders one BreakEvent.
type BreakReport struct {
	Index     int     `json:"index"`
	Date      string  `json:"date"`
	PrevPrice float64 `json:"prev_price"`
	Price     float64 `json:"price"`
	Ratio     float64 `json:"ratio"`
	Direction string  `json:"direction"`
}

// HorizonReport groups everything computed for one forward horizon.
type HorizonReport struct {
	Horizon  int           `json:"horizon"`
	Drawdown MetricReport  `json:"drawdown"`
	Runup    MetricReport  `json:"runup"`
	Slices   []SliceReport `json:"slices"`
}

// MetricReport pairs the clean (break-masked) summary with the raw
// (unmasked) one kept for audit.
type MetricReport struct {
	Clean SummaryReport `json:"clean"`
	Raw   SummaryReport `json:"raw"`
}

// SummaryReport renders one DistributionSummary.
type SummaryReport struct {
	N int `json:"n"`

	P50       Value  `json:"p50"`
	P25       Value  `json:"p25"`
	P10       Value  `json:"p10"`
	P05       Value  `json:"p05"`
	Min       Value  `json:"min"`
	NilReason string `json:"reason,omitempty"`

	MinAudit *AuditReport `json:"min_audit,omitempty"`

	Confidence    Confidence `json:"confidence"`
	DecisionReady bool       `json:"decision_ready"`
	MinNRequired  int        `json:"min_n_required"`
}

// AuditReport identifies the observation behind a summary minimum.
type AuditReport struct {
	EntryDate   string  `json:"entry_date"`
	EntryPrice  float64 `json:"entry_price"`
	FutureDate  string  `json:"future_date"`
	FuturePrice float64 `json:"future_price"`
}

// SliceReport is one conditional partition keyed by its deterministic name.
type SliceReport struct {
	Name    string        `json:"name"`
	Summary SummaryReport `json:"summary"`
}

// StreakReport is one trailing-streak counter.
type StreakReport struct {
	Name string `json:"name"`
	Days int    `json:"days"`
}
