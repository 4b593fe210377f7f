package model

import "time"

// Confidence is the descriptive sample-size tier. It is distinct from the
// prescriptive DecisionReady gate and the two are never conflated.
type Confidence string

const (
	ConfidenceHigh Confidence = "HIGH"
	ConfidenceMed  Confidence = "MED"
	ConfidenceLow  Confidence = "LOW"
	ConfidenceNA   Confidence = "NA"
)

// ExtremeAudit identifies the historical observation behind a summary's
// worst (minimum) value, so every report can answer "which date drove this".
type ExtremeAudit struct {
	EntryDate   time.Time
	EntryPrice  float64
	FutureDate  time.Time
	FuturePrice float64
}

// DistributionSummary describes a forward-outcome sample.
type DistributionSummary struct {
	N int

	P50 Value
	P25 Value
	P10 Value
	P05 Value
	Min Value

	MinAudit *ExtremeAudit

	Confidence    Confidence
	DecisionReady bool
	MinNRequired  int
}
