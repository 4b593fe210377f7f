package model

import "time"

// MetricKind selects the forward statistic.
type MetricKind string

const (
	MetricDrawdown MetricKind = "DRAWDOWN"
	MetricRunup    MetricKind = "RUNUP"
)

// BreakDirection classifies a detected price discontinuity.
type BreakDirection string

const (
	// DirectionSplit marks a day-over-day ratio at or below the low
	// threshold (price divided, e.g. a forward split or a bad tick).
	DirectionSplit BreakDirection = "SPLIT"
	// DirectionReverseSplit marks a ratio at or above the high threshold.
	DirectionReverseSplit BreakDirection = "REVERSE_SPLIT"
)

// BreakEvent marks a split-magnitude discontinuity between two
// consecutive trading days. Index 0 can never be a break point.
type BreakEvent struct {
	Index     int
	Date      time.Time
	PrevPrice float64
	Price     float64
	Ratio     float64
	Direction BreakDirection
}

// ForwardOutcome is the forward move computed from one entry date.
// The Future fields identify the specific day that produced the extremum;
// they are only set when Value is computable (FutureIndex is -1 otherwise).
type ForwardOutcome struct {
	EntryIndex int
	EntryDate  time.Time
	EntryPrice float64

	Value Value

	FutureIndex int
	FutureDate  time.Time
	FuturePrice float64
}
