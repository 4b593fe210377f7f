package model

import "encoding/json"

// Reason strings attached to values that could not be computed.
const (
	ReasonInsufficientWindow    = "insufficient window"
	ReasonDegenerateStdev       = "degenerate standard deviation"
	ReasonNonPositiveLowerBand  = "non-positive lower band"
	ReasonMasked                = "masked by break detection"
	ReasonHorizonExceedsSeries  = "forward horizon exceeds series"
	ReasonInvalidEntryPrice     = "invalid entry price"
	ReasonInvalidForwardPrice   = "invalid price in forward window"
	ReasonNoSamples             = "no samples"
	ReasonNoDefinedSnapshot     = "no defined band snapshot"
)

// Value is a float that either was computed, or carries the reason it was not.
// Marshals as the number or as JSON null, never as NaN or a sentinel.
type Value struct {
	Float64 float64
	Valid   bool
	Reason  string
}

// Ok wraps a computed value.
func Ok(v float64) Value { return Value{Float64: v, Valid: true} }

// NotComputable marks a value that has no defined result.
func NotComputable(reason string) Value { return Value{Reason: reason} }

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float64)
}

// ReasonOrEmpty returns the reason for a null value, "" for a computed one.
func (v Value) ReasonOrEmpty() string {
	if v.Valid {
		return ""
	}
	return v.Reason
}
