package calculator

import "BandSentinel/internal/model"

// ComputeForwardOutcomes evaluates the forward move over the next horizon
// trading days for every entry index. The entry day itself is never part of
// the forward window. Drawdown values are clamped to <= 0 and run-up values
// to >= 0; the future day that produced the extremum is always recorded so
// reports can answer which historical date drove the number.
//
// A nil mask means no entries are excluded (the raw, audit-only variant).
func ComputeForwardOutcomes(series *model.PriceSeries, horizon int, mask []bool, kind model.MetricKind) ([]model.ForwardOutcome, model.Diagnostics) {
	n := series.Len()
	prices := series.Prices()
	outs := make([]model.ForwardOutcome, n)
	masked, truncated, gapped := 0, 0, 0

	for i := 0; i < n; i++ {
		out := model.ForwardOutcome{
			EntryIndex:  i,
			EntryDate:   series.Date(i),
			EntryPrice:  prices[i],
			FutureIndex: -1,
		}

		switch {
		case mask != nil && !mask[i]:
			masked++
			out.Value = model.NotComputable(model.ReasonMasked)
		case i+horizon >= n:
			truncated++
			out.Value = model.NotComputable(model.ReasonHorizonExceedsSeries)
		case !series.UsableAt(i):
			out.Value = model.NotComputable(model.ReasonInvalidEntryPrice)
		default:
			out.Value = forwardExtreme(series, prices, i, horizon, kind, &out)
			if !out.Value.Valid {
				gapped++
			}
		}
		outs[i] = out
	}

	var diag model.Diagnostics
	if masked > 0 {
		diag = diag.Note("forward h=%d %s: %d entry(ies) masked by break detection", horizon, kind, masked)
	}
	if gapped > 0 {
		diag = diag.Note("forward h=%d %s: %d entry(ies) with missing prices in forward window", horizon, kind, gapped)
	}
	_ = truncated // expected at every series tail, not worth a note
	return outs, diag
}

// forwardExtreme scans prices[i+1..i+horizon], records the extremum day into
// out, and returns the clamped relative move.
func forwardExtreme(series *model.PriceSeries, prices []float64, i, horizon int, kind model.MetricKind, out *model.ForwardOutcome) model.Value {
	extIdx := -1
	var extPrice float64

	for j := i + 1; j <= i+horizon; j++ {
		if !series.UsableAt(j) {
			return model.NotComputable(model.ReasonInvalidForwardPrice)
		}
		p := prices[j]
		better := extIdx < 0 ||
			(kind == model.MetricDrawdown && p < extPrice) ||
			(kind == model.MetricRunup && p > extPrice)
		if better {
			extIdx, extPrice = j, p
		}
	}

	out.FutureIndex = extIdx
	out.FutureDate = series.Date(extIdx)
	out.FuturePrice = extPrice

	v := extPrice/prices[i] - 1
	if kind == model.MetricDrawdown && v > 0 {
		v = 0
	}
	if kind == model.MetricRunup && v < 0 {
		v = 0
	}
	return model.Ok(v)
}
