package calculator

import (
	"math"

	"BandSentinel/internal/model"
)

// BandConfig parameterizes the rolling band computation.
type BandConfig struct {
	Window    int
	WidthMult float64
	Transform model.Transform
}

// ComputeBands produces one BandSnapshot per date. A snapshot is defined only
// when the trailing window holds exactly Window usable prices ending at and
// including the current date; otherwise every band field stays unset.
// Mean and standard deviation are population (ddof=0) in transform space.
func ComputeBands(series *model.PriceSeries, cfg BandConfig) ([]model.BandSnapshot, model.Diagnostics) {
	n := series.Len()
	prices := series.Prices()
	xs := prices
	if cfg.Transform == model.TransformLog {
		xs = series.LogPrices()
	}

	snaps := make([]model.BandSnapshot, n)
	gapped, degenerate := 0, 0

	for t := 0; t < n; t++ {
		snap := model.BandSnapshot{Index: t, Date: series.Date(t), Price: prices[t]}

		if t < cfg.Window-1 || !windowUsable(series, t, cfg.Window) {
			snap.Reason = model.ReasonInsufficientWindow
			if t >= cfg.Window-1 {
				gapped++
			}
			snaps[t] = snap
			continue
		}

		ma, sd := meanStdev(xs[t-cfg.Window+1 : t+1])
		snap.Defined = true
		snap.MA = ma
		snap.SD = sd
		snap.Upper = ma + cfg.WidthMult*sd
		snap.Lower = ma - cfg.WidthMult*sd

		// Map back to price units before any price-space metric.
		if cfg.Transform == model.TransformLog {
			snap.UpperPrice = math.Exp(snap.Upper)
			snap.LowerPrice = math.Exp(snap.Lower)
		} else {
			snap.UpperPrice = snap.Upper
			snap.LowerPrice = snap.Lower
		}

		if sd == 0 {
			degenerate++
			snap.Z = model.NotComputable(model.ReasonDegenerateStdev)
			snap.PosRaw = model.NotComputable(model.ReasonDegenerateStdev)
			snap.PosClipped = model.NotComputable(model.ReasonDegenerateStdev)
			snap.Bucket = model.BucketUnknown
		} else {
			x := xs[t]
			z := (x - ma) / sd
			pos := (x - snap.Lower) / (snap.Upper - snap.Lower)
			snap.Z = model.Ok(z)
			snap.PosRaw = model.Ok(pos)
			snap.PosClipped = model.Ok(clip01(pos))
			snap.Bucket = model.BucketFor(z)
		}

		// Distance and width metrics are price-space, not transform-space.
		p := prices[t]
		snap.DistToUpper = model.Ok((snap.UpperPrice - p) / p)
		snap.DistToLower = model.Ok((p - snap.LowerPrice) / p)
		if snap.LowerPrice > 0 {
			snap.BandWidth = model.Ok(snap.UpperPrice/snap.LowerPrice - 1)
		} else {
			snap.BandWidth = model.NotComputable(model.ReasonNonPositiveLowerBand)
		}

		snaps[t] = snap
	}

	var diag model.Diagnostics
	if gapped > 0 {
		diag = diag.Note("bands: %d snapshot(s) undefined past warmup due to missing prices in window", gapped)
	}
	if degenerate > 0 {
		diag = diag.Note("bands: %d snapshot(s) with degenerate standard deviation", degenerate)
	}
	return snaps, diag
}

// windowUsable reports whether all Window prices ending at t are usable.
func windowUsable(series *model.PriceSeries, t, window int) bool {
	for i := t - window + 1; i <= t; i++ {
		if !series.UsableAt(i) {
			return false
		}
	}
	return true
}

// meanStdev returns the mean and population standard deviation of xs.
func meanStdev(xs []float64) (mean, sd float64) {
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var sumSq float64
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return mean, math.Sqrt(sumSq / float64(len(xs)))
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
