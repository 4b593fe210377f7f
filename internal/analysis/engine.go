package analysis

import (
	"BandSentinel/internal/calculator"
	"BandSentinel/internal/config"
	"BandSentinel/internal/model"
)

// Engine runs the full band/break/forward analytics pipeline for one series.
// It is pure and synchronous: no I/O, no shared state across runs, and the
// produced Report is byte-for-byte reproducible for identical input.
type Engine struct {
	cfg *config.Config
}

// New creates an Engine bound to a validated configuration.
func New(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Run executes one analysis pass over the series and assembles the report.
func (e *Engine) Run(series *model.PriceSeries) *model.Report {
	bandCfg := calculator.BandConfig{
		Window:    e.cfg.Bands.Window,
		WidthMult: e.cfg.Bands.WidthMult,
		Transform: model.Transform(e.cfg.Bands.Transform),
	}
	breakCfg := calculator.BreakConfig{
		RatioHi: e.cfg.Breaks.RatioHi,
		RatioLo: e.cfg.Breaks.RatioLo,
	}
	sliceCfg := SliceConfig{
		PosThresholds:         e.cfg.Analysis.PosThresholds,
		DistToUpperThresholds: e.cfg.Analysis.DistToUpperThresholds,
		MinNRequired:          e.cfg.Analysis.MinNRequired,
	}

	var diag model.Diagnostics
	if missing := series.MissingCount(); missing > 0 {
		diag = diag.Note("series: %d date(s) with missing (non-positive or non-finite) prices", missing)
	}

	snaps, bandDiag := calculator.ComputeBands(series, bandCfg)
	diag = diag.Merge(bandDiag)

	events, breakDiag := calculator.DetectBreaks(series, breakCfg)
	diag = diag.Merge(breakDiag)

	horizons := make([]model.HorizonReport, 0, len(e.cfg.Analysis.Horizons))
	for _, h := range e.cfg.Analysis.Horizons {
		// The contamination window depends on the horizon, so every
		// horizon gets its own independently built mask.
		mask := calculator.BuildEntryMask(series.Len(), events, h)

		hr := model.HorizonReport{Horizon: h}
		for _, kind := range []model.MetricKind{model.MetricDrawdown, model.MetricRunup} {
			clean, fwdDiag := calculator.ComputeForwardOutcomes(series, h, mask, kind)
			diag = diag.Merge(fwdDiag)
			raw, _ := calculator.ComputeForwardOutcomes(series, h, nil, kind)

			mr := model.MetricReport{
				Clean: summaryReport(Summarize(clean, e.cfg.Analysis.MinNRequired)),
				Raw:   summaryReport(Summarize(raw, e.cfg.Analysis.MinNRequired)),
			}
			if kind == model.MetricDrawdown {
				hr.Drawdown = mr
				// Conditional slices partition the clean drawdown
				// set; the raw set exists for audit only.
				for _, sl := range SliceOutcomes(snaps, clean, sliceCfg) {
					hr.Slices = append(hr.Slices, model.SliceReport{
						Name:    sl.Name,
						Summary: summaryReport(sl.Summary),
					})
				}
			} else {
				hr.Runup = mr
			}
		}
		horizons = append(horizons, hr)
	}

	streaks, streakDiag := e.streaks(snaps, sliceCfg)
	diag = diag.Merge(streakDiag)

	return &model.Report{
		Symbol: series.Symbol,
		Config: model.RunConfig{
			Window:                e.cfg.Bands.Window,
			WidthMult:             e.cfg.Bands.WidthMult,
			Transform:             model.Transform(e.cfg.Bands.Transform),
			RatioHi:               e.cfg.Breaks.RatioHi,
			RatioLo:               e.cfg.Breaks.RatioLo,
			Horizons:              e.cfg.Analysis.Horizons,
			MinNRequired:          e.cfg.Analysis.MinNRequired,
			PosThresholds:         e.cfg.Analysis.PosThresholds,
			DistToUpperThresholds: e.cfg.Analysis.DistToUpperThresholds,
		},
		Latest:      latestSnapshotReport(snaps),
		Breaks:      breakReports(events),
		Horizons:    horizons,
		Streaks:     streaks,
		Diagnostics: diag.Notes(),
	}
}

// streaks counts trailing consecutive days, over the dates that have a
// defined BandSnapshot, for: same bucket as today, pos above each configured
// threshold, and same band-width bin as today.
func (e *Engine) streaks(snaps []model.BandSnapshot, sliceCfg SliceConfig) ([]model.StreakReport, model.Diagnostics) {
	var defined []model.BandSnapshot
	for i := range snaps {
		if snaps[i].Defined {
			defined = append(defined, snaps[i])
		}
	}
	if len(defined) == 0 {
		var diag model.Diagnostics
		return nil, diag.Note("streaks: skipped, %s", model.ReasonNoDefinedSnapshot)
	}
	latest := defined[len(defined)-1]

	boolSeries := func(pred func(s model.BandSnapshot) bool) []bool {
		out := make([]bool, len(defined))
		for i := range defined {
			out[i] = pred(defined[i])
		}
		return out
	}

	var streaks []model.StreakReport
	if latest.Bucket != model.BucketUnknown {
		cur := latest.Bucket
		streaks = append(streaks, model.StreakReport{
			Name: "bucket=" + cur.String(),
			Days: calculator.TrailingStreak(boolSeries(func(s model.BandSnapshot) bool { return s.Bucket == cur })),
		})
	}

	for _, tau := range sliceCfg.PosThresholds {
		tau := tau
		streaks = append(streaks, model.StreakReport{
			Name: "pos>=" + fmtThreshold(tau),
			Days: calculator.TrailingStreak(boolSeries(func(s model.BandSnapshot) bool {
				return s.PosClipped.Valid && s.PosClipped.Float64 >= tau
			})),
		})
	}

	if thresholds, ok := WidthThresholds(snaps); ok && latest.BandWidth.Valid {
		cur := WidthBinFor(latest.BandWidth.Float64, thresholds)
		streaks = append(streaks, model.StreakReport{
			Name: "width_bin=" + cur.Label(),
			Days: calculator.TrailingStreak(boolSeries(func(s model.BandSnapshot) bool {
				return s.BandWidth.Valid && WidthBinFor(s.BandWidth.Float64, thresholds) == cur
			})),
		})
	}

	return streaks, model.Diagnostics{}
}

func latestSnapshotReport(snaps []model.BandSnapshot) model.SnapshotReport {
	if len(snaps) == 0 {
		return model.SnapshotReport{Reason: model.ReasonInsufficientWindow}
	}
	return snapshotReport(snaps[len(snaps)-1])
}

func snapshotReport(s model.BandSnapshot) model.SnapshotReport {
	r := model.SnapshotReport{
		Date:  s.Date.Format("2006-01-02"),
		Price: s.Price,
	}
	if !s.Defined {
		r.Reason = s.Reason
		r.MA = model.NotComputable(s.Reason)
		r.SD = model.NotComputable(s.Reason)
		r.Upper = model.NotComputable(s.Reason)
		r.Lower = model.NotComputable(s.Reason)
		r.Z = model.NotComputable(s.Reason)
		r.ZReason = s.Reason
		r.PosRaw = model.NotComputable(s.Reason)
		r.PosClipped = model.NotComputable(s.Reason)
		r.PosReason = s.Reason
		r.BandWidth = model.NotComputable(s.Reason)
		r.BandWidthReason = s.Reason
		r.DistToUpper = model.NotComputable(s.Reason)
		r.DistToLower = model.NotComputable(s.Reason)
		return r
	}

	r.MA = model.Ok(s.MA)
	r.SD = model.Ok(s.SD)
	r.Upper = model.Ok(s.UpperPrice)
	r.Lower = model.Ok(s.LowerPrice)
	r.Z = s.Z
	r.ZReason = s.Z.ReasonOrEmpty()
	r.PosRaw = s.PosRaw
	r.PosClipped = s.PosClipped
	r.PosReason = s.PosRaw.ReasonOrEmpty()
	r.BandWidth = s.BandWidth
	r.BandWidthReason = s.BandWidth.ReasonOrEmpty()
	r.DistToUpper = s.DistToUpper
	r.DistToLower = s.DistToLower
	if s.Bucket != model.BucketUnknown {
		r.Bucket = s.Bucket.String()
		r.BucketDisplay = s.Bucket.DisplayName()
	}
	return r
}

func breakReports(events []model.BreakEvent) []model.BreakReport {
	out := make([]model.BreakReport, len(events))
	for i, ev := range events {
		out[i] = model.BreakReport{
			Index:     ev.Index,
			Date:      ev.Date.Format("2006-01-02"),
			PrevPrice: ev.PrevPrice,
			Price:     ev.Price,
			Ratio:     ev.Ratio,
			Direction: string(ev.Direction),
		}
	}
	return out
}

func summaryReport(s model.DistributionSummary) model.SummaryReport {
	r := model.SummaryReport{
		N:             s.N,
		P50:           s.P50,
		P25:           s.P25,
		P10:           s.P10,
		P05:           s.P05,
		Min:           s.Min,
		NilReason:     s.P50.ReasonOrEmpty(),
		Confidence:    s.Confidence,
		DecisionReady: s.DecisionReady,
		MinNRequired:  s.MinNRequired,
	}
	if s.MinAudit != nil {
		r.MinAudit = &model.AuditReport{
			EntryDate:   s.MinAudit.EntryDate.Format("2006-01-02"),
			EntryPrice:  s.MinAudit.EntryPrice,
			FutureDate:  s.MinAudit.FutureDate.Format("2006-01-02"),
			FuturePrice: s.MinAudit.FuturePrice,
		}
	}
	return r
}
