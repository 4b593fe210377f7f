package calculator

import (
	"BandSentinel/internal/model"
)

// BreakConfig holds the ratio thresholds for discontinuity detection.
// The defaults (1.8 and 1/1.8) are deliberately conservative: ordinary
// dividend-sized drops must not trigger, only split-magnitude jumps.
type BreakConfig struct {
	RatioHi float64
	RatioLo float64
}

// DetectBreaks scans consecutive day pairs and emits a BreakEvent wherever
// price[t]/price[t-1] crosses either threshold. The first date has no
// predecessor and can never be a break point. Pairs with a missing side are
// skipped rather than guessed at.
func DetectBreaks(series *model.PriceSeries, cfg BreakConfig) ([]model.BreakEvent, model.Diagnostics) {
	prices := series.Prices()
	var events []model.BreakEvent

	for t := 1; t < series.Len(); t++ {
		if !series.UsableAt(t-1) || !series.UsableAt(t) {
			continue
		}
		ratio := prices[t] / prices[t-1]

		var dir model.BreakDirection
		switch {
		case ratio >= cfg.RatioHi:
			dir = model.DirectionReverseSplit
		case ratio <= cfg.RatioLo:
			dir = model.DirectionSplit
		default:
			continue
		}

		events = append(events, model.BreakEvent{
			Index:     t,
			Date:      series.Date(t),
			PrevPrice: prices[t-1],
			Price:     prices[t],
			Ratio:     ratio,
			Direction: dir,
		})
	}

	var diag model.Diagnostics
	for _, ev := range events {
		diag = diag.Note("breaks: %s at %s (ratio %.4f)", ev.Direction, ev.Date.Format("2006-01-02"), ev.Ratio)
	}
	return events, diag
}
