package analysis

import (
	"bytes"
	"math"
	"testing"
	"time"

	"BandSentinel/internal/config"
	"BandSentinel/internal/model"
	"BandSentinel/internal/report"
)

func configForTest() *config.Config {
	cfg := &config.Config{Symbol: "TEST"}
	cfg.Bands.Window = 3
	cfg.Bands.WidthMult = 2.0
	cfg.Bands.Transform = "linear"
	cfg.Breaks.RatioHi = 1.8
	cfg.Breaks.RatioLo = 1.0 / 1.8
	cfg.Analysis.Horizons = []int{3}
	cfg.Analysis.MinNRequired = 1
	cfg.Analysis.PosThresholds = []float64{0.8}
	cfg.Analysis.DistToUpperThresholds = []float64{0.02}
	return cfg
}

func seriesFrom(t *testing.T, prices []float64) *model.PriceSeries {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Price: p}
	}
	series, err := model.NewPriceSeries("TEST", points)
	if err != nil {
		t.Fatalf("NewPriceSeries: %v", err)
	}
	return series
}

// An unadjusted split drops the price to a quarter overnight. The clean
// drawdown summary must exclude every entry whose forward window crosses the
// split; the raw summary keeps them all.
func TestEngineRun_SplitContamination(t *testing.T) {
	series := seriesFrom(t, []float64{100, 101, 102, 25.4, 25.0, 25.5, 25.1, 25.3})
	rep := New(configForTest()).Run(series)

	if len(rep.Breaks) != 1 {
		t.Fatalf("breaks = %d, want 1", len(rep.Breaks))
	}
	if rep.Breaks[0].Index != 3 || rep.Breaks[0].Direction != string(model.DirectionSplit) {
		t.Errorf("break = %+v, want split at index 3", rep.Breaks[0])
	}

	if len(rep.Horizons) != 1 {
		t.Fatalf("horizons = %d, want 1", len(rep.Horizons))
	}
	hr := rep.Horizons[0]

	// Entries 0..4 have a full 3-day forward window; the mask removes
	// entries 0..2 whose windows contain the break at index 3.
	if hr.Drawdown.Raw.N != 5 {
		t.Errorf("raw drawdown n = %d, want 5", hr.Drawdown.Raw.N)
	}
	if hr.Drawdown.Clean.N != 2 {
		t.Errorf("clean drawdown n = %d, want 2", hr.Drawdown.Clean.N)
	}

	// The raw minimum is the bogus -75% move across the split; the clean
	// minimum is an ordinary fluctuation.
	if !hr.Drawdown.Raw.Min.Valid || hr.Drawdown.Raw.Min.Float64 > -0.7 {
		t.Errorf("raw min = %+v, want the split artifact below -0.7", hr.Drawdown.Raw.Min)
	}
	if !hr.Drawdown.Clean.Min.Valid || hr.Drawdown.Clean.Min.Float64 < -0.1 {
		t.Errorf("clean min = %+v, want a small ordinary drawdown", hr.Drawdown.Clean.Min)
	}
}

func TestEngineRun_RunupAndSlicesPresent(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 + 5*math.Sin(0.35*float64(i)) + 0.3*float64(i)
	}
	cfg := configForTest()
	cfg.Analysis.Horizons = []int{5, 10}
	rep := New(cfg).Run(seriesFrom(t, prices))

	if len(rep.Horizons) != 2 {
		t.Fatalf("horizons = %d, want 2", len(rep.Horizons))
	}
	for _, hr := range rep.Horizons {
		if hr.Runup.Clean.N == 0 {
			t.Errorf("H=%d: runup summary is empty", hr.Horizon)
		}
		// 5 buckets + 5 width bins + 1 pos + 1 dist + 5 intersections.
		if len(hr.Slices) != 17 {
			t.Errorf("H=%d: %d slices, want 17", hr.Horizon, len(hr.Slices))
		}
		for _, sl := range hr.Slices {
			if !sl.Summary.Min.Valid && sl.Summary.NilReason == "" {
				t.Errorf("H=%d slice %q: null summary without a reason", hr.Horizon, sl.Name)
			}
		}
	}

	if len(rep.Streaks) == 0 {
		t.Error("expected streak entries for a fully defined tail")
	}
	if rep.Latest.Bucket == "" {
		t.Error("latest snapshot has no bucket label")
	}
}

func TestEngineRun_Deterministic(t *testing.T) {
	prices := make([]float64, 150)
	for i := range prices {
		prices[i] = 100 + 5*math.Sin(0.35*float64(i)) + 0.3*float64(i)
	}
	prices[80] *= 4 // reverse-split artifact mid-series
	cfg := configForTest()
	cfg.Bands.Window = 20
	cfg.Bands.Transform = "log"
	cfg.Analysis.Horizons = []int{10, 20}

	first, err := report.Marshal(New(cfg).Run(seriesFrom(t, prices)))
	if err != nil {
		t.Fatalf("marshal first run: %v", err)
	}
	second, err := report.Marshal(New(cfg).Run(seriesFrom(t, prices)))
	if err != nil {
		t.Fatalf("marshal second run: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical input produced different report bytes")
	}
}

func TestEngineRun_ShortSeries(t *testing.T) {
	cfg := configForTest()
	cfg.Bands.Window = 20
	rep := New(cfg).Run(seriesFrom(t, []float64{100, 101, 102}))

	if rep.Latest.Reason != model.ReasonInsufficientWindow {
		t.Errorf("latest reason = %q, want %q", rep.Latest.Reason, model.ReasonInsufficientWindow)
	}
	if rep.Horizons[0].Drawdown.Clean.N != 0 {
		t.Errorf("clean n = %d, want 0 on a 3-point series", rep.Horizons[0].Drawdown.Clean.N)
	}
	if len(rep.Diagnostics) == 0 {
		t.Error("expected diagnostics on an underfilled series")
	}
}
