package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/markcheno/go-talib"

	"BandSentinel/internal/model"
)

func newSeries(t *testing.T, prices []float64) *model.PriceSeries {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Price: p}
	}
	s, err := model.NewPriceSeries("TEST", points)
	if err != nil {
		t.Fatalf("build series: %v", err)
	}
	return s
}

func wavePrices(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 100 + 5*math.Sin(float64(i)*0.35) + 0.3*float64(i)
	}
	return prices
}

func TestComputeBands_WindowGating(t *testing.T) {
	series := newSeries(t, wavePrices(30))
	snaps, _ := ComputeBands(series, BandConfig{Window: 20, WidthMult: 2, Transform: model.TransformLinear})

	for i := 0; i < 19; i++ {
		if snaps[i].Defined {
			t.Errorf("snapshot %d defined before window full", i)
		}
		if snaps[i].Reason != model.ReasonInsufficientWindow {
			t.Errorf("snapshot %d reason = %q", i, snaps[i].Reason)
		}
		// Never partially computed: each per-field value is null too.
		if snaps[i].Z.Valid || snaps[i].PosRaw.Valid || snaps[i].BandWidth.Valid {
			t.Errorf("snapshot %d has partially computed fields", i)
		}
	}
	for i := 19; i < 30; i++ {
		if !snaps[i].Defined {
			t.Errorf("snapshot %d undefined with full window", i)
		}
	}
}

func TestComputeBands_MissingPriceInWindow(t *testing.T) {
	prices := wavePrices(30)
	prices[24] = -1 // missing
	series := newSeries(t, prices)
	snaps, _ := ComputeBands(series, BandConfig{Window: 10, WidthMult: 2, Transform: model.TransformLinear})

	// Every window containing index 24 is undefined.
	for i := 24; i <= 33 && i < 30; i++ {
		if snaps[i].Defined {
			t.Errorf("snapshot %d defined despite missing price in window", i)
		}
	}
	if !snaps[23].Defined {
		t.Error("snapshot 23 should be defined (window ends before the gap)")
	}
}

func TestComputeBands_FlatSeriesDegenerate(t *testing.T) {
	// Scenario: 70 identical prices with N=60. sd == 0 everywhere past the
	// window, so z and pos must be null, never infinite.
	prices := make([]float64, 70)
	for i := range prices {
		prices[i] = 100.0
	}
	series := newSeries(t, prices)
	snaps, _ := ComputeBands(series, BandConfig{Window: 60, WidthMult: 2, Transform: model.TransformLinear})

	for i := 59; i < 70; i++ {
		s := snaps[i]
		if !s.Defined {
			t.Fatalf("snapshot %d undefined", i)
		}
		if s.SD != 0 {
			t.Errorf("snapshot %d sd = %v, want 0", i, s.SD)
		}
		if s.Z.Valid {
			t.Errorf("snapshot %d z should be null for sd==0", i)
		}
		if s.Z.Reason != model.ReasonDegenerateStdev {
			t.Errorf("snapshot %d z reason = %q", i, s.Z.Reason)
		}
		if s.PosRaw.Valid {
			t.Errorf("snapshot %d pos_raw should be null when upper==lower", i)
		}
		if s.Bucket != model.BucketUnknown {
			t.Errorf("snapshot %d bucket = %s, want unknown", i, s.Bucket)
		}
	}
}

func TestComputeBands_LinearMatchesTalib(t *testing.T) {
	const window = 20
	const k = 2.0
	prices := wavePrices(60)
	series := newSeries(t, prices)
	snaps, _ := ComputeBands(series, BandConfig{Window: window, WidthMult: k, Transform: model.TransformLinear})

	upper, middle, lower := talib.BBands(prices, window, k, k, talib.SMA)
	for i := window - 1; i < len(prices); i++ {
		if math.Abs(snaps[i].MA-middle[i]) > 1e-6 {
			t.Errorf("ma[%d] = %v, talib %v", i, snaps[i].MA, middle[i])
		}
		if math.Abs(snaps[i].Upper-upper[i]) > 1e-6 {
			t.Errorf("upper[%d] = %v, talib %v", i, snaps[i].Upper, upper[i])
		}
		if math.Abs(snaps[i].Lower-lower[i]) > 1e-6 {
			t.Errorf("lower[%d] = %v, talib %v", i, snaps[i].Lower, lower[i])
		}
	}
}

func TestComputeBands_LogBandsMapBackToPriceUnits(t *testing.T) {
	prices := wavePrices(40)
	series := newSeries(t, prices)
	snaps, _ := ComputeBands(series, BandConfig{Window: 20, WidthMult: 2, Transform: model.TransformLog})

	for i := 19; i < 40; i++ {
		s := snaps[i]
		if math.Abs(s.UpperPrice-math.Exp(s.Upper)) > 1e-9 {
			t.Errorf("upper price[%d] not exp-mapped", i)
		}
		if math.Abs(s.LowerPrice-math.Exp(s.Lower)) > 1e-9 {
			t.Errorf("lower price[%d] not exp-mapped", i)
		}
		// Price-space distances, not log-space.
		wantDU := (s.UpperPrice - prices[i]) / prices[i]
		if !s.DistToUpper.Valid || math.Abs(s.DistToUpper.Float64-wantDU) > 1e-12 {
			t.Errorf("dist_to_upper[%d] = %+v, want %v", i, s.DistToUpper, wantDU)
		}
		wantWidth := s.UpperPrice/s.LowerPrice - 1
		if !s.BandWidth.Valid || math.Abs(s.BandWidth.Float64-wantWidth) > 1e-12 {
			t.Errorf("band_width[%d] = %+v, want %v", i, s.BandWidth, wantWidth)
		}
	}
}

func TestComputeBands_PosRawUnclipped(t *testing.T) {
	// A sharp final jump pushes the price above the upper band: pos_raw
	// must exceed 1 while pos_clipped stays at 1.
	prices := wavePrices(30)
	prices[29] = prices[28] * 1.25
	series := newSeries(t, prices)
	snaps, _ := ComputeBands(series, BandConfig{Window: 20, WidthMult: 2, Transform: model.TransformLinear})

	last := snaps[29]
	if !last.PosRaw.Valid || last.PosRaw.Float64 <= 1 {
		t.Fatalf("pos_raw = %+v, want > 1", last.PosRaw)
	}
	if !last.PosClipped.Valid || last.PosClipped.Float64 != 1 {
		t.Errorf("pos_clipped = %+v, want 1", last.PosClipped)
	}
	if !last.Z.Valid || last.Z.Float64 <= 2 {
		t.Errorf("z = %+v, want > 2 for a band break", last.Z)
	}
	if last.Bucket != model.BucketExtremeUpper {
		t.Errorf("bucket = %s, want %s", last.Bucket, model.BucketExtremeUpper)
	}
}
