package analysis

import (
	"fmt"
	"sort"
	"strconv"

	"BandSentinel/internal/calculator"
	"BandSentinel/internal/model"
)

// Slice is one conditional partition of the forward-outcome set, summarized
// independently. Name is deterministic and doubles as the report key.
type Slice struct {
	Name    string
	Summary model.DistributionSummary
}

// WidthBin indexes the five band-width percentile bins; -1 means the bin is
// undefined for the date (no snapshot, or width not computable).
type WidthBin int

const WidthBinUndefined WidthBin = -1

var widthBinLabels = [5]string{"<=p20", "(p20,p40]", "(p40,p60]", "(p60,p80]", ">p80"}

// Label returns the bin's canonical name.
func (b WidthBin) Label() string {
	if b < 0 || int(b) >= len(widthBinLabels) {
		return "undefined"
	}
	return widthBinLabels[b]
}

// WidthThresholds computes the p20/p40/p60/p80 band-width thresholds over
// the full snapshot history. ok is false when no snapshot has a computable
// width (every bin is then undefined).
func WidthThresholds(snaps []model.BandSnapshot) (thresholds [4]float64, ok bool) {
	var widths []float64
	for i := range snaps {
		if snaps[i].BandWidth.Valid {
			widths = append(widths, snaps[i].BandWidth.Float64)
		}
	}
	if len(widths) == 0 {
		return thresholds, false
	}
	sort.Float64s(widths)
	for i, p := range []float64{20, 40, 60, 80} {
		thresholds[i] = calculator.Percentile(widths, p)
	}
	return thresholds, true
}

// WidthBinFor places a band width into its percentile bin.
func WidthBinFor(width float64, thresholds [4]float64) WidthBin {
	switch {
	case width <= thresholds[0]:
		return 0
	case width <= thresholds[1]:
		return 1
	case width <= thresholds[2]:
		return 2
	case width <= thresholds[3]:
		return 3
	default:
		return 4
	}
}

// SliceConfig parameterizes the conditional partitioning.
type SliceConfig struct {
	PosThresholds         []float64
	DistToUpperThresholds []float64
	MinNRequired          int
}

// SliceOutcomes partitions one outcome set by predicates evaluated at the
// entry date and summarizes each partition independently. Families, in
// order: regime bucket, band-width percentile bin, pos thresholds,
// dist-to-upper thresholds, and the bucket x pos intersections. Intersections
// are first-class: a single-predicate slice can mix market regimes and
// mislead, so the combined cuts are always emitted alongside.
func SliceOutcomes(snaps []model.BandSnapshot, outcomes []model.ForwardOutcome, cfg SliceConfig) []Slice {
	thresholds, widthOK := WidthThresholds(snaps)

	bucketOf := func(i int) model.Bucket {
		if !snaps[i].Defined {
			return model.BucketUnknown
		}
		return snaps[i].Bucket
	}
	binOf := func(i int) WidthBin {
		if !widthOK || !snaps[i].Defined || !snaps[i].BandWidth.Valid {
			return WidthBinUndefined
		}
		return WidthBinFor(snaps[i].BandWidth.Float64, thresholds)
	}
	posAtLeast := func(i int, tau float64) bool {
		return snaps[i].Defined && snaps[i].PosClipped.Valid && snaps[i].PosClipped.Float64 >= tau
	}
	distAtMost := func(i int, tau float64) bool {
		return snaps[i].Defined && snaps[i].DistToUpper.Valid && snaps[i].DistToUpper.Float64 <= tau
	}

	var slices []Slice
	add := func(name string, keep func(i int) bool) {
		var part []model.ForwardOutcome
		for i := range outcomes {
			if keep(outcomes[i].EntryIndex) {
				part = append(part, outcomes[i])
			}
		}
		slices = append(slices, Slice{Name: name, Summary: Summarize(part, cfg.MinNRequired)})
	}

	for _, b := range model.AllBuckets() {
		b := b
		add("bucket="+b.String(), func(i int) bool { return bucketOf(i) == b })
	}

	for bin := WidthBin(0); bin < 5; bin++ {
		bin := bin
		add("width_bin="+bin.Label(), func(i int) bool { return binOf(i) == bin })
	}

	for _, tau := range cfg.PosThresholds {
		tau := tau
		add(fmt.Sprintf("pos>=%s", fmtThreshold(tau)), func(i int) bool { return posAtLeast(i, tau) })
	}

	for _, tau := range cfg.DistToUpperThresholds {
		tau := tau
		add(fmt.Sprintf("dist_to_upper<=%s", fmtThreshold(tau)), func(i int) bool { return distAtMost(i, tau) })
	}

	for _, b := range model.AllBuckets() {
		for _, tau := range cfg.PosThresholds {
			b, tau := b, tau
			add(fmt.Sprintf("bucket=%s&pos>=%s", b, fmtThreshold(tau)), func(i int) bool {
				return bucketOf(i) == b && posAtLeast(i, tau)
			})
		}
	}

	return slices
}

func fmtThreshold(tau float64) string {
	return strconv.FormatFloat(tau, 'g', -1, 64)
}
