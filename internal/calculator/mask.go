package calculator

import "BandSentinel/internal/model"

// BuildEntryMask converts break events and a forward horizon into a clean
// entry mask over all n entry indices. mask[i] is false exactly when some
// break index j satisfies i < j <= i+horizon: a forward statistic from such
// an entry would span the discontinuity and contaminate the distribution.
// The mask is horizon-specific; a different horizon needs its own mask.
func BuildEntryMask(n int, events []model.BreakEvent, horizon int) []bool {
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	for _, ev := range events {
		lo := ev.Index - horizon
		if lo < 0 {
			lo = 0
		}
		hi := ev.Index
		if hi > n {
			hi = n
		}
		for i := lo; i < hi; i++ {
			mask[i] = false
		}
	}
	return mask
}

// MaskedCount returns the number of excluded entries in a mask.
func MaskedCount(mask []bool) int {
	n := 0
	for _, ok := range mask {
		if !ok {
			n++
		}
	}
	return n
}
