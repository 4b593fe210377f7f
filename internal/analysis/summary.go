package analysis

import (
	"sort"

	"BandSentinel/internal/calculator"
	"BandSentinel/internal/model"
)

// Confidence tier boundaries. Descriptive only; the prescriptive gate is
// MinNRequired, supplied per call.
const (
	highN = 120
	medN  = 60
	lowN  = 20
)

// ConfidenceFor maps a sample size to its descriptive tier.
func ConfidenceFor(n int) model.Confidence {
	switch {
	case n >= highN:
		return model.ConfidenceHigh
	case n >= medN:
		return model.ConfidenceMed
	case n >= lowN:
		return model.ConfidenceLow
	default:
		return model.ConfidenceNA
	}
}

// Summarize computes the distribution summary over the computable outcomes.
// Outcomes whose value is null (masked, truncated, missing data) are skipped,
// never coerced to zero. The minimum's audit quadruple is carried so a report
// can name the date that drove the worst observed value.
func Summarize(outcomes []model.ForwardOutcome, minNRequired int) model.DistributionSummary {
	values := make([]float64, 0, len(outcomes))
	minIdx := -1
	for i := range outcomes {
		if !outcomes[i].Value.Valid {
			continue
		}
		v := outcomes[i].Value.Float64
		values = append(values, v)
		if minIdx < 0 || v < outcomes[minIdx].Value.Float64 {
			minIdx = i
		}
	}

	sum := model.DistributionSummary{
		N:             len(values),
		Confidence:    ConfidenceFor(len(values)),
		DecisionReady: len(values) >= minNRequired,
		MinNRequired:  minNRequired,
	}

	if len(values) == 0 {
		sum.P50 = model.NotComputable(model.ReasonNoSamples)
		sum.P25 = model.NotComputable(model.ReasonNoSamples)
		sum.P10 = model.NotComputable(model.ReasonNoSamples)
		sum.P05 = model.NotComputable(model.ReasonNoSamples)
		sum.Min = model.NotComputable(model.ReasonNoSamples)
		return sum
	}

	sort.Float64s(values)
	sum.P50 = model.Ok(calculator.Percentile(values, 50))
	sum.P25 = model.Ok(calculator.Percentile(values, 25))
	sum.P10 = model.Ok(calculator.Percentile(values, 10))
	sum.P05 = model.Ok(calculator.Percentile(values, 5))
	sum.Min = model.Ok(values[0])

	worst := &outcomes[minIdx]
	sum.MinAudit = &model.ExtremeAudit{
		EntryDate:   worst.EntryDate,
		EntryPrice:  worst.EntryPrice,
		FutureDate:  worst.FutureDate,
		FuturePrice: worst.FuturePrice,
	}
	return sum
}
