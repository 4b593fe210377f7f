package model

import "time"

// Transform selects the price space for band computation.
type Transform string

const (
	TransformLog    Transform = "log"
	TransformLinear Transform = "linear"
)

// BandSnapshot holds the per-date band state. When Defined is false the
// trailing window was not full: no band field is ever partially computed,
// and Reason says why. MA/SD/Upper/Lower are in transform space;
// UpperPrice/LowerPrice and the distance/width metrics are in price space.
type BandSnapshot struct {
	Index int
	Date  time.Time
	Price float64

	Defined bool
	Reason  string

	MA    float64
	SD    float64
	Upper float64
	Lower float64

	UpperPrice float64
	LowerPrice float64

	Z          Value // null when SD == 0
	PosRaw     Value // unclipped, retained for audit
	PosClipped Value // clip(PosRaw, 0, 1)

	BandWidth   Value // UpperPrice/LowerPrice - 1
	DistToUpper Value // (UpperPrice - Price) / Price
	DistToLower Value // (Price - LowerPrice) / Price

	Bucket Bucket // BucketUnknown when Z is null
}
