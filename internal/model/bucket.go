package model

// Bucket is the 5-way z-score regime partition. There is exactly one
// threshold table; the NEAR/EXTREME names are presentation synonyms.
type Bucket int

const (
	BucketUnknown      Bucket = iota
	BucketExtremeLower        // z <= -2.0
	BucketNearLower           // -2.0 < z <= -1.5
	BucketInBand              // -1.5 < z < 1.5
	BucketNearUpper           // 1.5 <= z < 2.0
	BucketExtremeUpper        // z >= 2.0
)

// BucketFor maps a z-score to its regime bucket.
func BucketFor(z float64) Bucket {
	switch {
	case z <= -2.0:
		return BucketExtremeLower
	case z <= -1.5:
		return BucketNearLower
	case z < 1.5:
		return BucketInBand
	case z < 2.0:
		return BucketNearUpper
	default:
		return BucketExtremeUpper
	}
}

// AllBuckets lists the five regime buckets in z order.
func AllBuckets() []Bucket {
	return []Bucket{BucketExtremeLower, BucketNearLower, BucketInBand, BucketNearUpper, BucketExtremeUpper}
}

// String returns the canonical range label used in slice keys and reports.
func (b Bucket) String() string {
	switch b {
	case BucketExtremeLower:
		return "z<=-2.0"
	case BucketNearLower:
		return "-2.0<z<=-1.5"
	case BucketInBand:
		return "-1.5<z<1.5"
	case BucketNearUpper:
		return "1.5<=z<2.0"
	case BucketExtremeUpper:
		return "z>=2.0"
	default:
		return "unknown"
	}
}

// DisplayName returns the presentation synonym for the same partition.
func (b Bucket) DisplayName() string {
	switch b {
	case BucketExtremeLower:
		return "EXTREME_LOWER_BAND"
	case BucketNearLower:
		return "NEAR_LOWER_BAND"
	case BucketInBand:
		return "IN_BAND"
	case BucketNearUpper:
		return "NEAR_UPPER_BAND"
	case BucketExtremeUpper:
		return "EXTREME_UPPER_BAND"
	default:
		return "UNKNOWN"
	}
}
