package raster

import "sort"

// Default percentile pair for display normalization. Clipping at 2/98
// discards sensor outliers that would otherwise flatten the useful range.
const (
	DefaultLowPercentile  = 2
	DefaultHighPercentile = 98
)

// NormalizeBand rescales a band to [0, 1] using 2/98 percentile clipping.
// See NormalizeBandRange.
func NormalizeBand(b *Band) *Band {
	return NormalizeBandRange(b, DefaultLowPercentile, DefaultHighPercentile)
}

// NormalizeBandRange rescales a band so the low/high percentiles map to 0/1,
// clipping values outside that range. A degenerate band, where the high
// percentile does not exceed the low one (e.g. a constant band), yields an
// all-zero result rather than dividing by zero. The all-zero choice is load
// bearing: downstream composites render such bands as black, never white.
//
// The result is always a fresh band; the input is not modified.
func NormalizeBandRange(b *Band, lowPct, highPct float64) *Band {
	out := NewBand(b.Height, b.Width)
	lo := Percentile(b.Pix, lowPct)
	hi := Percentile(b.Pix, highPct)
	if hi <= lo {
		return out
	}
	scale := hi - lo
	for i, v := range b.Pix {
		n := (v - lo) / scale
		if n < 0 {
			n = 0
		} else if n > 1 {
			n = 1
		}
		out.Pix[i] = n
	}
	return out
}

// Percentile computes the pct-th percentile (0-100) of values using linear
// interpolation between closest ranks. Returns 0 for an empty slice.
func Percentile(values []float64, pct float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := pct / 100 * float64(len(sorted)-1)
	lo := int(rank)
	frac := rank - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
