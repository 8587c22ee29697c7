// Package sampleops collects the small vector operations used in mixing
// and rendering hot paths. SIMD-accelerated kernels come from
// github.com/tphakala/simd; accumulation uses gonum's floats package.
package sampleops

import (
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

// Scale writes dst[i] = src[i] * s. dst and src must have equal length.
func Scale(dst, src []float64, s float64) {
	f64.Scale(dst, src, s)
}

// ScaleInPlace multiplies every element of buf by s.
func ScaleInPlace(buf []float64, s float64) {
	f64.Scale(buf, buf, s)
}

// Accumulate adds src into dst element-wise. Slices must have equal
// length.
func Accumulate(dst, src []float64) {
	floats.Add(dst, src)
}

// Interleave writes dst[0]=l[0], dst[1]=r[0], dst[2]=l[1], ... for
// stereo output. dst must be exactly len(l)+len(r) long and the channel
// slices equal length.
func Interleave(dst, l, r []float64) {
	f64.Interleave2(dst, l, r)
}

// Sum returns the sum of all elements.
func Sum(s []float64) float64 {
	return f64.Sum(s)
}

// Peak returns the largest absolute sample value, or 0 for an empty
// slice.
func Peak(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	hi := floats.Max(s)
	lo := floats.Min(s)
	return math.Max(hi, -lo)
}
