// Package testutil provides reusable test helper functions for audio
// sample assertions.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for sample comparisons.
const (
	// DefaultTolerance suits exact float plumbing.
	DefaultTolerance = 1e-10

	// PCM16Tolerance covers one 16-bit quantization step.
	PCM16Tolerance = 1.0 / 32768

	// PCM32Tolerance covers one 32-bit quantization step.
	PCM32Tolerance = 1e-8
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [minVal, maxVal].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertAllZero verifies that every element is exactly zero.
func AssertAllZero(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "nonzero sample", "s[%d]=%f, want 0", i, v)
		}
	}
	return true
}

// AssertSamplesInDelta compares two sample slices element-wise.
func AssertSamplesInDelta(t *testing.T, want, got []float64, tolerance float64) bool {
	t.Helper()
	if !assert.Equal(t, len(want), len(got), "sample count mismatch") {
		return false
	}
	for i := range want {
		if !assert.InDelta(t, want[i], got[i], tolerance, "sample %d", i) {
			return false
		}
	}
	return true
}

// Ramp returns [0, 1, 2, ...] scaled by step, handy as recognizable
// track content.
func Ramp(n int, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}

// Constant returns n copies of v.
func Constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
