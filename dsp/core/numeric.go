package core

import "math"

const defaultEpsilon = 1e-12

// Sanitizer bounds. Magnitudes at or below SanitizeFloor are denormal-like,
// magnitudes at or above SanitizeCeiling are treated as blown up.
const (
	SanitizeFloor   = 1e-15
	SanitizeCeiling = 1e15
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Sanitize maps denormals, NaN and ±Inf to exact zero.
//
// Values with SanitizeFloor < |x| < SanitizeCeiling pass through unchanged.
// NaN fails both comparisons and becomes zero as well.
func Sanitize(x float64) float64 {
	a := math.Abs(x)
	if a > SanitizeFloor && a < SanitizeCeiling {
		return x
	}

	return 0
}

// SanitizeBlock applies Sanitize to every sample of buf in place.
func SanitizeBlock(buf []float64) {
	for i, x := range buf {
		a := math.Abs(x)
		if a > SanitizeFloor && a < SanitizeCeiling {
			continue
		}

		buf[i] = 0
	}
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// It is meant for filter state, where large values must survive.
func FlushDenormals(x float64) float64 {
	if x > -SanitizeFloor && x < SanitizeFloor {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
