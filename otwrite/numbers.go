package otwrite

import "math"

// OtRound rounds half-way cases towards positive infinity, i.e.
// OtRound(-1.5) = -1 and OtRound(1.5) = 2. This is the rounding used
// throughout font tooling.
func OtRound(v float64) int {
	return int(math.Floor(v + 0.5))
}

// FitsInt16 checks if v is representable as an int16.
func FitsInt16(v int) bool {
	return v >= math.MinInt16 && v <= math.MaxInt16
}

// Range of F2Dot14 values.
const (
	F2Dot14Min = -2.0
	F2Dot14Max = 2.0 - 1.0/16384
)

// F2Dot14 converts v to a 2.14 fixed point number. Values outside of the
// representable range are clamped.
func F2Dot14(v float64) int16 {
	n := OtRound(v * 16384)
	if n > math.MaxInt16 {
		n = math.MaxInt16
	} else if n < math.MinInt16 {
		n = math.MinInt16
	}
	return int16(n)
}

// F2Dot14ToFloat converts a 2.14 fixed point number to a float.
func F2Dot14ToFloat(v int16) float64 {
	return float64(v) / 16384
}

// Fixed converts v to a 16.16 fixed point number.
func Fixed(v float64) int32 {
	return int32(OtRound(v * 65536))
}

// FixedToFloat converts a 16.16 fixed point number to a float.
func FixedToFloat(v int32) float64 {
	return float64(v) / 65536
}
