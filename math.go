package meander

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Min returns the smallest value between the provided numbers.
func Min[T constraints.Ordered](values ...T) T {
	var acc T = values[0]

	for _, v := range values {
		if v < acc {
			acc = v
		}
	}
	return acc
}

// Max returns the biggest value between the provided numbers.
func Max[T constraints.Ordered](values ...T) T {
	var acc T = values[0]

	for _, v := range values {
		if v > acc {
			acc = v
		}
	}
	return acc
}

// Clamp restricts v to the [lo, hi] range.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return Min(Max(v, lo), hi)
}

// MapRange linearly maps v from the [inMin, inMax] range onto [outMin, outMax].
// A degenerate input range maps everything onto outMin.
func MapRange[T constraints.Float](v, inMin, inMax, outMin, outMax T) T {
	if inMax == inMin {
		return outMin
	}
	return outMin + (v-inMin)/(inMax-inMin)*(outMax-outMin)
}

// lerp interpolates between a and b, t=0 giving b and t=1 giving a, the way
// the contour crossing is weighted toward the minority vertex.
func lerp(t float64, a, b Point2) Point2 {
	return Point2{
		X: t*a.X + (1-t)*b.X,
		Y: t*a.Y + (1-t)*b.Y,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
