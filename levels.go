package meander

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Thresholds returns n evenly spaced thresholds from first to last, both
// included. Passing first > last gives a descending sequence, which draws
// the highest contour first.
func Thresholds(n int, first, last float64) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one threshold, got %d", ErrInvalidArgument, n)
	}
	if !isFinite(first) || !isFinite(last) {
		return nil, fmt.Errorf("%w: threshold bounds must be finite", ErrInvalidArgument)
	}
	if n == 1 {
		return []float64{first}, nil
	}
	return floats.Span(make([]float64, n), first, last), nil
}

// Levels returns n thresholds between the minFrac and maxFrac fractions of
// the field's maximum elevation zScale. Fractions are expected in [0, 1].
func Levels(n int, zScale, minFrac, maxFrac float64, descending bool) ([]float64, error) {
	if minFrac > maxFrac {
		return nil, fmt.Errorf("%w: min contour %v above max contour %v", ErrInvalidArgument, minFrac, maxFrac)
	}
	lo, hi := zScale*minFrac, zScale*maxFrac
	if descending {
		return Thresholds(n, hi, lo)
	}
	return Thresholds(n, lo, hi)
}

// ElevationRange returns the lowest and the highest vertex elevation of the
// surface. It returns zeros for an empty surface.
func ElevationRange(triangles []Triangle) (lo, hi float64) {
	if len(triangles) == 0 {
		return 0, 0
	}
	zs := make([]float64, 0, 3*len(triangles))
	for _, t := range triangles {
		zs = append(zs, t[0].Z, t[1].Z, t[2].Z)
	}
	return floats.Min(zs), floats.Max(zs)
}
