package meander

import "fmt"

// Sample returns a regular nx*ny grid of points over the given domain.
// Points are laid out x-major: the point at index i*ny+j sits on the i-th
// column and the j-th row of the grid.
func Sample(nx, ny int, xMin, xMax, yMin, yMax float64) ([]Point2, error) {
	if nx < 2 || ny < 2 {
		return nil, fmt.Errorf("%w: grid must be at least 2x2, got %dx%d", ErrInvalidArgument, nx, ny)
	}
	points := make([]Point2, 0, nx*ny)

	for i := 0; i < nx; i++ {
		x := MapRange(float64(i), 0, float64(nx-1), xMin, xMax)
		for j := 0; j < ny; j++ {
			y := MapRange(float64(j), 0, float64(ny-1), yMin, yMax)
			points = append(points, Point2{X: x, Y: y})
		}
	}
	return points, nil
}

// SampleRect is a shorthand for sampling a grid over a rectangle.
func SampleRect(nx, ny int, r Rect) ([]Point2, error) {
	return Sample(nx, ny, r.Min.X, r.Max.X, r.Min.Y, r.Max.Y)
}
