package meander

import "math"

// Point2 is a location on the contour plane.
type Point2 struct {
	X, Y float64
}

// Point3 is a sampled vertex, Z holding its elevation.
type Point3 struct {
	X, Y, Z float64
}

// XY drops the elevation.
func (p Point3) XY() Point2 {
	return Point2{X: p.X, Y: p.Y}
}

// Dist returns the euclidean distance between two points.
func (p Point2) Dist(q Point2) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// IsNear reports whether q lies strictly within eps of p.
func (p Point2) IsNear(q Point2, eps float64) bool {
	return p.Dist(q) < eps
}

// Triangle is a face of the elevated surface.
// The vertex order is kept as stored but carries no meaning.
type Triangle [3]Point3

// Segment is the crossing of one triangle by a threshold. Each point lies on
// a different edge of the originating triangle; the order of the two points
// is not oriented.
type Segment [2]Point2

// Polyline is a chain of stitched segments.
type Polyline []Point2

// Len returns the number of points of the line.
func (l Polyline) Len() int {
	return len(l)
}

// Closed reports whether the first and last points of the line are within eps.
func (l Polyline) Closed(eps float64) bool {
	if len(l) < 3 {
		return false
	}
	return l[0].IsNear(l[len(l)-1], eps)
}

// Segments breaks the line back into consecutive point pairs.
func (l Polyline) Segments() []Segment {
	if len(l) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(l)-1)
	for i := 0; i < len(l)-1; i++ {
		segs = append(segs, Segment{l[i], l[i+1]})
	}
	return segs
}

// Rect is an axis aligned rectangle, used as the visible area of a frame.
type Rect struct {
	Min, Max Point2
}

// NewRect builds a rectangle from its bounds, normalizing their order.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		Min: Point2{X: Min(x0, x1), Y: Min(y0, y1)},
		Max: Point2{X: Max(x0, x1), Y: Max(y0, y1)},
	}
}

// Dx returns the width of the rectangle.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the height of the rectangle.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Scale grows (or shrinks) the rectangle around its center.
func (r Rect) Scale(f float64) Rect {
	cx, cy := (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2
	hw, hh := r.Dx()/2*f, r.Dy()/2*f
	return NewRect(cx-hw, cy-hh, cx+hw, cy+hh)
}

// Contains reports whether p lies strictly inside the rectangle.
func (r Rect) Contains(p Point2) bool {
	return r.Min.X < p.X && p.X < r.Max.X && r.Min.Y < p.Y && p.Y < r.Max.Y
}

// Outside reports whether p lies strictly outside the rectangle. Points on
// the border are neither inside nor outside.
func (r Rect) Outside(p Point2) bool {
	return p.X < r.Min.X || p.X > r.Max.X || p.Y < r.Min.Y || p.Y > r.Max.Y
}
