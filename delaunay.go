package meander

import (
	"fmt"
	"math"
	"sort"
)

// defaultMargin is the size of the super triangle relative to the extent of
// the point set. With a finite super triangle the super vertices may still
// fall inside the circumcircle of a hull triangle, which then never shows up
// in the output. Triangulate detects the missing triangles and retries with
// a margin grown by marginGrowth, at most marginRetries times.
const (
	defaultMargin = 1e5
	marginGrowth  = 100.0
	marginRetries = 2
)

// incircleEps is the relative error bound of the incircle determinant.
// Points closer than this to a circumcircle are treated as lying outside it,
// which keeps co-circular grid points from producing overlapping triangles.
const incircleEps = 1e-12

// Triangulator maps a point set to a flat list of point indices,
// three consecutive indices per triangle.
type Triangulator interface {
	Triangulate(points []Point2) ([]int, error)
}

// TriangulatorFunc adapts a plain function to the Triangulator interface.
type TriangulatorFunc func(points []Point2) ([]int, error)

// Triangulate calls f(points).
func (f TriangulatorFunc) Triangulate(points []Point2) ([]int, error) {
	return f(points)
}

type circle struct {
	x, y, radius float64
}

type edge struct {
	a, b int
}

func (e edge) key() edge {
	if e.a > e.b {
		return edge{e.b, e.a}
	}
	return e
}

type triangle struct {
	a, b, c int
	circle  circle
}

// Delaunay triangulates point sets with the Bowyer-Watson algorithm.
// Points are inserted sorted by their x coordinate, so triangles whose
// circumcircle lies entirely left of the sweep are retired early.
type Delaunay struct {
	// Margin overrides the relative size of the enclosing super triangle.
	Margin float64
}

// Triangulate returns the vertex indices of the Delaunay triangles of points.
// Duplicate points are ignored; their indices never show up in the output.
func (d *Delaunay) Triangulate(points []Point2) ([]int, error) {
	n := len(points)
	if n < 3 {
		return nil, fmt.Errorf("%w: triangulation needs at least 3 points, got %d", ErrInvalidArgument, n)
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return nil, fmt.Errorf("%w: point (%v, %v) is not finite", ErrInvalidArgument, p.X, p.Y)
		}
		minX, maxX = Min(minX, p.X), Max(maxX, p.X)
		minY, maxY = Min(minY, p.Y), Max(maxY, p.Y)
	}
	deltaMax := Max(maxX-minX, maxY-minY)
	if deltaMax == 0 {
		return nil, fmt.Errorf("%w: all %d points coincide", ErrTriangulation, n)
	}

	order := sweepOrder(points)
	hull := hullSize(points, order)
	if hull == 0 {
		return nil, fmt.Errorf("%w: %d points are collinear", ErrTriangulation, n)
	}
	// Euler: a triangulation of k points, h of them on the hull boundary,
	// has 2k-h-2 triangles.
	want := 3 * (2*len(order) - hull - 2)

	margin := d.Margin
	if margin <= 0 {
		margin = defaultMargin
	}
	bounds := Rect{Min: Point2{X: minX, Y: minY}, Max: Point2{X: maxX, Y: maxY}}

	var indices []int
	for try := 0; try <= marginRetries; try++ {
		idx := sweep(points, order, bounds, margin)
		if len(idx) > len(indices) {
			indices = idx
		}
		if len(indices) >= want {
			break
		}
		margin *= marginGrowth
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: %d points are collinear", ErrTriangulation, n)
	}
	return indices, nil
}

// sweep runs Bowyer-Watson over the points in sweep order, inside a super
// triangle margin times larger than bounds.
func sweep(points []Point2, order []int, bounds Rect, margin float64) []int {
	n := len(points)
	deltaMax := Max(bounds.Dx(), bounds.Dy())
	midX, midY := (bounds.Min.X+bounds.Max.X)/2, (bounds.Min.Y+bounds.Max.Y)/2

	nodes := make([]Point2, n, n+3)
	copy(nodes, points)
	nodes = append(nodes,
		Point2{X: midX - margin*deltaMax, Y: midY - deltaMax*margin/2},
		Point2{X: midX + margin*deltaMax, Y: midY - deltaMax*margin/2},
		Point2{X: midX, Y: midY + margin*deltaMax},
	)

	open := []triangle{newTriangle(nodes, n, n+1, n+2)}
	done := make([]triangle, 0, 2*n)

	for _, i := range order {
		p := nodes[i]

		edges := []edge{}
		temps := make([]triangle, 0, len(open)+4)
		for _, t := range open {
			dx := p.X - t.circle.x
			if dx > 0 && dx*dx > t.circle.radius*(1+incircleEps) {
				done = append(done, t)
				continue
			}
			if inCircle(nodes, t, p) {
				edges = append(edges, edge{t.a, t.b}, edge{t.b, t.c}, edge{t.c, t.a})
			} else {
				temps = append(temps, t)
			}
		}

		for _, e := range boundary(edges) {
			if orient(nodes[e.a], nodes[e.b], p) == 0 {
				continue
			}
			temps = append(temps, newTriangle(nodes, e.a, e.b, i))
		}
		open = temps
	}
	done = append(done, open...)

	indices := make([]int, 0, 3*len(done))
	for _, t := range done {
		if t.a < n && t.b < n && t.c < n {
			indices = append(indices, t.a, t.b, t.c)
		}
	}
	return indices
}

// hullSize returns the number of points on the boundary of the convex hull,
// counting the ones lying inside hull edges. order holds the distinct points
// sorted by x, then y. It returns 0 when the points are collinear.
func hullSize(points []Point2, order []int) int {
	// monotone chain, lower hull then upper hull
	hull := make([]Point2, 0, len(order)+1)
	for pass := 0; pass < 2; pass++ {
		start := len(hull)
		for k := range order {
			i := order[k]
			if pass == 1 {
				i = order[len(order)-1-k]
			}
			p := points[i]
			for len(hull) >= start+2 && orient(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		hull = hull[:len(hull)-1]
	}
	if len(hull) < 3 {
		return 0
	}

	count := 0
	for _, i := range order {
		p := points[i]
		for k, a := range hull {
			b := hull[(k+1)%len(hull)]
			if orient(a, b, p) == 0 &&
				Min(a.X, b.X) <= p.X && p.X <= Max(a.X, b.X) &&
				Min(a.Y, b.Y) <= p.Y && p.Y <= Max(a.Y, b.Y) {
				count++
				break
			}
		}
	}
	return count
}

// sweepOrder returns the indices of the distinct points sorted by x, then y.
func sweepOrder(points []Point2) []int {
	seen := make(map[Point2]struct{}, len(points))
	order := make([]int, 0, len(points))
	for i, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		order = append(order, i)
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := points[order[i]], points[order[j]]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	return order
}

// boundary keeps the edges of the cavity polygon, dropping the ones shared
// by two removed triangles.
func boundary(edges []edge) []edge {
	count := make(map[edge]int, len(edges))
	for _, e := range edges {
		count[e.key()]++
	}
	polygon := edges[:0]
	for _, e := range edges {
		if count[e.key()] == 1 {
			polygon = append(polygon, e)
		}
	}
	return polygon
}

// newTriangle stores the triangle counter-clockwise together with its circumcircle.
func newTriangle(nodes []Point2, a, b, c int) triangle {
	if orient(nodes[a], nodes[b], nodes[c]) < 0 {
		b, c = c, b
	}
	p0, p1, p2 := nodes[a], nodes[b], nodes[c]

	ax, ay := p1.X-p0.X, p1.Y-p0.Y
	bx, by := p2.X-p0.X, p2.Y-p0.Y
	m := p1.X*p1.X - p0.X*p0.X + p1.Y*p1.Y - p0.Y*p0.Y
	u := p2.X*p2.X - p0.X*p0.X + p2.Y*p2.Y - p0.Y*p0.Y
	s := 1.0 / (2.0 * (ax*by - ay*bx))

	cx := ((p2.Y-p0.Y)*m + (p0.Y-p1.Y)*u) * s
	cy := ((p0.X-p2.X)*m + (p1.X-p0.X)*u) * s
	dx, dy := p0.X-cx, p0.Y-cy

	return triangle{
		a: a, b: b, c: c,
		circle: circle{x: cx, y: cy, radius: dx*dx + dy*dy},
	}
}

// orient is positive when a, b, c turn counter-clockwise.
func orient(a, b, c Point2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// inCircle reports whether p lies strictly inside the circumcircle of t.
func inCircle(nodes []Point2, t triangle, p Point2) bool {
	a, b, c := nodes[t.a], nodes[t.b], nodes[t.c]
	adx, ady := a.X-p.X, a.Y-p.Y
	bdx, bdy := b.X-p.X, b.Y-p.Y
	cdx, cdy := c.X-p.X, c.Y-p.Y

	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdx*cdy-cdx*bdy) +
		blift*(cdx*ady-adx*cdy) +
		clift*(adx*bdy-bdx*ady)

	permanent := alift*(math.Abs(bdx*cdy)+math.Abs(cdx*bdy)) +
		blift*(math.Abs(cdx*ady)+math.Abs(adx*cdy)) +
		clift*(math.Abs(adx*bdy)+math.Abs(bdx*ady))

	return det > incircleEps*permanent
}
