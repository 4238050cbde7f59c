package meander

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"
)

// checkDelaunay verifies the triangles are counter-clockwise, cover the hull
// area and keep every input point out of their circumcircles.
func checkDelaunay(t *testing.T, points []Point2, indices []int, hullArea float64) {
	t.Helper()
	if len(indices)%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", len(indices))
	}
	var area float64
	for n := 0; n < len(indices); n += 3 {
		a, b, c := points[indices[n]], points[indices[n+1]], points[indices[n+2]]
		o := orient(a, b, c)
		if o <= 0 {
			t.Fatalf("triangle %v %v %v is not counter-clockwise", a, b, c)
		}
		area += o / 2

		tri := newTriangle(points, indices[n], indices[n+1], indices[n+2])
		for i, p := range points {
			if i == indices[n] || i == indices[n+1] || i == indices[n+2] {
				continue
			}
			dx, dy := p.X-tri.circle.x, p.Y-tri.circle.y
			if d := dx*dx + dy*dy; d < tri.circle.radius*(1-1e-9) {
				t.Fatalf("point %v lies inside the circumcircle of %v %v %v", p, a, b, c)
			}
		}
	}
	if math.Abs(area-hullArea) > 1e-6*hullArea {
		t.Errorf("expected a total area of %v, got %v", hullArea, area)
	}
}

func TestDelaunay_SquareWithCenter(t *testing.T) {
	points := []Point2{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {1, 1}}
	indices, err := (&Delaunay{}).Triangulate(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(indices) != 12 {
		t.Fatalf("expected 4 triangles, got %d", len(indices)/3)
	}
	for n := 0; n < len(indices); n += 3 {
		if indices[n] != 4 && indices[n+1] != 4 && indices[n+2] != 4 {
			t.Errorf("triangle %v does not use the center point", indices[n:n+3])
		}
	}
	checkDelaunay(t, points, indices, 4)
}

func TestDelaunay_Grid(t *testing.T) {
	tests := []struct {
		nx, ny int
	}{
		{2, 2},
		{3, 7},
		{10, 10},
		{25, 25},
	}
	for _, tt := range tests {
		points, err := Sample(tt.nx, tt.ny, -50, 50, -50, 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		indices, err := (&Delaunay{}).Triangulate(points)
		if err != nil {
			t.Fatalf("%dx%d: unexpected error: %v", tt.nx, tt.ny, err)
		}
		if expected := 2 * (tt.nx - 1) * (tt.ny - 1); len(indices)/3 != expected {
			t.Errorf("%dx%d: expected %d triangles, got %d", tt.nx, tt.ny, expected, len(indices)/3)
		}
		checkDelaunay(t, points, indices, 100*100)
	}
}

// hullArea returns the area of the convex hull of points.
func hullArea(points []Point2) float64 {
	sorted := append([]Point2(nil), points...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	var lower, upper []Point2
	for i := range sorted {
		p, q := sorted[i], sorted[len(sorted)-1-i]
		for len(lower) >= 2 && orient(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
		for len(upper) >= 2 && orient(upper[len(upper)-2], upper[len(upper)-1], q) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, q)
	}
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	var area float64
	for i, a := range hull {
		b := hull[(i+1)%len(hull)]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

func TestDelaunay_Random(t *testing.T) {
	tests := []struct {
		name   string
		margin float64
		point  func(rnd *rand.Rand) Point2
	}{
		{"uniform", 0, func(rnd *rand.Rand) Point2 {
			return Point2{X: rnd.Float64() * 100, Y: rnd.Float64() * 100}
		}},
		{"elongated", 0, func(rnd *rand.Rand) Point2 {
			return Point2{X: rnd.NormFloat64() * 100, Y: rnd.NormFloat64() * 3}
		}},
		{"thin", 0, func(rnd *rand.Rand) Point2 {
			return Point2{X: rnd.NormFloat64() * 1000, Y: rnd.NormFloat64()}
		}},
		// a small super triangle drops hull triangles on the first sweep
		{"small margin", 20, func(rnd *rand.Rand) Point2 {
			return Point2{X: rnd.NormFloat64() * 100, Y: rnd.NormFloat64() * 3}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(1); seed <= 8; seed++ {
				rnd := rand.New(rand.NewSource(seed))
				points := make([]Point2, 300)
				for i := range points {
					points[i] = tt.point(rnd)
				}
				indices, err := (&Delaunay{Margin: tt.margin}).Triangulate(points)
				if err != nil {
					t.Fatalf("seed %d: unexpected error: %v", seed, err)
				}
				checkDelaunay(t, points, indices, hullArea(points))
			}
		})
	}
}

func TestHullSize(t *testing.T) {
	points, err := Sample(5, 4, 0, 4, 0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := hullSize(points, sweepOrder(points)); got != 14 {
		t.Errorf("expected 14 points on the grid boundary, got %d", got)
	}
	line := []Point2{{0, 0}, {1, 1}, {3, 3}}
	if got := hullSize(line, sweepOrder(line)); got != 0 {
		t.Errorf("expected 0 for collinear points, got %d", got)
	}
}

func TestDelaunay_Duplicates(t *testing.T) {
	points := []Point2{{0, 0}, {1, 0}, {0, 1}, {1, 0}, {0, 0}}
	indices, err := (&Delaunay{}).Triangulate(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(indices) != 3 {
		t.Fatalf("expected a single triangle, got %v", indices)
	}
	for _, i := range indices {
		if i > 2 {
			t.Errorf("expected the first occurrence of every point, got index %d", i)
		}
	}
}

func TestDelaunay_Errors(t *testing.T) {
	tests := []struct {
		name     string
		points   []Point2
		expected error
	}{
		{"no points", nil, ErrInvalidArgument},
		{"two points", []Point2{{0, 0}, {1, 1}}, ErrInvalidArgument},
		{"not finite", []Point2{{0, 0}, {1, 1}, {math.NaN(), 2}}, ErrInvalidArgument},
		{"coincident", []Point2{{3, 3}, {3, 3}, {3, 3}, {3, 3}}, ErrTriangulation},
		{"collinear", []Point2{{0, 0}, {1, 1}, {2, 2}, {5, 5}}, ErrTriangulation},
		{"vertical", []Point2{{4, 0}, {4, 1}, {4, -3}}, ErrTriangulation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (&Delaunay{}).Triangulate(tt.points); !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestTriangulatorFunc(t *testing.T) {
	var tri Triangulator = TriangulatorFunc(func(points []Point2) ([]int, error) {
		return []int{0, 1, 2}, nil
	})
	indices, err := tri.Triangulate([]Point2{{0, 0}, {1, 0}, {0, 1}})
	if err != nil || len(indices) != 3 {
		t.Errorf("expected the wrapped function result, got %v (%v)", indices, err)
	}
}
