package meander

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// naiveStitch stitches segments scanning the whole pool for every match.
func naiveStitch(segments []Segment, tol float64, policy MatchPolicy) []Polyline {
	used := make([]bool, len(segments))
	match := func(pt Point2) (int, Point2) {
		best, bestDist := -1, math.Inf(1)
		var far Point2
		for i, seg := range segments {
			if used[i] {
				continue
			}
			d0, d1 := pt.Dist(seg[0]), pt.Dist(seg[1])
			near0, near1 := d0 < tol, d1 < tol
			if !near0 && !near1 {
				continue
			}
			k, d := 0, d0
			if !near0 || (policy == Nearest && near1 && d1 < d0) {
				k, d = 1, d1
			}
			if policy == Nearest {
				if d < bestDist || (d == bestDist && i > best) {
					best, bestDist, far = i, d, seg[1-k]
				}
			} else if i > best {
				best, far = i, seg[1-k]
			}
		}
		return best, far
	}

	lines := []Polyline{}
	for seed := len(segments) - 1; seed >= 0; seed-- {
		if used[seed] {
			continue
		}
		used[seed] = true
		line := Polyline{segments[seed][0], segments[seed][1]}
		for {
			grown := false
			if i, far := match(line[len(line)-1]); i >= 0 {
				used[i] = true
				line = append(line, far)
				grown = true
			}
			if i, far := match(line[0]); i >= 0 {
				used[i] = true
				line = append(Polyline{far}, line...)
				grown = true
			}
			if !grown {
				break
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func fieldSegments(t testing.TB, n int, seed int64, threshold float64) []Segment {
	t.Helper()
	points, err := Sample(n, n, -1000, 1000, -1000, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	field, err := NewField(DefaultFieldConfig(seed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	triangles, err := Surface(points, nil, field.Elevation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return CalcContour(triangles, threshold)
}

func newTestStitcher(t *testing.T, tol float64, policy MatchPolicy) *Stitcher {
	t.Helper()
	s, err := NewStitcher(tol, policy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

// assertPartition checks that every input segment shows up exactly once as
// a pair of consecutive points of the output lines.
func assertPartition(t *testing.T, segments []Segment, lines []Polyline, tol float64) {
	t.Helper()
	pairs := 0
	for _, line := range lines {
		if line.Len() < 2 {
			t.Fatalf("line with %d points", line.Len())
		}
		pairs += line.Len() - 1
	}
	if pairs != len(segments) {
		t.Fatalf("expected %d point pairs, got %d", len(segments), pairs)
	}

	found := make([]bool, len(segments))
	for _, line := range lines {
		for _, pair := range line.Segments() {
			ok := false
			for i, seg := range segments {
				if found[i] {
					continue
				}
				if (pair[0].Dist(seg[0]) < tol && pair[1].Dist(seg[1]) < tol) ||
					(pair[0].Dist(seg[1]) < tol && pair[1].Dist(seg[0]) < tol) {
					found[i], ok = true, true
					break
				}
			}
			if !ok {
				t.Fatalf("pair %v matches no input segment", pair)
			}
		}
	}
}

func TestNewStitcher_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		tol    float64
		policy MatchPolicy
	}{
		{"zero tolerance", 0, PoolOrder},
		{"negative tolerance", -1, PoolOrder},
		{"NaN tolerance", math.NaN(), Nearest},
		{"infinite tolerance", math.Inf(1), Nearest},
		{"unknown policy", 0.1, MatchPolicy(7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewStitcher(tt.tol, tt.policy); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestParseMatchPolicy(t *testing.T) {
	for _, p := range []MatchPolicy{PoolOrder, Nearest} {
		got, err := ParseMatchPolicy(p.String())
		if err != nil || got != p {
			t.Errorf("expected %v, got %v (%v)", p, got, err)
		}
	}
	if _, err := ParseMatchPolicy("closest"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestStitch_Empty(t *testing.T) {
	lines := newTestStitcher(t, 0.1, PoolOrder).Stitch(nil)
	if lines == nil || len(lines) != 0 {
		t.Errorf("expected an empty result, got %v", lines)
	}
}

func TestStitch_SingleSegment(t *testing.T) {
	seg := Segment{{1, 2}, {3, 4}}
	lines := newTestStitcher(t, 0.1, PoolOrder).Stitch([]Segment{seg})
	if len(lines) != 1 || lines[0].Len() != 2 {
		t.Fatalf("expected one 2-point line, got %v", lines)
	}
	if lines[0][0] != seg[0] || lines[0][1] != seg[1] {
		t.Errorf("expected %v, got %v", seg, lines[0])
	}
}

func TestStitch_Ring(t *testing.T) {
	const (
		n   = 24
		tol = 0.01
	)
	ring := make([]Point2, n)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / n
		ring[i] = Point2{X: 10 * math.Cos(a), Y: 10 * math.Sin(a)}
	}
	rnd := rand.New(rand.NewSource(7))
	segments := make([]Segment, n)
	for i := range segments {
		a, b := ring[i], ring[(i+1)%n]
		// jitter the shared endpoints well under the tolerance
		b.X += (rnd.Float64() - 0.5) * tol / 4
		if rnd.Intn(2) == 0 {
			a, b = b, a
		}
		segments[i] = Segment{a, b}
	}
	rnd.Shuffle(len(segments), func(i, j int) { segments[i], segments[j] = segments[j], segments[i] })

	for _, policy := range []MatchPolicy{PoolOrder, Nearest} {
		t.Run(policy.String(), func(t *testing.T) {
			lines := newTestStitcher(t, tol, policy).Stitch(segments)
			if len(lines) != 1 {
				t.Fatalf("expected a single line, got %d", len(lines))
			}
			if !lines[0].Closed(tol) {
				t.Errorf("expected a closed line, ends are %v and %v", lines[0][0], lines[0][lines[0].Len()-1])
			}
			if lines[0].Len() != n+1 {
				t.Errorf("expected %d points, got %d", n+1, lines[0].Len())
			}
			assertPartition(t, segments, lines, tol)
		})
	}
}

func TestStitch_Idempotent(t *testing.T) {
	line := Polyline{{0, 0}, {1, 1}, {2, 0}, {3, 1}, {4, 0}, {5, 1}, {6, 0}, {7, 1}, {8, 0}}
	s := newTestStitcher(t, 0.1, PoolOrder)

	lines := s.Stitch(line.Segments())
	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(lines))
	}
	got := lines[0]
	if got.Len() != line.Len() {
		t.Fatalf("expected %d points, got %d", line.Len(), got.Len())
	}
	forward, backward := true, true
	for i := range line {
		forward = forward && got[i] == line[i]
		backward = backward && got[i] == line[line.Len()-1-i]
	}
	if !forward && !backward {
		t.Errorf("expected %v in either direction, got %v", line, got)
	}

	again := s.Stitch(got.Segments())
	if len(again) != 1 || again[0].Len() != got.Len() {
		t.Errorf("expected restitching to keep the line, got %v", again)
	}
}

func TestStitch_Policy(t *testing.T) {
	segments := []Segment{
		{{0.01, 0}, {5, 0}},
		{{0.05, 0}, {0, 5}},
		{{-3, 0}, {0, 0}},
	}
	tests := []struct {
		policy   MatchPolicy
		expected Point2
	}{
		{PoolOrder, Point2{0, 5}},
		{Nearest, Point2{5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			lines := newTestStitcher(t, 0.1, tt.policy).Stitch(segments)
			if len(lines) != 2 {
				t.Fatalf("expected 2 lines, got %v", lines)
			}
			first := lines[0]
			if first.Len() != 3 || first[0] != (Point2{-3, 0}) || first[2] != tt.expected {
				t.Errorf("expected line from (-3,0) to %v, got %v", tt.expected, first)
			}
		})
	}
}

func TestStitch_StrictTolerance(t *testing.T) {
	segments := []Segment{
		{{0, 0}, {1, 0}},
		{{1.5, 0}, {2, 0}},
	}
	// endpoints exactly one tolerance apart stay separate
	if lines := newTestStitcher(t, 0.5, PoolOrder).Stitch(segments); len(lines) != 2 {
		t.Errorf("expected 2 lines, got %v", lines)
	}
	if lines := newTestStitcher(t, 0.51, PoolOrder).Stitch(segments); len(lines) != 1 {
		t.Errorf("expected 1 line, got %v", lines)
	}
}

func TestStitch_DoesNotModifyInput(t *testing.T) {
	segments := fieldSegments(t, 20, 3, 175)
	orig := append([]Segment(nil), segments...)
	newTestStitcher(t, 0.1, Nearest).Stitch(segments)
	for i := range orig {
		if orig[i] != segments[i] {
			t.Fatalf("segment %d changed", i)
		}
	}
}

func TestStitch_MatchesNaive(t *testing.T) {
	for _, seed := range []int64{1, 42, 1337} {
		for _, threshold := range []float64{60, 175, 290} {
			segments := fieldSegments(t, 25, seed, threshold)
			for _, policy := range []MatchPolicy{PoolOrder, Nearest} {
				tol := 0.1
				lines := newTestStitcher(t, tol, policy).Stitch(segments)
				expected := naiveStitch(segments, tol, policy)

				if len(lines) != len(expected) {
					t.Fatalf("seed %d, threshold %v, %v: expected %d lines, got %d",
						seed, threshold, policy, len(expected), len(lines))
				}
				for i := range expected {
					if lines[i].Len() != expected[i].Len() {
						t.Fatalf("seed %d, threshold %v, %v: line %d has %d points, expected %d",
							seed, threshold, policy, i, lines[i].Len(), expected[i].Len())
					}
					for k := range expected[i] {
						if lines[i][k] != expected[i][k] {
							t.Fatalf("seed %d, threshold %v, %v: line %d differs at point %d",
								seed, threshold, policy, i, k)
						}
					}
				}
				assertPartition(t, segments, lines, tol)
			}
		}
	}
}
