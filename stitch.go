package meander

import (
	"fmt"
	"math"
)

// MatchPolicy decides which segment extends a line when several segments
// have an endpoint within tolerance of the line's end.
type MatchPolicy int

const (
	// PoolOrder takes the matching segment that comes last in the input
	// order. Lines may close late or stop short where contours touch.
	PoolOrder MatchPolicy = iota
	// Nearest takes the matching segment whose endpoint is closest to the
	// line's end, falling back to PoolOrder on equal distances.
	Nearest
)

func (p MatchPolicy) String() string {
	switch p {
	case PoolOrder:
		return "pool"
	case Nearest:
		return "nearest"
	}
	return fmt.Sprintf("MatchPolicy(%d)", int(p))
}

// ParseMatchPolicy returns the policy matching name.
func ParseMatchPolicy(name string) (MatchPolicy, error) {
	switch name {
	case "pool":
		return PoolOrder, nil
	case "nearest":
		return Nearest, nil
	}
	return 0, fmt.Errorf("%w: unknown match policy %q", ErrInvalidArgument, name)
}

// Stitcher joins contour segments sharing endpoints into polylines.
type Stitcher struct {
	tolerance float64
	policy    MatchPolicy
}

// NewStitcher returns a stitcher treating points closer than tolerance as
// the same point. The tolerance depends on the sampling density of the
// surface: it must stay below the length of the shortest segment worth keeping.
func NewStitcher(tolerance float64, policy MatchPolicy) (*Stitcher, error) {
	if !isFinite(tolerance) || tolerance <= 0 {
		return nil, fmt.Errorf("%w: stitch tolerance must be positive, got %v", ErrInvalidArgument, tolerance)
	}
	if policy != PoolOrder && policy != Nearest {
		return nil, fmt.Errorf("%w: unknown match policy %v", ErrInvalidArgument, policy)
	}
	return &Stitcher{tolerance: tolerance, policy: policy}, nil
}

// Tolerance returns the matching distance.
func (s *Stitcher) Tolerance() float64 {
	return s.tolerance
}

// Policy returns the tie-break policy.
func (s *Stitcher) Policy() MatchPolicy {
	return s.policy
}

// Stitch builds maximal polylines out of segments. Every segment ends up in
// exactly one line: a line is seeded with the last unused segment, then grown
// at its end and at its start, one segment per side and round, until neither
// side finds a segment with an endpoint within tolerance. Only the far
// endpoint of a matched segment is added, so n chained segments give n+1 points.
// Rings come out with their first and last points within tolerance.
//
// The input slice is not modified.
func (s *Stitcher) Stitch(segments []Segment) []Polyline {
	pool := newSegmentPool(segments, s.tolerance)
	lines := []Polyline{}

	for {
		seed, ok := pool.last()
		if !ok {
			break
		}
		pool.take(seed)

		// front holds the prepended points in reverse order
		back := []Point2{segments[seed][0], segments[seed][1]}
		var front []Point2
		first := func() Point2 {
			if len(front) > 0 {
				return front[len(front)-1]
			}
			return back[0]
		}

		for {
			headFound, tailFound := false, false
			if i, far, ok := pool.match(back[len(back)-1], s.policy); ok {
				pool.take(i)
				back = append(back, far)
				headFound = true
			}
			if i, far, ok := pool.match(first(), s.policy); ok {
				pool.take(i)
				front = append(front, far)
				tailFound = true
			}
			if !headFound && !tailFound {
				break
			}
		}

		line := make(Polyline, 0, len(front)+len(back))
		for i := len(front) - 1; i >= 0; i-- {
			line = append(line, front[i])
		}
		line = append(line, back...)
		lines = append(lines, line)
	}
	return lines
}

type cellKey struct {
	x, y int64
}

// segmentPool is the set of segments not yet stitched. Segments stay in
// their input slice; a consumed flag marks the stitched ones and a uniform
// grid of endpoints, one tolerance wide per cell, narrows every search to
// the 3x3 cells around the searched point.
type segmentPool struct {
	segments  []Segment
	used      []bool
	cells     map[cellKey][]int
	tolerance float64
	next      int
}

func newSegmentPool(segments []Segment, tolerance float64) *segmentPool {
	p := &segmentPool{
		segments:  segments,
		used:      make([]bool, len(segments)),
		cells:     make(map[cellKey][]int, len(segments)),
		tolerance: tolerance,
		next:      len(segments) - 1,
	}
	for i, seg := range segments {
		k0, k1 := p.key(seg[0]), p.key(seg[1])
		p.cells[k0] = append(p.cells[k0], i)
		if k1 != k0 {
			p.cells[k1] = append(p.cells[k1], i)
		}
	}
	return p
}

func (p *segmentPool) key(pt Point2) cellKey {
	return cellKey{
		x: int64(math.Floor(pt.X / p.tolerance)),
		y: int64(math.Floor(pt.Y / p.tolerance)),
	}
}

// last returns the unused segment latest in input order.
func (p *segmentPool) last() (int, bool) {
	for p.next >= 0 && p.used[p.next] {
		p.next--
	}
	return p.next, p.next >= 0
}

func (p *segmentPool) take(i int) {
	p.used[i] = true
}

// match looks for an unused segment with an endpoint strictly within
// tolerance of pt and returns it together with its other endpoint.
func (p *segmentPool) match(pt Point2, policy MatchPolicy) (int, Point2, bool) {
	var (
		best     = -1
		bestDist = math.Inf(1)
		far      Point2
	)
	k := p.key(pt)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			ck := cellKey{k.x + dx, k.y + dy}
			ids, ok := p.cells[ck]
			if !ok {
				continue
			}
			live := ids[:0]
			for _, i := range ids {
				if p.used[i] {
					continue
				}
				live = append(live, i)

				seg := p.segments[i]
				d0, d1 := pt.Dist(seg[0]), pt.Dist(seg[1])
				near0, near1 := d0 < p.tolerance, d1 < p.tolerance
				if !near0 && !near1 {
					continue
				}
				switch policy {
				case Nearest:
					d, other := d0, seg[1]
					if !near0 || (near1 && d1 < d0) {
						d, other = d1, seg[0]
					}
					if d < bestDist || (d == bestDist && i > best) {
						best, bestDist, far = i, d, other
					}
				default:
					if i > best {
						best = i
						if near0 {
							far = seg[1]
						} else {
							far = seg[0]
						}
					}
				}
			}
			if len(live) == 0 {
				delete(p.cells, ck)
			} else {
				p.cells[ck] = live
			}
		}
	}
	return best, far, best >= 0
}
