package meander

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ContourLine returns the segment along which the triangle crosses the
// threshold. The boolean is false when all three vertices lie on the same side.
//
// A vertex exactly at the threshold counts as above it.
func (t Triangle) ContourLine(threshold float64) (Segment, bool) {
	var (
		below, above   [3]Point3
		nbelow, nabove int
	)
	for _, v := range t {
		if v.Z < threshold {
			below[nbelow] = v
			nbelow++
		} else {
			above[nabove] = v
			nabove++
		}
	}
	if nbelow == 0 || nabove == 0 {
		return Segment{}, false
	}

	minority, majority := above, below
	if nbelow < nabove {
		minority, majority = below, above
	}

	var seg Segment
	m := minority[0]
	for i := 0; i < 2; i++ {
		v := majority[i]
		// fraction of the edge, measured from the majority vertex
		frac := (threshold - v.Z) / (m.Z - v.Z)
		seg[i] = lerp(frac, m.XY(), v.XY())
	}
	return seg, true
}

// CalcContour returns the crossing segments of every triangle for one
// threshold. The segments are disjoint pieces, one per crossed triangle.
func CalcContour(triangles []Triangle, threshold float64) []Segment {
	segments := make([]Segment, 0, len(triangles)/8)
	for _, t := range triangles {
		if seg, ok := t.ContourLine(threshold); ok {
			segments = append(segments, seg)
		}
	}
	return segments
}

// CalcContours runs CalcContour for every threshold, up to workers at a time.
// The result is indexed like thresholds. A workers value below 1 uses one
// worker per CPU.
func CalcContours(ctx context.Context, triangles []Triangle, thresholds []float64, workers int) ([][]Segment, error) {
	contours := make([][]Segment, len(thresholds))
	err := forEachLevel(ctx, len(thresholds), workers, func(i int) error {
		contours[i] = CalcContour(triangles, thresholds[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contours, nil
}

// forEachLevel calls fn for every level index in [0, n), up to workers at a
// time. Levels not yet started are skipped once ctx is done or fn fails.
func forEachLevel(ctx context.Context, n, workers int, fn func(i int) error) error {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	return g.Wait()
}
