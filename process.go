package meander

import (
	"context"
	"fmt"

	"github.com/esimov/meander/utils"
)

// Processor : type with processing options
type Processor struct {
	Field FieldConfig

	// Nx and Ny are the number of grid samples along each axis.
	Nx, Ny int
	// View is the visible area. The grid covers View scaled by Overscan, so
	// that more contours close before leaving the visible area.
	View     Rect
	Overscan float64

	// Contours is the number of thresholds, spaced between MinContour and
	// MaxContour fractions of the maximum elevation.
	Contours   int
	MinContour float64
	MaxContour float64
	Descending bool

	// Closed stitches the segments of every level into polylines.
	Closed    bool
	Tolerance float64
	Policy    MatchPolicy

	// Workers bounds the levels computed at once; below 1 means one per CPU.
	Workers      int
	Triangulator Triangulator
	Logger       *utils.Logger
}

// Level is the contour of a single threshold.
type Level struct {
	Threshold float64
	Segments  []Segment
	// Polylines is only filled when the processor stitches segments.
	Polylines []Polyline
}

// Result is the outcome of processing one frame.
type Result struct {
	// Seed is the noise seed of the frame.
	Seed      int64
	View      Rect
	Closed    bool
	Tolerance float64
	Points    []Point2
	Triangles []Triangle
	Levels    []Level
}

// DefaultProcessor returns the options of the stock contour sketch.
func DefaultProcessor(seed int64) *Processor {
	return &Processor{
		Field:      DefaultFieldConfig(seed),
		Nx:         50,
		Ny:         50,
		View:       NewRect(-512, -512, 512, 512),
		Overscan:   3.25,
		Contours:   70,
		MinContour: 0.01,
		MaxContour: 0.99,
		Descending: true,
		Closed:     true,
		Tolerance:  0.1,
		Policy:     PoolOrder,
	}
}

// Process samples, triangulates and contours one frame.
//
// On failure the returned result is still usable: it holds no contours,
// so a renderer draws an empty frame.
func (p *Processor) Process(ctx context.Context) (*Result, error) {
	res := &Result{Seed: p.Field.Seed, View: p.View, Closed: p.Closed, Tolerance: p.Tolerance}
	if err := p.process(ctx, res); err != nil {
		p.Logger.Error("no contours for this frame: %v", err)
		res.Levels = nil
		return res, err
	}
	return res, nil
}

func (p *Processor) process(ctx context.Context, res *Result) error {
	log := p.Logger

	field, err := NewField(p.Field)
	if err != nil {
		return err
	}
	var stitcher *Stitcher
	if p.Closed {
		if stitcher, err = NewStitcher(p.Tolerance, p.Policy); err != nil {
			return err
		}
	}
	thresholds, err := Levels(p.Contours, p.Field.ZScale, p.MinContour, p.MaxContour, p.Descending)
	if err != nil {
		return err
	}

	overscan := p.Overscan
	if overscan <= 0 {
		overscan = 1
	}
	log.Info("creating point cloud for %d x %d = %d points", p.Nx, p.Ny, p.Nx*p.Ny)
	points, err := SampleRect(p.Nx, p.Ny, p.View.Scale(overscan))
	if err != nil {
		return err
	}
	res.Points = points

	done := log.Step("triangulating")
	triangles, err := Surface(points, p.Triangulator, field.Elevation)
	done()
	if err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	res.Triangles = triangles
	lo, hi := ElevationRange(triangles)
	log.Info("%d triangles, elevation in [%.2f, %.2f]", len(triangles), lo, hi)

	levels := make([]Level, len(thresholds))
	err = forEachLevel(ctx, len(thresholds), p.Workers, func(i int) error {
		levels[i] = p.level(triangles, thresholds[i], stitcher)
		log.Debug("contour %d of %d (%.2f threshold): %d segments, %d lines",
			i+1, len(thresholds), thresholds[i], len(levels[i].Segments), len(levels[i].Polylines))
		return nil
	})
	if err != nil {
		return err
	}
	res.Levels = levels
	return nil
}

// level contours the triangles at one threshold and stitches the segments
// when stitcher is set.
func (p *Processor) level(triangles []Triangle, threshold float64, stitcher *Stitcher) Level {
	lvl := Level{Threshold: threshold, Segments: CalcContour(triangles, threshold)}
	if stitcher != nil {
		done := p.Logger.Step(fmt.Sprintf("stitching %d segments at %.2f", len(lvl.Segments), threshold))
		lvl.Polylines = stitcher.Stitch(lvl.Segments)
		done()
	}
	return lvl
}
