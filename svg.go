package meander

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// SVG draws a frame as a vector image, one group per contour level. Every
// line is a path with coordinates rounded to a hundredth of a pixel.
type SVG struct {
	Width, Height  int
	Title          string
	Description    string
	StrokeWidth    float64
	Stroke         string
	Fill           string
	CloseTolerance float64
}

// errWriter keeps the first write error, svgo drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// Draw writes the contours of res as an SVG document into w.
func (s *SVG) Draw(w io.Writer, res *Result) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: svg size must be positive, got %dx%d", ErrInvalidArgument, s.Width, s.Height)
	}
	stroke, fill := s.Stroke, s.Fill
	if stroke == "" {
		stroke = "#1a1a1a"
	}
	if fill == "" {
		fill = "rgba(26,26,26,0.05)"
	}
	width := s.StrokeWidth
	if width <= 0 {
		width = 1
	}
	closeTol := s.CloseTolerance
	if closeTol <= 0 {
		closeTol = defaultCloseTolerance
	}
	var (
		lineStyle = fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.2f;stroke-linecap:round", stroke, width)
		polyStyle = fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%.2f", fill, stroke, width)
		cv        = canvas{view: res.View, width: float64(s.Width), height: float64(s.Height)}
	)

	ew := &errWriter{w: w}
	doc := svg.New(ew)
	doc.Start(s.Width, s.Height)
	if s.Title != "" {
		doc.Title(s.Title)
	}
	if s.Description != "" {
		doc.Desc(s.Description)
	}
	doc.Rect(0, 0, s.Width, s.Height, "fill:white")

	for i, lvl := range res.Levels {
		doc.Gid(fmt.Sprintf("level-%d", i))
		shapes(res, lvl, closeTol, func(line Polyline, filled bool) {
			if filled {
				doc.Path(pathData(cv, line, true), polyStyle)
			} else {
				doc.Path(pathData(cv, line, false), lineStyle)
			}
		})
		doc.Gend()
	}
	doc.End()
	return ew.err
}

// pathData returns the path commands of line in canvas coordinates. The
// coordinates keep two decimals, since the polygon elements of svgo only
// take integer pixels.
func pathData(cv canvas, line Polyline, closed bool) string {
	var b strings.Builder
	for i, p := range line {
		x, y := cv.apply(p)
		cmd := 'L'
		if i == 0 {
			cmd = 'M'
		}
		fmt.Fprintf(&b, "%c%s %s", cmd, coord(x), coord(y))
	}
	if closed {
		b.WriteByte('Z')
	}
	return b.String()
}

func coord(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
