package meander

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Drawer writes a processed frame in some output format.
type Drawer interface {
	Draw(w io.Writer, res *Result) error
}

// defaultCloseTolerance is the gap between the ends of a stitched line under
// which renderers treat the line as closed and leave its terminals alone. It
// is much looser than the stitching tolerance, so lines missing a segment or
// two are not extended.
const defaultCloseTolerance = 20.0

// canvas maps plane coordinates of the view onto a width x height pixel
// grid, with y growing downwards.
type canvas struct {
	view          Rect
	width, height float64
}

func (c canvas) apply(p Point2) (float64, float64) {
	return MapRange(p.X, c.view.Min.X, c.view.Max.X, 0, c.width),
		MapRange(p.Y, c.view.Min.Y, c.view.Max.Y, c.height, 0)
}

// shapes yields the drawable lines of a level: stitched polylines when the
// frame is closed, bare segments otherwise. Polylines come with their
// terminals extended, and every one that is Visible before the extension
// is filled, open or not.
func shapes(res *Result, lvl Level, closeTolerance float64, fn func(line Polyline, filled bool)) {
	if !res.Closed {
		for _, seg := range lvl.Segments {
			fn(Polyline{seg[0], seg[1]}, false)
		}
		return
	}
	for _, line := range lvl.Polylines {
		fn(line.ExtendTerminals(res.View, closeTolerance), line.Visible(res.View))
	}
}

// DrawerFor picks the writer matching the extension of the output file name.
func DrawerFor(output string, width, height int) (Drawer, error) {
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".png", ".bmp", ".tif", ".tiff":
		return &Image{Width: width, Height: height, Format: strings.TrimPrefix(ext, ".")}, nil
	case ".svg":
		return &SVG{Width: width, Height: height, Title: "Meandering triangles"}, nil
	case ".json", ".geojson":
		return &GeoJSON{Indent: true}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported output format %q", ErrInvalidArgument, ext)
	}
}
