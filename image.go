package meander

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Image draws a frame as a raster image.
type Image struct {
	Width, Height int
	// Format is one of png (default), bmp or tiff.
	Format string

	LineWidth  float64
	Background color.Color
	Stroke     color.Color
	Fill       color.Color
	// Wireframe draws the triangulated surface under the contours.
	Wireframe bool
	// Grain adds a film grain of the given amount, seeded with the frame seed.
	Grain int
	// CloseTolerance is the end gap under which a line counts as closed and
	// keeps its terminals.
	CloseTolerance float64
}

// Draw renders the contours of res and encodes the image into w.
func (im *Image) Draw(w io.Writer, res *Result) error {
	img, err := im.Render(res)
	if err != nil {
		return err
	}
	switch im.Format {
	case "", "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tif", "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: unsupported image format %q", ErrInvalidArgument, im.Format)
	}
}

// Render rasterizes the contours of res.
func (im *Image) Render(res *Result) (image.Image, error) {
	if im.Width <= 0 || im.Height <= 0 {
		return nil, fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidArgument, im.Width, im.Height)
	}
	var (
		bg        = colorOr(im.Background, color.RGBA{R: 245, G: 245, B: 245, A: 255})
		stroke    = colorOr(im.Stroke, color.RGBA{R: 26, G: 26, B: 26, A: 178})
		fill      = colorOr(im.Fill, color.RGBA{R: 26, G: 26, B: 26, A: 13})
		lineWidth = im.LineWidth
		closeTol  = im.CloseTolerance
		cv        = canvas{view: res.View, width: float64(im.Width), height: float64(im.Height)}
		ctx       = gg.NewContext(im.Width, im.Height)
	)
	if lineWidth <= 0 {
		lineWidth = 1
	}
	if closeTol <= 0 {
		closeTol = defaultCloseTolerance
	}

	ctx.SetColor(bg)
	ctx.Clear()

	if im.Wireframe {
		ctx.SetStrokeStyle(gg.NewSolidPattern(color.RGBA{R: 0, G: 0, B: 0, A: 20}))
		ctx.SetLineWidth(lineWidth / 2)
		for _, t := range res.Triangles {
			tracePath(ctx, cv, Polyline{t[0].XY(), t[1].XY(), t[2].XY(), t[0].XY()})
			ctx.Stroke()
		}
	}

	ctx.SetLineWidth(lineWidth)
	for _, lvl := range res.Levels {
		shapes(res, lvl, closeTol, func(line Polyline, filled bool) {
			ctx.Push()
			tracePath(ctx, cv, line)
			if filled {
				ctx.ClosePath()
				ctx.SetFillStyle(gg.NewSolidPattern(fill))
				ctx.FillPreserve()
			}
			ctx.SetStrokeStyle(gg.NewSolidPattern(stroke))
			ctx.Stroke()
			ctx.Pop()
		})
	}

	if im.Grain <= 0 {
		return ctx.Image(), nil
	}
	// the grain follows the frame seed, so a frame is reproducible from it
	src := ctx.Image()
	img := image.NewNRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	Grain(img, im.Grain, res.Seed)
	return img, nil
}

func tracePath(ctx *gg.Context, cv canvas, line Polyline) {
	for i, p := range line {
		x, y := cv.apply(p)
		if i == 0 {
			ctx.MoveTo(x, y)
		} else {
			ctx.LineTo(x, y)
		}
	}
}

func colorOr(c, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}
