/*
Package meander extracts contour lines from a noise generated terrain using the meandering triangles algorithm.

A regular grid of points is triangulated with a Delaunay triangulation, every vertex is
lifted to the elevation of a fractal noise field, then every triangle crossing a
threshold yields one contour segment. The segments of a level can be stitched into
polylines, which can be drawn as raster, SVG or GeoJSON.

The package provides a command line utility supporting various customization options.
Check the supported commands by typing:

	$ meander --help

Example to compute the contours of a frame and save them as PNG:

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/esimov/meander"
	)

	func main() {
		p := meander.DefaultProcessor(42)
		res, err := p.Process(context.Background())
		if err != nil {
			log.Fatalf("Error on contouring process: %s", err.Error())
		}
		f, err := os.Create("contours.png")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		img := &meander.Image{Width: 1024, Height: 1024}
		if err := img.Draw(f, res); err != nil {
			log.Fatal(err)
		}
	}

The stages can also be run one by one:

	points, _ := meander.Sample(50, 50, -1664, 1664, -1664, 1664)
	field, _ := meander.NewField(meander.DefaultFieldConfig(42))
	triangles, _ := meander.Surface(points, &meander.Delaunay{}, field.Elevation)
	segments := meander.CalcContour(triangles, 175)

	stitcher, _ := meander.NewStitcher(0.1, meander.PoolOrder)
	lines := stitcher.Stitch(segments)
*/
package meander
