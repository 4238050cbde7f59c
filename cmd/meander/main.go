package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path"
	"time"

	"github.com/esimov/meander"
	"github.com/esimov/meander/utils"
	"golang.org/x/term"
)

var (
	// Flags
	destination = flag.String("out", "contours.png", "Destination (png, bmp, tiff, svg or geojson)")
	seed        = flag.Int64("seed", 0, "Noise seed, random when 0")
	nx          = flag.Int("nx", 50, "Grid samples along x")
	ny          = flag.Int("ny", 50, "Grid samples along y")
	viewSize    = flag.Float64("view", 1024, "Side of the visible area")
	overscan    = flag.Float64("overscan", 3.25, "Sampled area relative to the view")
	noiseScale  = flag.Float64("noise-scale", 600, "Horizontal scale of the noise")
	zScale      = flag.Float64("z-scale", 350, "Maximum elevation")
	octaves     = flag.Int("octaves", 2, "Noise octaves")
	frequency   = flag.Float64("frequency", 1.45, "Noise frequency")
	lacunarity  = flag.Float64("lacunarity", 3.14159, "Frequency gain between octaves")
	persistence = flag.Float64("persistence", 0.78, "Amplitude gain between octaves")
	fractal     = flag.String("fractal", "fbm", "Fractal: fbm, billow, ridged or turbulence")
	backend     = flag.String("backend", "simplex", "Noise backend: simplex or perlin")
	contours    = flag.Int("contours", 70, "Number of contour levels")
	minContour  = flag.Float64("min", 0.01, "Lowest level as a fraction of the maximum elevation")
	maxContour  = flag.Float64("max", 0.99, "Highest level as a fraction of the maximum elevation")
	ascending   = flag.Bool("ascending", false, "Order levels from the lowest")
	closed      = flag.Bool("closed", true, "Stitch segments into polylines")
	tolerance   = flag.Float64("tolerance", 0.1, "Stitching tolerance")
	policy      = flag.String("policy", "pool", "Stitch match policy: pool or nearest")
	workers     = flag.Int("workers", 0, "Levels computed at once, one per CPU when 0")
	width       = flag.Int("width", 1024, "Output width")
	height      = flag.Int("height", 1024, "Output height")
	lineWidth   = flag.Float64("line", 1, "Contour line width")
	wireframe   = flag.Bool("wireframe", false, "Draw the triangulated surface")
	noise       = flag.Int("noise", 0, "Noise factor")
	logLevel    = flag.String("log", "warn", "Log level: debug, info, warn or error")
)

func main() {
	flag.Parse()

	level, err := utils.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	logger := utils.NewLogger(os.Stderr, level, "meander")

	if *seed == 0 {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		*seed = 1 + rnd.Int63n(99999)
	}
	p := meander.DefaultProcessor(*seed)
	p.Field.NoiseScale = *noiseScale
	p.Field.ZScale = *zScale
	p.Field.Octaves = *octaves
	p.Field.Frequency = *frequency
	p.Field.Lacunarity = *lacunarity
	p.Field.Persistence = *persistence
	if p.Field.Fractal, err = meander.ParseFractal(*fractal); err != nil {
		log.Fatal(err)
	}
	if p.Field.Backend, err = meander.ParseBackend(*backend); err != nil {
		log.Fatal(err)
	}
	if p.Policy, err = meander.ParseMatchPolicy(*policy); err != nil {
		log.Fatal(err)
	}
	p.Nx, p.Ny = *nx, *ny
	p.View = meander.NewRect(-*viewSize/2, -*viewSize/2, *viewSize/2, *viewSize/2)
	p.Overscan = *overscan
	p.Contours = *contours
	p.MinContour, p.MaxContour = *minContour, *maxContour
	p.Descending = !*ascending
	p.Closed = *closed
	p.Tolerance = *tolerance
	p.Workers = *workers
	p.Logger = logger

	drawer, err := meander.DrawerFor(*destination, *width, *height)
	if err != nil {
		log.Fatal(err)
	}
	if img, ok := drawer.(*meander.Image); ok {
		img.LineWidth = *lineWidth
		img.Wireframe = *wireframe
		img.Grain = *noise
	}
	if s, ok := drawer.(*meander.SVG); ok {
		s.StrokeWidth = *lineWidth
		s.Description = fmt.Sprintf("seed %d", *seed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var s *utils.Spinner
	if term.IsTerminal(int(os.Stderr.Fd())) {
		s = utils.NewSpinner(os.Stderr)
		s.Start("Generating contours...")
	}
	start := time.Now()
	res, processErr := p.Process(ctx)
	if s != nil {
		s.Stop()
	}
	if processErr != nil {
		fmt.Fprintf(os.Stderr, "\n%sError generating contours: %s%s\n", utils.ErrorColor, processErr.Error(), utils.DefaultColor)
	}

	// A failed frame is still written, empty.
	out, err := os.Create(*destination)
	if err != nil {
		log.Fatalf("Unable to create the output file: %v", err)
	}
	if err := drawer.Draw(out, res); err != nil {
		out.Close()
		log.Fatalf("Unable to write %s: %v", *destination, err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("Unable to close %s: %v", *destination, err)
	}
	if processErr != nil {
		os.Exit(1)
	}

	var lines, segments int
	for _, lvl := range res.Levels {
		lines += len(lvl.Polylines)
		segments += len(lvl.Segments)
	}
	fmt.Printf("\nGenerated in: %s%s%s (seed %d)\n", utils.SuccessColor, utils.FormatTime(time.Since(start)), utils.DefaultColor, *seed)
	fmt.Printf("Total number of %s%d%s segments and %s%d%s lines over %s%d%s triangles\n",
		utils.SuccessColor, segments, utils.DefaultColor,
		utils.SuccessColor, lines, utils.DefaultColor,
		utils.SuccessColor, len(res.Triangles), utils.DefaultColor)
	fmt.Printf("Saved as: %s %s✓%s\n\n", path.Base(*destination), utils.SuccessColor, utils.DefaultColor)
}
