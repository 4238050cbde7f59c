package meander

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// MaxOctaves caps the number of noise layers summed by a fractal.
const MaxOctaves = 32

// seedSpan bounds the seed offset fed into the third noise dimension.
// Larger offsets lose precision in the backend lattice computations.
const seedSpan = 100000

// Fractal selects how noise octaves are combined.
type Fractal int

const (
	// Fbm sums octaves of signed noise (fractal brownian motion).
	Fbm Fractal = iota
	// Billow sums octaves of folded noise, giving puffy rounded hills.
	Billow
	// RidgedMulti sums octaves of inverted folded noise, giving sharp ridges.
	RidgedMulti
	// Turbulence samples Fbm at coordinates displaced by a second noise.
	Turbulence
)

var fractalNames = map[Fractal]string{
	Fbm:         "fbm",
	Billow:      "billow",
	RidgedMulti: "ridged",
	Turbulence:  "turbulence",
}

func (f Fractal) String() string {
	if name, ok := fractalNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Fractal(%d)", int(f))
}

// ParseFractal returns the fractal kind matching name.
func ParseFractal(name string) (Fractal, error) {
	for k, v := range fractalNames {
		if v == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown fractal %q", ErrInvalidArgument, name)
}

// Backend selects the noise generator.
type Backend int

const (
	// Simplex is OpenSimplex noise.
	Simplex Backend = iota
	// Perlin is classic gradient noise.
	Perlin
)

var backendNames = map[Backend]string{
	Simplex: "simplex",
	Perlin:  "perlin",
}

func (b Backend) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend returns the noise backend matching name.
func ParseBackend(name string) (Backend, error) {
	for k, v := range backendNames {
		if v == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown noise backend %q", ErrInvalidArgument, name)
}

// FieldConfig : elevation options.
type FieldConfig struct {
	Seed int64
	// NoiseScale divides the sampled coordinates; larger values stretch the terrain.
	NoiseScale float64
	// ZScale is the maximum elevation.
	ZScale float64

	Octaves     int
	Frequency   float64
	Lacunarity  float64
	Persistence float64

	Fractal Fractal
	Backend Backend
}

// DefaultFieldConfig returns the options of the stock contour sketch.
func DefaultFieldConfig(seed int64) FieldConfig {
	return FieldConfig{
		Seed:        seed,
		NoiseScale:  600,
		ZScale:      350,
		Octaves:     2,
		Frequency:   1.45,
		Lacunarity:  math.Pi,
		Persistence: 0.78,
		Fractal:     Fbm,
		Backend:     Simplex,
	}
}

// Validate checks the configuration values.
func (c *FieldConfig) Validate() error {
	switch {
	case !isFinite(c.NoiseScale) || c.NoiseScale <= 0:
		return fmt.Errorf("%w: noise scale must be positive, got %v", ErrInvalidArgument, c.NoiseScale)
	case !isFinite(c.ZScale) || c.ZScale < 0:
		return fmt.Errorf("%w: z scale must not be negative, got %v", ErrInvalidArgument, c.ZScale)
	case c.Octaves < 1 || c.Octaves > MaxOctaves:
		return fmt.Errorf("%w: octaves must be in [1, %d], got %d", ErrInvalidArgument, MaxOctaves, c.Octaves)
	case !isFinite(c.Frequency) || c.Frequency <= 0:
		return fmt.Errorf("%w: frequency must be positive, got %v", ErrInvalidArgument, c.Frequency)
	case !isFinite(c.Lacunarity) || !isFinite(c.Persistence):
		return fmt.Errorf("%w: lacunarity and persistence must be finite", ErrInvalidArgument)
	}
	if _, ok := fractalNames[c.Fractal]; !ok {
		return fmt.Errorf("%w: unknown fractal %v", ErrInvalidArgument, c.Fractal)
	}
	if _, ok := backendNames[c.Backend]; !ok {
		return fmt.Errorf("%w: unknown noise backend %v", ErrInvalidArgument, c.Backend)
	}
	return nil
}

// ElevationFunc returns the elevation at a point of the plane.
type ElevationFunc func(x, y float64) float64

// source is a three dimensional noise generator with values in [-1, 1].
type source interface {
	Eval3(x, y, z float64) float64
}

type perlinSource struct {
	*perlin.Perlin
}

func (p perlinSource) Eval3(x, y, z float64) float64 {
	return p.Noise3D(x, y, z)
}

func newSource(b Backend, seed int64) source {
	if b == Perlin {
		// A single octave: the fractal summation happens in Field.
		return perlinSource{perlin.NewPerlin(2, 2, 1, seed)}
	}
	return opensimplex.New(seed)
}

// Field is a scalar field over the plane built from layered noise.
// It is immutable once built and safe for concurrent use.
type Field struct {
	cfg   FieldConfig
	z     float64
	noise source
	warpX source
	warpY source
}

// NewField validates cfg and builds the noise generators it describes.
func NewField(cfg FieldConfig) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := &Field{
		cfg:   cfg,
		z:     float64(cfg.Seed % seedSpan),
		noise: newSource(cfg.Backend, cfg.Seed),
	}
	if cfg.Fractal == Turbulence {
		f.warpX = newSource(cfg.Backend, cfg.Seed+1)
		f.warpY = newSource(cfg.Backend, cfg.Seed+2)
	}
	return f, nil
}

// Config returns the options the field was built with.
func (f *Field) Config() FieldConfig {
	return f.cfg
}

// Elevation returns the elevation at (x, y), always in [0, ZScale].
func (f *Field) Elevation(x, y float64) float64 {
	x, y = x/f.cfg.NoiseScale, y/f.cfg.NoiseScale
	return MapRange(f.Noise(x, y), -1, 1, 0, f.cfg.ZScale)
}

// Noise returns the fractal noise value at the already scaled (x, y),
// clamped to [-1, 1].
func (f *Field) Noise(x, y float64) float64 {
	var n float64
	switch f.cfg.Fractal {
	case Turbulence:
		dx := turbulencePower * f.octaves(f.warpX, x+0.1875, y+0.9375, f.z, turbulenceRoughness, signed)
		dy := turbulencePower * f.octaves(f.warpY, x+0.4062, y+0.2812, f.z, turbulenceRoughness, signed)
		n = f.octaves(f.noise, x+dx, y+dy, f.z, f.cfg.Octaves, signed)
	case Billow:
		n = f.octaves(f.noise, x, y, f.z, f.cfg.Octaves, billow)
	case RidgedMulti:
		n = f.octaves(f.noise, x, y, f.z, f.cfg.Octaves, ridged)
	default:
		n = f.octaves(f.noise, x, y, f.z, f.cfg.Octaves, signed)
	}
	if math.IsNaN(n) {
		return 0
	}
	return Clamp(n, -1, 1)
}

const (
	turbulencePower     = 1.0
	turbulenceRoughness = 3
)

func signed(n float64) float64 { return n }

func billow(n float64) float64 { return 2*math.Abs(n) - 1 }

func ridged(n float64) float64 {
	s := 1 - math.Abs(n)
	return 2*s*s - 1
}

// octaves sums count layers of shaped noise, normalized by the total amplitude.
func (f *Field) octaves(src source, x, y, z float64, count int, shape func(float64) float64) float64 {
	var (
		sum, total float64
		freq       = f.cfg.Frequency
		amp        = 1.0
	)
	for o := 0; o < count; o++ {
		n := Clamp(src.Eval3(x*freq, y*freq, z*freq), -1, 1)
		sum += shape(n) * amp
		total += math.Abs(amp)
		freq *= f.cfg.Lacunarity
		amp *= f.cfg.Persistence
	}
	if total == 0 {
		return 0
	}
	return sum / total
}
