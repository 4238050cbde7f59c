package meander

import "image"

// lehmer is the Park-Miller minimal standard generator.
type lehmer struct {
	state int64
}

const lehmerModulus = 0x7fffffff

func newLehmer(seed int64) *lehmer {
	s := seed % lehmerModulus
	if s < 0 {
		s += lehmerModulus
	}
	if s == 0 {
		s = 1
	}
	return &lehmer{state: s}
}

// next returns a value in (0, 1).
func (l *lehmer) next() float64 {
	l.state = l.state * 48271 % lehmerModulus
	return float64(l.state) / lehmerModulus
}

// Grain adds a film grain of the given amount to img, in place. The grain
// only depends on seed and the image size, so a frame rendered twice from
// the same seed comes out identical. Pixels a channel of which would leave
// the [0, 255] range are kept as they are. Alpha is never touched.
func Grain(img *image.NRGBA, amount int, seed int64) {
	if amount <= 0 {
		return
	}
	rnd := newLehmer(seed)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		row := img.Pix[off : off+4*b.Dx()]
		for x := 0; x < len(row); x += 4 {
			noise := int((rnd.next() - 0.5) * float64(amount))
			r, g, bl := int(row[x])+noise, int(row[x+1])+noise, int(row[x+2])+noise
			if Min(r, g, bl) < 0 || Max(r, g, bl) > 255 {
				continue
			}
			row[x], row[x+1], row[x+2] = uint8(r), uint8(g), uint8(bl)
		}
	}
}
