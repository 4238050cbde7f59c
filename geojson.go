package meander

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON writes the contours of a frame as a feature collection in plane
// coordinates. Closed polylines become polygons, open ones line strings,
// and the unstitched segments of a level a single multi line string.
type GeoJSON struct {
	Indent bool
}

// Collection builds the feature collection of res.
func (g *GeoJSON) Collection(res *Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, lvl := range res.Levels {
		props := func(f *geojson.Feature) *geojson.Feature {
			f.Properties["level"] = i
			f.Properties["threshold"] = lvl.Threshold
			return f
		}
		if !res.Closed {
			mls := make(orb.MultiLineString, 0, len(lvl.Segments))
			for _, seg := range lvl.Segments {
				mls = append(mls, orb.LineString{toOrb(seg[0]), toOrb(seg[1])})
			}
			fc.Append(props(geojson.NewFeature(mls)))
			continue
		}
		for _, line := range lvl.Polylines {
			ls := make(orb.LineString, len(line))
			for k, p := range line {
				ls[k] = toOrb(p)
			}
			if len(line) >= 4 && line.Closed(res.Tolerance) {
				ring := orb.Ring(ls)
				ring[len(ring)-1] = ring[0]
				fc.Append(props(geojson.NewFeature(orb.Polygon{ring})))
				continue
			}
			fc.Append(props(geojson.NewFeature(ls)))
		}
	}
	return fc
}

// Draw encodes the feature collection of res into w.
func (g *GeoJSON) Draw(w io.Writer, res *Result) error {
	data, err := g.Collection(res).MarshalJSON()
	if err != nil {
		return err
	}
	if g.Indent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	_, err = w.Write(data)
	return err
}

func toOrb(p Point2) orb.Point {
	return orb.Point{p.X, p.Y}
}
