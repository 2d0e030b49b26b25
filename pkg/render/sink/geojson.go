package sink

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/matzehuels/touring/pkg/board"
	"github.com/matzehuels/touring/pkg/render/styles"
)

// RenderGeoJSON exports b as a FeatureCollection. Every tour with at least
// two points becomes a closed LineString (the head repeated at the end)
// carrying strategy, length and stroke properties. A final MultiPoint
// feature holds all added points.
//
// Coordinates are canvas units, not longitude/latitude.
func RenderGeoJSON(b *board.Board) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	for _, sum := range b.Summaries() {
		t := b.Tour(sum.Strategy)
		if t.Len() < 2 {
			continue
		}
		ls := make(orb.LineString, 0, t.Len()+1)
		ls = append(ls, t.Points()...)
		ls = append(ls, ls[0])

		f := geojson.NewFeature(ls)
		f.Properties["strategy"] = sum.Strategy.String()
		f.Properties["length"] = sum.Length
		f.Properties["points"] = sum.Points
		f.Properties["stroke"] = sum.Style.Stroke
		f.Properties["stroke-width"] = sum.Style.StrokeWidth
		fc.Append(f)
	}

	if history := b.History(); len(history) > 0 {
		f := geojson.NewFeature(orb.MultiPoint(history))
		f.Properties["mode"] = b.Mode().String()
		f.Properties["marker-color"] = styles.MarkerFill
		fc.Append(f)
	}

	return fc.MarshalJSON()
}
