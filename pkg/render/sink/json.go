package sink

import (
	"encoding/json"

	"github.com/matzehuels/touring/pkg/board"
	"github.com/matzehuels/touring/pkg/tour"
)

type jsonOutput struct {
	Mode   string      `json:"mode"`
	Tours  []jsonTour  `json:"tours"`
	Points []jsonPoint `json:"points"`
}

type jsonTour struct {
	Strategy string      `json:"strategy"`
	Style    jsonStyle   `json:"style"`
	Length   float64     `json:"length"`
	Points   []jsonPoint `json:"points"`
}

type jsonStyle struct {
	Stroke string  `json:"stroke"`
	Width  float64 `json:"width"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RenderJSON exports every tour of b, visible or not, as a pretty-printed
// JSON document. Tours appear in strategy order with their points in
// visiting order; "points" lists the added points in arrival order.
func RenderJSON(b *board.Board) ([]byte, error) {
	out := jsonOutput{
		Mode:   b.Mode().String(),
		Tours:  make([]jsonTour, 0, len(tour.Strategies())),
		Points: toJSONPoints(b.History()),
	}
	for _, sum := range b.Summaries() {
		out.Tours = append(out.Tours, jsonTour{
			Strategy: sum.Strategy.String(),
			Style:    jsonStyle{Stroke: sum.Style.Stroke, Width: sum.Style.StrokeWidth},
			Length:   sum.Length,
			Points:   toJSONPoints(b.Tour(sum.Strategy).Points()),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONPoints(pts []tour.Point) []jsonPoint {
	out := make([]jsonPoint, len(pts))
	for i, p := range pts {
		out[i] = jsonPoint{X: p.X(), Y: p.Y()}
	}
	return out
}
