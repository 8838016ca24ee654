package shape

import "github.com/esimov/sketchaire/geom"

// Color is a 24-bit RGB triple, matching the teacher's color hex
// convention (utils.HexToRGBA) without pulling in image/color for what is
// never composited onto a raster image in this domain.
type Color struct {
	R, G, B uint8
}

// Stroke is a live or committed freehand drawing: a color, a pixel width
// and an ordered list of sampled points. A Stroke is mutated only by
// appending points while its generating gesture is active; once its
// gesture commits it is frozen and only ever replaced or removed.
type Stroke struct {
	Color  Color        `json:"color"`
	Width  float64      `json:"width"`
	Points []geom.Point `json:"points"`
}

// NewStroke starts a stroke seeded with a single point.
func NewStroke(color Color, width float64, start geom.Point) *Stroke {
	return &Stroke{
		Color:  color,
		Width:  width,
		Points: []geom.Point{start},
	}
}

// Append adds a sampled point to the live stroke.
func (s *Stroke) Append(p geom.Point) {
	s.Points = append(s.Points, p)
}
