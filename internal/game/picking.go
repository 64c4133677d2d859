package game

// Point is a 2D draw-space point (Y up).
type Point struct {
	X, Y float64
}

// Triangle is a hit-test primitive in draw space, relative to its owner.
type Triangle struct {
	P1, P2, P3 Point
}

func triSign(p1, p2, p3 Point) float64 {
	return (p1.X-p3.X)*(p2.Y-p3.Y) - (p2.X-p3.X)*(p1.Y-p3.Y)
}

// Contains reports whether pt lies inside or on the edge of t.
func (t Triangle) Contains(pt Point) bool {
	d1 := triSign(pt, t.P1, t.P2)
	d2 := triSign(pt, t.P2, t.P3)
	d3 := triSign(pt, t.P3, t.P1)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// Pickable is the hit shape of something drawn on the board.
type Pickable struct {
	Triangles []Triangle
}

// Hit reports whether pt, relative to the owner's origin, falls in the shape.
func (p Pickable) Hit(pt Point) bool {
	for _, t := range p.Triangles {
		if t.Contains(pt) {
			return true
		}
	}
	return false
}

// TilePickable returns the outline of an isometric block whose top face is a
// w x h diamond centred on the origin, with sides one tile height deep.
func TilePickable(w, h float64) Pickable {
	hw, hh := w/2, h/2
	return Pickable{Triangles: []Triangle{
		// top face
		{Point{hw, 0}, Point{-hw, 0}, Point{0, hh}},
		{Point{hw, 0}, Point{-hw, 0}, Point{0, -hh}},
		// front sides
		{Point{-hw, 0}, Point{0, -hh}, Point{-hw, -h}},
		{Point{0, -hh}, Point{-hw, -h}, Point{0, -hh - h}},
		{Point{hw, 0}, Point{0, -hh}, Point{hw, -h}},
		{Point{0, -hh}, Point{hw, -h}, Point{0, -hh - h}},
	}}
}

// PickNearest returns the tile under the draw-space point pt. Where blocks
// overlap, the one drawn on top (greatest depth) wins.
func PickNearest(layout *MapLayout, tiles []Tile, shape Pickable, pt Point) (Coord, bool) {
	var best Coord
	found := false
	bestDepth := 0.0
	for _, t := range tiles {
		pos := layout.Project(t.At, false)
		if found && pos.Z < bestDepth {
			continue
		}
		if shape.Hit(Point{X: pt.X - pos.X, Y: pt.Y - pos.Y}) {
			best, bestDepth, found = t.At, pos.Z, true
		}
	}
	return best, found
}
