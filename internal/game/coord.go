package game

import "fmt"

// Coord is a discrete board position.
type Coord struct {
	X, Y int
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int) Coord { return Coord{X: x, Y: y} }

func (c Coord) Add(o Coord) Coord { return Coord{X: c.X + o.X, Y: c.Y + o.Y} }

func (c Coord) Sub(o Coord) Coord { return Coord{X: c.X - o.X, Y: c.Y - o.Y} }

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Less orders coords by X then Y. Used wherever a stable tile order is needed.
func (c Coord) Less(o Coord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

// Manhattan returns the grid distance between two coords.
func Manhattan(a, b Coord) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

// cardinals are the four grid neighbours, in expansion order.
var cardinals = [4]Coord{
	{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
}

// Facing is the screen-space quadrant a unit looks toward while walking.
// +X projects down-right (SE), +Y down-left (SW).
type Facing int

const (
	FacingSE Facing = iota // +X
	FacingNW               // -X
	FacingSW               // +Y
	FacingNE               // -Y
	facingCount
)

func (f Facing) String() string {
	switch f {
	case FacingSE:
		return "se"
	case FacingNW:
		return "nw"
	case FacingSW:
		return "sw"
	case FacingNE:
		return "ne"
	default:
		return "unknown"
	}
}

// FacingFor maps a cardinal step to its facing. ok is false for any other delta.
func FacingFor(delta Coord) (Facing, bool) {
	switch delta {
	case Coord{X: 1, Y: 0}:
		return FacingSE, true
	case Coord{X: -1, Y: 0}:
		return FacingNW, true
	case Coord{X: 0, Y: 1}:
		return FacingSW, true
	case Coord{X: 0, Y: -1}:
		return FacingNE, true
	default:
		return 0, false
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
